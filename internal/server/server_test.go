package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminoshq/luminos/internal/config"
	"github.com/luminoshq/luminos/internal/core"
	"github.com/luminoshq/luminos/internal/core/diagnosis"
	"github.com/luminoshq/luminos/internal/core/store"
	apperrors "github.com/luminoshq/luminos/internal/errors"
	"github.com/luminoshq/luminos/internal/server/handlers"
)

type stubRunner struct {
	rec *core.DiagnosisRecord
	err error
}

func (s *stubRunner) Run(_ context.Context, req diagnosis.Request) (*core.DiagnosisRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.rec, nil
}

type stubHistory struct {
	summaries []store.DiagnosisSummary
	rec       *core.DiagnosisRecord
}

func (s *stubHistory) ListDiagnoses(_ context.Context, _ int) ([]store.DiagnosisSummary, error) {
	return s.summaries, nil
}

func (s *stubHistory) GetDiagnosis(_ context.Context, id string) (*core.DiagnosisRecord, error) {
	if s.rec != nil && s.rec.ID == id {
		return s.rec, nil
	}
	return nil, store.ErrNotFound
}

func newTestServer(runner handlers.DiagnosisRunner, history handlers.DiagnosisHistory) *Server {
	return New(config.ServerConfig{Host: "127.0.0.1", Port: 0}, handlers.NewDiagnosisHandler(runner, history))
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServerUsesStandardErrorHandlers(t *testing.T) {
	srv := newTestServer(&stubRunner{}, nil)

	rec := doRequest(t, srv, http.MethodGet, "/does-not-exist", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body apperrors.HTTPErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCreateDiagnosis(t *testing.T) {
	record := &core.DiagnosisRecord{ID: "diag-1", Profile: core.BrandProfile{Name: "Acme"}}
	srv := newTestServer(&stubRunner{rec: record}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/diagnosis", `{"brand_name":"Acme"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got core.DiagnosisRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "diag-1", got.ID)
	assert.Equal(t, "Acme", got.Profile.Name)
}

func TestCreateDiagnosisValidation(t *testing.T) {
	srv := newTestServer(&stubRunner{}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/diagnosis", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body apperrors.HTTPErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "INVALID_INPUT", body.Error.Code)
}

func TestCreateDiagnosisMalformedBody(t *testing.T) {
	srv := newTestServer(&stubRunner{}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/diagnosis", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateDiagnosisNoProviders(t *testing.T) {
	srv := newTestServer(&stubRunner{err: diagnosis.ErrNoProviders}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/diagnosis", `{"brand_name":"Acme"}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body apperrors.HTTPErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
}

func TestListDiagnoses(t *testing.T) {
	history := &stubHistory{summaries: []store.DiagnosisSummary{{ID: "diag-1", BrandName: "Acme"}}}
	srv := newTestServer(&stubRunner{}, history)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/diagnoses?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Diagnoses []store.DiagnosisSummary `json:"diagnoses"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Diagnoses, 1)
	assert.Equal(t, "Acme", body.Diagnoses[0].BrandName)
}

func TestListDiagnosesBadLimit(t *testing.T) {
	srv := newTestServer(&stubRunner{}, &stubHistory{})

	for _, limit := range []string{"0", "-3", "101", "abc"} {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/diagnoses?limit="+limit, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", limit)
	}
}

func TestGetDiagnosis(t *testing.T) {
	record := &core.DiagnosisRecord{ID: "diag-1"}
	srv := newTestServer(&stubRunner{}, &stubHistory{rec: record})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/diagnoses/diag-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/diagnoses/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body apperrors.HTTPErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestHistoryEndpointsWithoutStore(t *testing.T) {
	srv := newTestServer(&stubRunner{}, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/diagnoses", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
