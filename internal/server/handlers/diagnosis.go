package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/luminoshq/luminos/internal/core"
	"github.com/luminoshq/luminos/internal/core/diagnosis"
	"github.com/luminoshq/luminos/internal/core/store"
	apperrors "github.com/luminoshq/luminos/internal/errors"
	"github.com/luminoshq/luminos/internal/metrics"
)

const maxListLimit = 100

// DiagnosisRunner runs one audit end to end.
type DiagnosisRunner interface {
	Run(ctx context.Context, req diagnosis.Request) (*core.DiagnosisRecord, error)
}

// DiagnosisHistory reads back persisted diagnoses.
type DiagnosisHistory interface {
	ListDiagnoses(ctx context.Context, limit int) ([]store.DiagnosisSummary, error)
	GetDiagnosis(ctx context.Context, id string) (*core.DiagnosisRecord, error)
}

// DiagnosisHandler exposes the audit pipeline over HTTP.
type DiagnosisHandler struct {
	runner  DiagnosisRunner
	history DiagnosisHistory
}

// NewDiagnosisHandler creates a diagnosis handler. history may be nil when
// no store is configured; the list and get endpoints then return 503.
func NewDiagnosisHandler(runner DiagnosisRunner, history DiagnosisHistory) *DiagnosisHandler {
	return &DiagnosisHandler{runner: runner, history: history}
}

// Create handles POST /api/v1/diagnosis.
func (h *DiagnosisHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req diagnosis.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, apperrors.WrapInvalidInput(r.Context(), err, "invalid request body"))
		return
	}

	start := time.Now()
	rec, err := h.runner.Run(r.Context(), req)
	if err != nil {
		metrics.RecordDiagnosis(req.Pro, false, time.Since(start))
		respondWithError(w, r, diagnosisError(r.Context(), err))
		return
	}
	metrics.RecordDiagnosis(req.Pro, true, time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(rec)
}

// List handles GET /api/v1/diagnoses.
func (h *DiagnosisHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		respondWithError(w, r, apperrors.NewServiceUnavailableError("diagnosis history is not configured"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxListLimit {
			respondWithError(w, r, apperrors.NewInvalidInputError("limit must be an integer between 1 and 100"))
			return
		}
		limit = parsed
	}

	summaries, err := h.history.ListDiagnoses(r.Context(), limit)
	if err != nil {
		respondWithError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "failed to list diagnoses"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{"diagnoses": summaries})
}

// Get handles GET /api/v1/diagnoses/{id}.
func (h *DiagnosisHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		respondWithError(w, r, apperrors.NewServiceUnavailableError("diagnosis history is not configured"))
		return
	}

	id := chi.URLParam(r, "id")
	rec, err := h.history.GetDiagnosis(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, r, apperrors.NewNotFoundError("diagnosis not found"))
			return
		}
		respondWithError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "failed to load diagnosis"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(rec)
}

// diagnosisError maps pipeline errors onto envelope codes.
func diagnosisError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, diagnosis.ErrNoSubject),
		errors.Is(err, diagnosis.ErrTooManyCustomPrompts):
		return apperrors.WrapInvalidInput(ctx, err, err.Error())
	case errors.Is(err, diagnosis.ErrNoProviders):
		return apperrors.WrapServiceUnavailable(ctx, err, "no AI provider is configured")
	default:
		return apperrors.WrapInternal(ctx, err, "diagnosis failed")
	}
}
