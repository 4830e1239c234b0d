package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/luminoshq/luminos/internal/core"
)

// ErrNotFound is returned when a diagnosis id has no stored record.
var ErrNotFound = errors.New("diagnosis not found")

const defaultListLimit = 20

// DiagnosisSummary is the list-view projection of a stored record.
type DiagnosisSummary struct {
	ID        string    `json:"id"`
	BrandName string    `json:"brand_name"`
	Domain    string    `json:"domain,omitempty"`
	Pro       bool      `json:"pro"`
	Composite int       `json:"composite"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveDiagnosis persists one finished record. The pipeline treats the sink
// as write-only; records are never updated.
func (s *Store) SaveDiagnosis(ctx context.Context, rec core.DiagnosisRecord) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode diagnosis: %w", err)
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO diagnoses (id, brand_name, domain, pro, composite, record_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Profile.Name, rec.Profile.Domain, boolToInt(rec.Pro),
		rec.Score.Composite, string(payload), rec.CreatedAt.UTC().Unix())
	if err != nil {
		return fmt.Errorf("save diagnosis: %w", err)
	}
	return nil
}

// ListDiagnoses returns recent run summaries, newest first.
func (s *Store) ListDiagnoses(ctx context.Context, limit int) ([]DiagnosisSummary, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, brand_name, domain, pro, composite, created_at
		 FROM diagnoses ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list diagnoses: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup on SQL rows

	var out []DiagnosisSummary
	for rows.Next() {
		var (
			summary   DiagnosisSummary
			domain    sql.NullString
			pro       int
			createdAt int64
		)
		if err := rows.Scan(&summary.ID, &summary.BrandName, &domain, &pro, &summary.Composite, &createdAt); err != nil {
			return nil, fmt.Errorf("scan diagnosis row: %w", err)
		}
		summary.Domain = domain.String
		summary.Pro = pro != 0
		summary.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list diagnoses: %w", err)
	}
	return out, nil
}

// GetDiagnosis loads one full record by id.
func (s *Store) GetDiagnosis(ctx context.Context, id string) (*core.DiagnosisRecord, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	var payload string
	err := s.DB.QueryRowContext(ctx,
		`SELECT record_json FROM diagnoses WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load diagnosis: %w", err)
	}

	var rec core.DiagnosisRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("decode diagnosis: %w", err)
	}
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
