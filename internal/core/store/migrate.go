package store

import (
	"context"
	"errors"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS diagnoses (
		id TEXT PRIMARY KEY,
		brand_name TEXT NOT NULL,
		domain TEXT,
		pro INTEGER NOT NULL DEFAULT 0,
		composite INTEGER NOT NULL,
		record_json TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_diagnoses_created ON diagnoses(created_at);`,
	`CREATE INDEX IF NOT EXISTS idx_diagnoses_brand ON diagnoses(brand_name);`,
}

// Migrate ensures the required database tables exist.
func (s *Store) Migrate(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	for _, stmt := range schemaStatements {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store migration failed: %w", err)
		}
	}

	return nil
}
