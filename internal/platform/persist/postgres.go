// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/yomira-reader/internal/platform/database/schema"
)

// Querier is the subset of pgxpool.Pool used by [PostgresBackend].
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresBackend stores documents as JSONB rows in app.state.
type PostgresBackend struct {
	db Querier
}

// NewPostgresBackend creates a backend over a pool (or transaction).
func NewPostgresBackend(db Querier) *PostgresBackend {
	return &PostgresBackend{db: db}
}

// Load implements [Backend].
func (backend *PostgresBackend) Load(ctx context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.AppState.Document, schema.AppState.Table, schema.AppState.Key)

	var document []byte
	if err := backend.db.QueryRow(ctx, query, key).Scan(&document); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("postgres_state_get_failed: %w", err)
	}
	return document, nil
}

// Save implements [Backend]. It upserts the row for key.
func (backend *PostgresBackend) Save(ctx context.Context, key string, document []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, now())
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = now()
	`,
		schema.AppState.Table, schema.AppState.Key, schema.AppState.Document, schema.AppState.UpdatedAt,
		schema.AppState.Key, schema.AppState.Document, schema.AppState.Document, schema.AppState.UpdatedAt,
	)

	if _, err := backend.db.Exec(ctx, query, key, string(document)); err != nil {
		return fmt.Errorf("postgres_state_set_failed: %w", err)
	}
	return nil
}
