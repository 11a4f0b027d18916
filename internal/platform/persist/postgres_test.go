// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persist_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-reader/internal/platform/persist"
)

// fakeRow scans one stored document or reports err.
type fakeRow struct {
	document []byte
	err      error
}

func (row fakeRow) Scan(dest ...any) error {
	if row.err != nil {
		return row.err
	}
	*dest[0].(*[]byte) = row.document
	return nil
}

// fakeQuerier keeps app state rows keyed by their first argument.
type fakeQuerier struct {
	rows     map[string]string
	queryErr error
	lastSQL  string
}

func (db *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	db.lastSQL = sql
	if db.queryErr != nil {
		return fakeRow{err: db.queryErr}
	}
	document, found := db.rows[args[0].(string)]
	if !found {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{document: []byte(document)}
}

func (db *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.lastSQL = sql
	db.rows[args[0].(string)] = args[1].(string)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestPostgresBackend_MissingRowIsNotFound(t *testing.T) {
	db := &fakeQuerier{rows: map[string]string{}}

	_, err := persist.NewPostgresBackend(db).Load(context.Background(), "reading-settings")
	assert.ErrorIs(t, err, persist.ErrNotFound)
	assert.Contains(t, db.lastSQL, "WHERE")
}

func TestPostgresBackend_UpsertThenLoad(t *testing.T) {
	db := &fakeQuerier{rows: map[string]string{}}
	backend := persist.NewPostgresBackend(db)

	require.NoError(t, backend.Save(context.Background(), "reading-settings", []byte(`{"state":{"fontSize":18},"version":0}`)))
	assert.Contains(t, db.lastSQL, "ON CONFLICT")

	document, err := backend.Load(context.Background(), "reading-settings")
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"fontSize":18},"version":0}`, string(document))
}

func TestPostgresBackend_QueryErrorIsNotNotFound(t *testing.T) {
	db := &fakeQuerier{rows: map[string]string{}, queryErr: errors.New("conn closed")}

	_, err := persist.NewPostgresBackend(db).Load(context.Background(), "reading-settings")
	require.Error(t, err)
	assert.NotErrorIs(t, err, persist.ErrNotFound)
}
