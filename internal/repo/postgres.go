package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/ecotrip/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgStore is the Postgres implementation of Store, backed by the kv_store
// table created by the migrations package.
type pgStore struct {
	db db
}

// NewPGStore constructs a Store backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPGStore(db db) Store {
	return &pgStore{db: db}
}

// Get reads the document stored for key.
func (s *pgStore) Get(ctx context.Context, key Key) ([]byte, error) {
	const q = `
		SELECT value
		FROM kv_store
		WHERE owner = @owner AND kind = @kind`

	var value []byte
	err := s.db.QueryRow(ctx, q, keyArgs(key)).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repo.pgStore.Get: %s: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.pgStore.Get: %w", err)
	}
	return value, nil
}

// Set upserts the document for key.
func (s *pgStore) Set(ctx context.Context, key Key, value []byte) error {
	const q = `
		INSERT INTO kv_store (owner, kind, value)
		VALUES (@owner, @kind, @value)
		ON CONFLICT (owner, kind)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	args := keyArgs(key)
	args["value"] = value

	if _, err := s.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.pgStore.Set: %w", err)
	}
	return nil
}

// Remove deletes the document for key, if any.
func (s *pgStore) Remove(ctx context.Context, key Key) error {
	const q = `DELETE FROM kv_store WHERE owner = @owner AND kind = @kind`

	if _, err := s.db.Exec(ctx, q, keyArgs(key)); err != nil {
		return fmt.Errorf("repo.pgStore.Remove: %w", err)
	}
	return nil
}

func keyArgs(key Key) pgx.NamedArgs {
	return pgx.NamedArgs{
		"owner": key.Owner,
		"kind":  string(key.Kind),
	}
}
