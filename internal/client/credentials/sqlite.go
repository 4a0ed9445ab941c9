package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/healthcomp/internal/dbx"
)

// SQLiteStore persists the pair in the credentials table of the local
// database, one row per token.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context) (Pair, error) {
	access, err := s.get(ctx, s.db, AccessTokenKey)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.get(ctx, s.db, RefreshTokenKey)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Access: access, Refresh: refresh}, nil
}

// Set writes both tokens in one transaction. An empty token removes its row,
// so a pair without a refresh token never leaves a stale one behind.
func (s *SQLiteStore) Set(ctx context.Context, p Pair) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.put(ctx, tx, AccessTokenKey, p.Access); err != nil {
			return err
		}
		return s.put(ctx, tx, RefreshTokenKey, p.Refresh)
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func (s *SQLiteStore) get(ctx context.Context, q dbx.DBTX, name string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM credentials WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credentials[%s]: %w", name, err)
	}
	return value, nil
}

func (s *SQLiteStore) put(ctx context.Context, q dbx.DBTX, name, value string) error {
	if value == "" {
		if _, err := q.ExecContext(ctx, `DELETE FROM credentials WHERE name = ?`, name); err != nil {
			return fmt.Errorf("failed to delete credentials[%s]: %w", name, err)
		}
		return nil
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO credentials (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, name, value)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", name, err)
	}
	return nil
}
