package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// KVRepo is the SQLite-backed Store used for the persistent scope.
type KVRepo struct{ db *sqlx.DB }

func NewKVRepo(db *sqlx.DB) *KVRepo { return &KVRepo{db: db} }

func (r *KVRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var v string
	err := r.db.GetContext(ctx, &v, `SELECT value FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(v), nil
}

func (r *KVRepo) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv(key, value, updated_at)
		VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE
		SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, string(value))
	return err
}

func (r *KVRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}
