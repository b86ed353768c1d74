package repos_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiotech/internal/repos"
)

func openKV(t *testing.T) *repos.KVRepo {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repos.NewKVRepo(db)
}

func TestKVRepo_SetGetDelete(t *testing.T) {
	kv := openKV(t)
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, repos.ErrNotFound)

	require.NoError(t, kv.Set(ctx, "k", []byte(`{"a":1}`)))
	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))

	require.NoError(t, kv.Set(ctx, "k", []byte(`{"a":2}`)))
	got, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(got))

	require.NoError(t, kv.Delete(ctx, "k"))
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, repos.ErrNotFound)

	// deleting an absent key is not an error
	assert.NoError(t, kv.Delete(ctx, "k"))
}

func TestOpenDB_ReopenFileKeepsData(t *testing.T) {
	dsn := t.TempDir() + "/audiotech.db"
	ctx := context.Background()

	db, err := repos.OpenDB(dsn)
	require.NoError(t, err)
	require.NoError(t, repos.NewKVRepo(db).Set(ctx, "k", []byte(`"v"`)))
	require.NoError(t, db.Close())

	// second open finds the schema already migrated
	db, err = repos.OpenDB(dsn)
	require.NoError(t, err)
	defer db.Close()
	got, err := repos.NewKVRepo(db).Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"v"`, string(got))
}

func TestKVRepo_DriverErrors(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()
	kv := repos.NewKVRepo(sqlx.NewDb(raw, "sqlmock"))
	ctx := context.Background()

	// no rows -> ErrNotFound
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv WHERE key = ?`)).
		WithArgs("a").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	_, err = kv.Get(ctx, "a")
	assert.ErrorIs(t, err, repos.ErrNotFound)

	// driver failure surfaces unchanged
	boom := errors.New("disk I/O error")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv WHERE key = ?`)).
		WithArgs("b").
		WillReturnError(boom)
	_, err = kv.Get(ctx, "b")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, repos.ErrNotFound)

	mock.ExpectExec(`INSERT INTO kv`).
		WithArgs("c", "1").
		WillReturnError(boom)
	assert.ErrorIs(t, kv.Set(ctx, "c", []byte("1")), boom)

	require.NoError(t, mock.ExpectationsWereMet())
}
