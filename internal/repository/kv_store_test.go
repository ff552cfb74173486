package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/studyflow-api/pkg/errors"
	"github.com/noah-isme/studyflow-api/pkg/storage"
)

func newPlannerStoreMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestMemoryStoreGetSet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, appErrors.ErrStoreKeyMiss)

	require.NoError(t, store.Set(ctx, "k", "v"))
	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)
}

func TestFileStoreRoundTrip(t *testing.T) {
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	store := NewFileStore(files, "")
	ctx := context.Background()

	_, err = store.Get(ctx, "studyflow_theme")
	assert.ErrorIs(t, err, appErrors.ErrStoreKeyMiss)

	require.NoError(t, store.Set(ctx, "studyflow_theme", "dark"))
	require.NoError(t, store.Set(ctx, "studyflow_theme", "light"))

	value, err := store.Get(ctx, "studyflow_theme")
	require.NoError(t, err)
	assert.Equal(t, "light", value)

	raw, err := files.Read("kv/studyflow_theme.json")
	require.NoError(t, err)
	assert.Equal(t, "light", string(raw))
}

func TestFileStoreHonoursCancelledContext(t *testing.T) {
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	store := NewFileStore(files, "kv")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Set(ctx, "k", "v"), context.Canceled)
}

func TestPostgresStoreEnsureSchema(t *testing.T) {
	db, mock, cleanup := newPlannerStoreMock(t)
	defer cleanup()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS planner_store").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, NewPostgresStore(db).EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGet(t *testing.T) {
	db, mock, cleanup := newPlannerStoreMock(t)
	defer cleanup()
	store := NewPostgresStore(db)

	mock.ExpectQuery("SELECT value FROM planner_store").
		WithArgs("studyflow_subjects_v1").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[]`))

	value, err := store.Get(context.Background(), "studyflow_subjects_v1")
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetMissingKey(t *testing.T) {
	db, mock, cleanup := newPlannerStoreMock(t)
	defer cleanup()
	store := NewPostgresStore(db)

	mock.ExpectQuery("SELECT value FROM planner_store").
		WithArgs("studyflow_theme").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := store.Get(context.Background(), "studyflow_theme")
	assert.ErrorIs(t, err, appErrors.ErrStoreKeyMiss)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreSetUpserts(t *testing.T) {
	db, mock, cleanup := newPlannerStoreMock(t)
	defer cleanup()
	store := NewPostgresStore(db)
	fixed := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	mock.ExpectExec("INSERT INTO planner_store").
		WithArgs("studyflow_theme", "dark", fixed).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Set(context.Background(), "studyflow_theme", "dark"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreWrapsConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	store := NewRedisStore(client)

	_, err := store.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, appErrors.ErrStoreKeyMiss)
	assert.Contains(t, err.Error(), "redis get k")

	err = store.Set(context.Background(), "k", "v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis set k")
}
