package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"taskprog/internal/config"
	"taskprog/internal/draft"
)

// exerciseBackend runs the behaviour every backend must share.
func exerciseBackend(t *testing.T, kv Backend) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, kv.Set(ctx, "formData_/api/tasks", `{"title":"a"}`))
	v, ok, err := kv.Get(ctx, "formData_/api/tasks")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"title":"a"}`, v)

	require.NoError(t, kv.Set(ctx, "formData_/api/tasks", `{"title":"b"}`))
	v, _, err = kv.Get(ctx, "formData_/api/tasks")
	require.NoError(t, err)
	require.Equal(t, `{"title":"b"}`, v)

	require.NoError(t, kv.Remove(ctx, "formData_/api/tasks"))
	_, ok, err = kv.Get(ctx, "formData_/api/tasks")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, kv.Remove(ctx, "never-set"))

	// draft.Store round trip over the real backend
	store := draft.NewStore(kv, zerolog.Nop())
	store.Save(ctx, "/add_task", draft.Record{"title": "Ship", "progress": "40"})
	require.Equal(t, draft.Record{"title": "Ship", "progress": "40"}, store.Restore(ctx, "/add_task"))
	store.Clear(ctx, "/add_task")
	require.Empty(t, store.Restore(ctx, "/add_task"))
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	exerciseBackend(t, m)
	require.Equal(t, 0, m.Len())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "drafts.json")
	exerciseBackend(t, NewFile(path))
}

func TestFile_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "drafts.json")

	require.NoError(t, NewFile(path).Set(ctx, "k", "v"))

	v, ok, err := NewFile(path).Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", v)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files should be renamed away")
}

func TestFile_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "drafts.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	f := NewFile(path)
	_, _, err := f.Get(ctx, "k")
	require.Error(t, err)

	// writing recovers the file
	require.NoError(t, f.Set(ctx, "k", "v"))
	v, ok, err := f.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", v)
}

func TestSQLite(t *testing.T) {
	db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "drafts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	exerciseBackend(t, db)
}

func TestSQLite_InMemory(t *testing.T) {
	db, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	exerciseBackend(t, db)
}

func TestRedis(t *testing.T) {
	url := os.Getenv("TASKPROG_TEST_REDIS_URL")
	if url == "" {
		t.Skip("TASKPROG_TEST_REDIS_URL not set")
	}
	r, err := OpenRedis(context.Background(), url, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	exerciseBackend(t, r)
}

func TestOpenRedis_BadURL(t *testing.T) {
	_, err := OpenRedis(context.Background(), "not a url", 0)
	require.ErrorContains(t, err, "parse redis url")
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b, err := Open(ctx, config.Drafts{Backend: config.BackendMemory})
	require.NoError(t, err)
	require.IsType(t, &Memory{}, b)

	b, err = Open(ctx, config.Drafts{Backend: config.BackendFile, Path: filepath.Join(dir, "d.json")})
	require.NoError(t, err)
	require.IsType(t, &File{}, b)

	b, err = Open(ctx, config.Drafts{Backend: config.BackendSQLite, Path: filepath.Join(dir, "d.db")})
	require.NoError(t, err)
	require.IsType(t, &SQLite{}, b)
	require.NoError(t, b.Close())

	_, err = Open(ctx, config.Drafts{Backend: "etcd"})
	require.ErrorContains(t, err, "unknown drafts backend")
}
