package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// exerciseStorage checks the get/set/missing contract every backend shares.
func exerciseStorage(t *testing.T, s Storage, key string) {
	t.Helper()

	if _, found, err := s.GetItem(key); err != nil || found {
		t.Fatalf("fresh key: found=%v err=%v", found, err)
	}

	if err := s.SetItem(key, `{"posts":[]}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, found, err := s.GetItem(key)
	if err != nil || !found || v != `{"posts":[]}` {
		t.Fatalf("get after set: %q found=%v err=%v", v, found, err)
	}

	if err := s.SetItem(key, "second"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := s.GetItem(key); v != "second" {
		t.Fatalf("expected overwritten value, got %q", v)
	}

	if _, found, _ := s.GetItem(key + "-other"); found {
		t.Fatalf("unrelated key should be missing")
	}
}

func TestMemoryStorage(t *testing.T) {
	exerciseStorage(t, NewMemoryStorage(), "k")
}

func TestSQLiteStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	s, err := NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	exerciseStorage(t, s, "gearheads_test")
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// values survive reopening the file
	s, err = NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if v, found, err := s.GetItem("gearheads_test"); err != nil || !found || v != "second" {
		t.Fatalf("after reopen: %q found=%v err=%v", v, found, err)
	}
}

func TestRedisStorage(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	s, err := NewRedisStorage(addr, DefaultTimeout)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer s.Close()
	key := "gearheads_test_" + t.Name()
	s.client.Del(key, key+"-other")
	defer s.client.Del(key)
	exerciseStorage(t, s, key)
}

func TestPostgresStorage(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	s, err := NewPostgresStorage(ctx, dsn, DefaultTimeout)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer s.Close()
	key := "gearheads_test_" + t.Name()
	s.pool.Exec(ctx, "DELETE FROM kv_store WHERE key LIKE $1", key+"%")
	exerciseStorage(t, s, key)
}

func TestMongoStorage(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx := context.Background()
	s, err := NewMongoStorage(ctx, uri, "gearheads_test", DefaultTimeout)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer s.Close()
	key := "gearheads_test_" + t.Name()
	s.coll.Drop(ctx)
	exerciseStorage(t, s, key)
}
