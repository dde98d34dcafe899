package cache

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLiteCache(t *testing.T) SQLiteCache {
	c, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSQLiteCache(t *testing.T) {
	testProvider(t, newTestSQLiteCache(t))
}

func TestSQLiteCacheKeysAreNotPatterns(t *testing.T) {
	c := newTestSQLiteCache(t)
	future := time.Now().Add(time.Hour)
	c.Put("GET:/a_b", future, nil)
	c.Put("GET:/axb", future, nil)
	var keys []string
	c.Keys("GET:/a_", func(key string) { keys = append(keys, key) })
	if len(keys) != 1 || keys[0] != "GET:/a_b" {
		t.Fatalf("Keys: %v", keys)
	}
}

func TestSQLiteCachePurgeExpired(t *testing.T) {
	c := newTestSQLiteCache(t)
	now := time.Now()
	c.Put("old", now.Add(-time.Minute), []byte("old"))
	c.Put("new", now.Add(time.Minute), []byte("new"))
	if _, ok, _ := c.Get("old"); ok {
		t.Fatal("Expired entry returned")
	}
	if n, err := c.PurgeExpired(now); err != nil || n != 1 {
		t.Fatalf("Purged %d entries: %v", n, err)
	}
	if ok, _ := c.Has("new"); !ok {
		t.Fatal("Fresh entry purged")
	}
}
