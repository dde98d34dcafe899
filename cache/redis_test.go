package cache

import (
	"os"
	"testing"
	"time"
)

// TestRedisCache runs against the server in REDIS_ADDR, if set.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	c, err := NewRedisCache(RedisConfig{Addr: addr, Namespace: "test:" + time.Now().Format(time.RFC3339Nano) + ":"})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	testProvider(t, c)
}

func TestEscapeGlob(t *testing.T) {
	if got := escapeGlob("GET:/a?b=[1]*"); got != `GET:/a\?b=\[1\]\*` {
		t.Fatalf("Escaped to %s", got)
	}
}
