package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/always-cache/conditional"
	"github.com/always-cache/conditional/cache"
	responsetransformer "github.com/always-cache/conditional/pkg/response-transformer"
)

func newTestRouter(t *testing.T) (http.Handler, string) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("Hello world"), 0644); err != nil {
		t.Fatal(err)
	}
	config := defaultConfig()
	config.Dir = dir
	config.AdminToken = "secret"
	config.Rules = responsetransformer.Rules{{Prefix: "/files/", Default: "max-age=60, public"}}
	return newRouter(config, conditional.NewMemo(cache.NewMemCache())), dir
}

func TestServeFile(t *testing.T) {
	router, _ := newTestRouter(t)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/files/hello.txt", nil))

	if rr.Code != http.StatusOK || rr.Body.String() != "Hello world" {
		t.Fatalf("Response is %d %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("Content-Type is %s", ct)
	}
	if cc := rr.Header().Get("Cache-Control"); cc != "max-age=60, public" {
		t.Fatalf("Cache-Control is %s", cc)
	}
	if rr.Header().Get("ETag") == "" || rr.Header().Get("Last-Modified") == "" {
		t.Fatalf("Validators missing: %v", rr.Header())
	}
}

func TestServeFileNotModified(t *testing.T) {
	router, _ := newTestRouter(t)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/files/hello.txt", nil))

	req := httptest.NewRequest("GET", "/files/hello.txt", nil)
	req.Header.Set("If-None-Match", rr.Header().Get("ETag"))
	rr2 := httptest.NewRecorder()
	router.ServeHTTP(rr2, req)
	if rr2.Code != http.StatusNotModified || rr2.Body.Len() != 0 {
		t.Fatalf("Response is %d %s", rr2.Code, rr2.Body.String())
	}

	req = httptest.NewRequest("GET", "/files/hello.txt", nil)
	req.Header.Set("If-Modified-Since", rr.Header().Get("Last-Modified"))
	rr3 := httptest.NewRecorder()
	router.ServeHTTP(rr3, req)
	if rr3.Code != http.StatusNotModified {
		t.Fatalf("Status code is %d", rr3.Code)
	}
}

func TestServeMissingFile(t *testing.T) {
	router, _ := newTestRouter(t)
	for _, target := range []string{"/files/missing.txt", "/files/../../etc/passwd", "/files/"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest("GET", target, nil))
		if rr.Code != http.StatusNotFound {
			t.Fatalf("Status code for %s is %d", target, rr.Code)
		}
	}
}

func TestPurge(t *testing.T) {
	router, dir := newTestRouter(t)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/files/hello.txt", nil))
	later := time.Now().Add(time.Hour)
	if err := os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("Hello again"), 0644); err != nil {
		t.Fatal(err)
	}
	os.Chtimes(filepath.Join(dir, "hello.txt"), later, later)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/files/hello.txt", nil))
	if rr.Body.String() != "Hello world" {
		t.Fatalf("Body before purge is %s", rr.Body.String())
	}

	forbidden := httptest.NewRecorder()
	router.ServeHTTP(forbidden, httptest.NewRequest("POST", "/.cache/purge", nil))
	if forbidden.Code != http.StatusForbidden {
		t.Fatalf("Status code without token is %d", forbidden.Code)
	}

	purge := httptest.NewRequest("POST", "/.cache/purge?path=/files/hello.txt", nil)
	purge.Header.Set("X-Admin-Token", "secret")
	purged := httptest.NewRecorder()
	router.ServeHTTP(purged, purge)
	if purged.Code != http.StatusOK || purged.Body.String() != "1" {
		t.Fatalf("Purge response is %d %s", purged.Code, purged.Body.String())
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/files/hello.txt", nil))
	if rr.Body.String() != "Hello again" {
		t.Fatalf("Body after purge is %s", rr.Body.String())
	}
}

func TestConfig(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.yml")
	os.WriteFile(filename, []byte(`
provider: sqlite
db: results.db
rules:
  - prefix: /files/
    default: max-age=60
`), 0644)
	t.Setenv("CONDITIONAL_DB", "env.db")
	t.Setenv("REDIS_DB", "2")

	config, err := getConfig(filename, true)
	if err != nil {
		t.Fatal(err)
	}
	applyEnv(&config)
	if config.Provider != "sqlite" || config.DB != "env.db" || config.Redis.DB != 2 {
		t.Fatalf("Config is %+v", config)
	}
	if len(config.Rules) != 1 || config.Rules[0].Default != "max-age=60" {
		t.Fatalf("Rules are %+v", config.Rules)
	}
	if config.PurgeSchedule != "@every 1m" {
		t.Fatalf("Default purge schedule is %s", config.PurgeSchedule)
	}
}

func TestMissingConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yml")
	if _, err := getConfig(missing, false); err != nil {
		t.Fatalf("Optional config: %v", err)
	}
	if _, err := getConfig(missing, true); err == nil {
		t.Fatal("Expected error for required config")
	}
}

func TestNewProvider(t *testing.T) {
	config := defaultConfig()
	config.Provider = "sqlite"
	config.DB = filepath.Join(t.TempDir(), "cache.db")
	provider, closeProvider, err := newProvider(config)
	if err != nil {
		t.Fatal(err)
	}
	defer closeProvider()
	if _, ok := provider.(cache.SQLiteCache); !ok {
		t.Fatalf("Provider is %T", provider)
	}
	config.Provider = "unknown"
	if _, _, err := newProvider(config); err == nil {
		t.Fatal("Expected error")
	}
}
