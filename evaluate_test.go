package conditional

import (
	"net/http"
	"testing"
	"time"
)

func TestProceedWithETagOnly(t *testing.T) {
	dec := Evaluate(RequestValidators{}, CacheDirectives{ETag: "etag"})
	if dec.IsNotModified() {
		t.Fatal("Expected Proceed")
	}
	h := dec.Header()
	if etag := h.Get(ETag); etag != `"etag"` {
		t.Fatalf("ETag is %s", etag)
	}
	if cc := h.Get(CacheControl); cc != "max-age=3600" {
		t.Fatalf("Cache-Control is %s", cc)
	}
	if len(h) != 2 {
		t.Fatalf("Unexpected headers %v", h)
	}
}

func TestProceedAllHeaders(t *testing.T) {
	d := CacheDirectives{
		ETag:   "etag",
		Age:    Duration(10 * 24 * time.Hour),
		MaxAge: Duration(24 * time.Hour),
		Flags:  Public | NoStore | MustRevalidate,
	}
	h := Evaluate(RequestValidators{}, d).Header()
	if age := h.Get(Age); age != "864000" {
		t.Fatalf("Age is %s", age)
	}
	if etag := h.Get(ETag); etag != `"etag"` {
		t.Fatalf("ETag is %s", etag)
	}
	if cc := h.Get(CacheControl); cc != "max-age=86400, public, no-store, must-revalidate" {
		t.Fatalf("Cache-Control is %s", cc)
	}
}

func TestIfNoneMatchEqual(t *testing.T) {
	v := RequestValidators{IfNoneMatch: `"etag"`}
	tests := []CacheDirectives{
		{ETag: "etag"},
		{ETag: `"etag"`},
		{ETag: "etag", LastModified: time.Now(), MaxAge: Duration(time.Minute), Flags: NoCache},
	}
	for _, d := range tests {
		if dec := Evaluate(v, d); !dec.IsNotModified() {
			t.Fatalf("Expected NotModified for %+v", d)
		}
	}
}

func TestIfNoneMatchDifferent(t *testing.T) {
	v := RequestValidators{IfNoneMatch: `"etag"`}
	dec := Evaluate(v, CacheDirectives{ETag: "etag-alt"})
	if dec.IsNotModified() {
		t.Fatal("Expected Proceed")
	}
	if etag := dec.Header().Get(ETag); etag != `"etag-alt"` {
		t.Fatalf("ETag is %s", etag)
	}
}

func TestIfNoneMatchTakesPrecedence(t *testing.T) {
	lastModified := time.Date(2022, time.October, 20, 12, 0, 0, 0, time.UTC)
	v := RequestValidators{IfNoneMatch: `"old"`, IfModifiedSince: lastModified.Add(time.Hour)}
	dec := Evaluate(v, CacheDirectives{ETag: "new", LastModified: lastModified})
	if dec.IsNotModified() {
		t.Fatal("Date must not be consulted when If-None-Match is present")
	}
}

func TestIfModifiedSince(t *testing.T) {
	lastModified := time.Date(2022, time.October, 20, 12, 0, 0, 300, time.UTC)
	d := CacheDirectives{LastModified: lastModified}
	tests := []struct {
		name string
		ims  time.Time
		want Outcome
	}{
		{"before", lastModified.Add(-time.Second), Proceed},
		{"same second", lastModified.Truncate(time.Second), NotModified},
		{"after", lastModified.Add(time.Minute), NotModified},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dec := Evaluate(RequestValidators{IfModifiedSince: test.ims}, d)
			if dec.Outcome != test.want {
				t.Fatalf("Outcome is %s", dec.Outcome)
			}
		})
	}
}

func TestIfModifiedSinceWithoutLastModified(t *testing.T) {
	v := RequestValidators{IfModifiedSince: time.Now()}
	if Evaluate(v, CacheDirectives{ETag: "etag"}).IsNotModified() {
		t.Fatal("Expected Proceed")
	}
}

func TestNotModifiedHeaders(t *testing.T) {
	d := CacheDirectives{ETag: "etag", LastModified: time.Now(), MaxAge: Duration(time.Minute)}
	h := Evaluate(RequestValidators{IfNoneMatch: "etag"}, d).Header()
	if cc := h.Get(CacheControl); cc != "max-age=60" {
		t.Fatalf("Cache-Control is %s", cc)
	}
	if lm := h.Get(LastModified); lm != "" {
		t.Fatalf("Last-Modified is %s", lm)
	}
	if _, ok := h[http.CanonicalHeaderKey(Age)]; ok {
		t.Fatal("Age should be absent")
	}
}

func TestParseRequestValidators(t *testing.T) {
	h := make(http.Header)
	h.Add(IfNoneMatch, `"a"`)
	h.Add(IfNoneMatch, `"b"`)
	h.Set(IfModifiedSince, "Thu, 20 Oct 2022 12:00:00 GMT")
	v := ParseRequestValidators(h)
	if v.IfNoneMatch != `"a", "b"` {
		t.Fatalf("If-None-Match is %s", v.IfNoneMatch)
	}
	if !v.IfModifiedSince.Equal(time.Date(2022, time.October, 20, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("If-Modified-Since is %s", v.IfModifiedSince)
	}
	h.Set(IfModifiedSince, "last week")
	if v := ParseRequestValidators(h); !v.IfModifiedSince.IsZero() {
		t.Fatal("Malformed date should be absent")
	}
}

func TestHasValidCache(t *testing.T) {
	v := RequestValidators{IfNoneMatch: `"etag"`}
	if !v.HasValidCache("etag", time.Time{}) {
		t.Fatal("Expected valid cache")
	}
	if v.HasValidCache("other", time.Time{}) {
		t.Fatal("Expected invalid cache")
	}
	if (RequestValidators{}).HasValidCache("etag", time.Now()) {
		t.Fatal("No validators means no valid cache")
	}
}

func TestDirectivesFromHeader(t *testing.T) {
	lastModified := time.Date(2022, time.October, 20, 12, 0, 0, 0, time.UTC)
	d := CacheDirectives{
		ETag:         "etag",
		Age:          Duration(10 * time.Second),
		MaxAge:       Duration(time.Minute),
		LastModified: lastModified,
		Expires:      lastModified.Add(time.Hour),
		Flags:        Public | MustRevalidate,
	}
	h := Evaluate(RequestValidators{}, d).Header()
	got := DirectivesFromHeader(h)
	if got.ETag != "etag" || *got.Age != *d.Age || *got.MaxAge != *d.MaxAge ||
		!got.LastModified.Equal(lastModified) || !got.Expires.Equal(d.Expires) || got.Flags != d.Flags {
		t.Fatalf("Directives are %+v", got)
	}
}
