package responsetransformer

import (
	"net/http"
	"testing"

	"gopkg.in/yaml.v3"
)

const testRules = `
- path: /exact
  override: max-age=10
- prefix: /static/
  default: max-age=86400, public
  headers:
    X-Static: "1"
- prefix: /search
  query:
    q: ""
  default: no-store
`

func loadRules(t *testing.T) Rules {
	var rules Rules
	if err := yaml.Unmarshal([]byte(testRules), &rules); err != nil {
		t.Fatal(err)
	}
	return rules
}

func TestFindRule(t *testing.T) {
	rules := loadRules(t)
	tests := []struct {
		method, target string
		want           string
	}{
		{"GET", "/exact", "max-age=10"},
		{"HEAD", "/static/app.js", "max-age=86400, public"},
		{"GET", "/search?q=go", "no-store"},
		{"GET", "/search", ""},
		{"POST", "/exact", ""},
	}
	for _, test := range tests {
		req, _ := http.NewRequest(test.method, test.target, nil)
		rule := rules.Find(req)
		got := ""
		if rule != nil {
			got = rule.Default + rule.Override
		}
		if got != test.want {
			t.Fatalf("%s %s matched %q", test.method, test.target, got)
		}
	}
}

func TestApplyDefaultKeepsExisting(t *testing.T) {
	rules := loadRules(t)
	req, _ := http.NewRequest("GET", "/static/app.js", nil)
	h := http.Header{}
	h.Set("Cache-Control", "max-age=5")
	rules.Apply(req, http.StatusOK, h)
	if cc := h.Get("Cache-Control"); cc != "max-age=5" {
		t.Fatalf("Cache-Control is %s", cc)
	}
	if h.Get("X-Static") != "1" {
		t.Fatal("Header not set")
	}
}

func TestApplyOverride(t *testing.T) {
	rules := loadRules(t)
	req, _ := http.NewRequest("GET", "/exact", nil)
	h := http.Header{}
	h.Set("Cache-Control", "no-cache")
	rules.Apply(req, http.StatusOK, h)
	if cc := h.Get("Cache-Control"); cc != "max-age=10" {
		t.Fatalf("Cache-Control is %s", cc)
	}
}

func TestApplyOnlySuccess(t *testing.T) {
	rules := loadRules(t)
	req, _ := http.NewRequest("GET", "/exact", nil)
	h := http.Header{}
	if rule := rules.Apply(req, http.StatusNotFound, h); rule != nil || len(h) != 0 {
		t.Fatalf("Rule applied to error: %v", h)
	}
}
