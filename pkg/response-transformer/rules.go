package responsetransformer

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

type Rules []Rule

// Rule supplies cache directives for the requests it matches.
// Default and Override are Cache-Control field values.
type Rule struct {
	Prefix   string            `yaml:"prefix"`
	Path     string            `yaml:"path"`
	Method   string            `yaml:"method"`
	Default  string            `yaml:"default"`
	Override string            `yaml:"override"`
	Query    map[string]string `yaml:"query"`
	Headers  map[string]string `yaml:"headers"`
}

// Apply applies the first rule matching the request to the response header.
// Only successful responses are transformed. It returns the applied rule, if any.
func (r Rules) Apply(req *http.Request, statusCode int, h http.Header) *Rule {
	if statusCode != http.StatusOK {
		return nil
	}
	rule := r.Find(req)
	if rule != nil {
		applyRuleToHeader(*rule, h)
	}
	return rule
}

func applyRuleToHeader(rule Rule, h http.Header) {
	if rule.Override != "" {
		log.Trace().Msg("Overriding Cache-Control header")
		h.Set("Cache-Control", rule.Override)
	} else if rule.Default != "" && h.Get("Cache-Control") == "" {
		log.Trace().Msg("Applying default Cache-Control header")
		h.Set("Cache-Control", rule.Default)
	}
	for name, value := range rule.Headers {
		log.Trace().Msgf("Setting header %s", name)
		h.Set(name, value)
	}
}

// Find returns the first rule matching the request.
// Rules without a method match GET and HEAD requests.
func (r Rules) Find(req *http.Request) *Rule {
	log.Trace().Msgf("Finding rule for request %s:%s", req.Method, req.URL.Path)
rulesLoop:
	for i := range r {
		rule := &r[i]
		if rule.Method == "" && req.Method != http.MethodGet && req.Method != http.MethodHead {
			continue
		}
		if rule.Method != "" && !strings.EqualFold(rule.Method, req.Method) {
			continue
		}
		if rule.Path != "" && rule.Path != req.URL.Path {
			continue
		}
		if rule.Prefix != "" && !strings.HasPrefix(req.URL.Path, rule.Prefix) {
			continue
		}
		if len(rule.Query) > 0 {
			qry := req.URL.Query()
			for name, value := range rule.Query {
				if value == "" && !qry.Has(name) {
					continue rulesLoop
				} else if value != "" && qry.Get(name) != value {
					continue rulesLoop
				}
			}
		}
		return rule
	}
	return nil
}
