package conditional

import "github.com/always-cache/conditional/rfc9110"

// Outcome is the kind of a Decision.
type Outcome int

const (
	// Proceed means the full response is to be sent.
	Proceed Outcome = iota
	// NotModified means a 304 (Not Modified) response without body is to be sent.
	NotModified
)

func (o Outcome) String() string {
	if o == NotModified {
		return "not-modified"
	}
	return "proceed"
}

// Decision is the result of evaluating request validators against
// response cache directives.
type Decision struct {
	Outcome    Outcome
	Directives CacheDirectives
}

// IsNotModified reports whether the outcome is NotModified.
func (d Decision) IsNotModified() bool {
	return d.Outcome == NotModified
}

// Evaluate decides whether a response with the given directives can be
// short-circuited with NotModified, or whether the full response is needed.
//
// If-None-Match takes precedence: when present, If-Modified-Since is not
// consulted even if the entity-tags differ. Evaluate is pure and never fails;
// missing or malformed validators count as absent.
func Evaluate(v RequestValidators, d CacheDirectives) Decision {
	if rfc9110.FieldPresent(v.IfNoneMatch) {
		if rfc9110.NoneMatchFalse(v.IfNoneMatch, d.ETag) {
			return Decision{NotModified, d}
		}
		return Decision{Proceed, d}
	}
	if rfc9110.ModifiedSinceFalse(v.IfModifiedSince, d.LastModified) {
		return Decision{NotModified, d}
	}
	return Decision{Proceed, d}
}
