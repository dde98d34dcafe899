// Package rfc9111 implements the parts of HTTP Caching (RFC 9111) used when
// generating and re-reading cache metadata (delta-seconds, Age, Cache-Control,
// Expires, freshness lifetime) and for invalidating stored responses.
//
// Each file corresponds to a section of the standard. Lines starting with §
// are quotes from the standard.
package rfc9111

import (
	"net/http"
	"time"
)

// AddAgeHeader sets the Age header, replacing any already present.
// It directly mutates the header.
func AddAgeHeader(h http.Header, age time.Duration) {
	h.Set("Age", FormatAge(age))
}
