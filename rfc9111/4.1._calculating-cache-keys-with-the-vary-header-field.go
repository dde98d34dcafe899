package rfc9111

import (
	"net/http"
	"strings"
)

// §  4.1.  Calculating Cache Keys with the Vary Header Field
// §
// §     When a cache receives a request that can be satisfied by a stored
// §     response and that stored response contains a Vary header field
// §     (Section 12.5.5 of [HTTP]), the cache MUST NOT use that stored
// §     response without revalidation unless all the presented request header
// §     fields nominated by that Vary field value match those fields in the
// §     original request (i.e., the request that caused the cached response
// §     to be stored).
//
// VaryFields returns the request header fields nominated by the Vary field,
// in canonical form. A member "*" is returned as is.
func VaryFields(h http.Header) []string {
	var fields []string
	for _, value := range h.Values("Vary") {
		for _, member := range strings.Split(value, ",") {
			member = strings.TrimSpace(member)
			if member == "" {
				continue
			}
			fields = append(fields, http.CanonicalHeaderKey(member))
		}
	}
	return fields
}

// §     A stored response with a Vary header field value containing a member
// §     "*" always fails to match.
//
// HasVary reports whether a response with the given header varies on the
// request, i.e. whether reusing it requires comparing request fields.
func HasVary(h http.Header) bool {
	return len(VaryFields(h)) > 0
}
