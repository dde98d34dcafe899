package rfc9111

import "net/http"

// §  3.5.  Storing Responses to Authenticated Requests
// §
// §     A shared cache MUST NOT use a cached response to a request with an
// §     Authorization header field (Section 11.6.2 of [HTTP]) to satisfy any
// §     subsequent request unless the response contains a Cache-Control field
// §     with a response directive (Section 5.2.2) that allows it to be stored
// §     by a shared cache, and the cache conforms to the requirements of that
// §     directive for that response.
func Authenticated(req *http.Request) bool {
	return req.Header.Get("Authorization") != ""
}

// §     In this specification, the following response directives have such an
// §     effect: must-revalidate (Section 5.2.2.2), public (Section 5.2.2.9),
// §     and s-maxage (Section 5.2.2.10).
//
// MayStoreAuthenticated reports whether a response with the given header,
// sent to an authenticated request, may be stored by a shared cache.
func MayStoreAuthenticated(h http.Header) bool {
	cc := ParseCacheControl(h.Values("Cache-Control"))
	return cc.HasDirective(PublicDirective) ||
		cc.HasDirective(MustRevalidateDirective) ||
		cc.HasDirective(SMaxAgeDirective)
}
