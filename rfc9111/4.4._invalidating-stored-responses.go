package rfc9111

import (
	"net/http"
	"net/url"
)

// §  4.4.  Invalidating Stored Responses
// §
// §     Because unsafe request methods (Section 9.2.1 of [HTTP]) such as PUT,
// §     POST, or DELETE have the potential for changing state on the origin
// §     server, intervening caches are required to invalidate stored
// §     responses to keep their contents up to date.
// §
// §     A cache MUST invalidate the target URI (Section 7.1 of [HTTP]) when
// §     it receives a non-error status code in response to an unsafe request
// §     method (including methods whose safety is unknown).
// §
//
// GetInvalidateURIs returns the paths of the stored responses to invalidate
// after a response with the given status and header to the given request.
func GetInvalidateURIs(req *http.Request, statusCode int, h http.Header) []string {
	if !UnsafeRequest(req) || !nonErrorStatus(statusCode) {
		return nil
	}
	uris := []string{req.URL.Path}
	// §     A cache MAY invalidate other URIs when it receives a non-error status
	// §     code in response to an unsafe request method (including methods whose
	// §     safety is unknown).  In particular, the URI(s) in the Location and
	// §     Content-Location response header fields (if present) are candidates
	// §     for invalidation; other URIs might be discovered through mechanisms
	// §     not specified in this document.  However, a cache MUST NOT trigger an
	// §     invalidation under these conditions if the origin (Section 4.3.1 of
	// §     [HTTP]) of the URI to be invalidated differs from that of the target
	// §     URI (Section 7.1 of [HTTP]).  This helps prevent denial-of-service
	// §     attacks.
	// §
	// §     "Invalidate" means that the cache will either remove all stored
	// §     responses whose target URI matches the given URI or mark them as
	// §     "invalid" and in need of a mandatory validation before they can be
	// §     sent in response to a subsequent request.
	for _, name := range []string{"Location", "Content-Location"} {
		if uri, ok := sameOriginPath(req, h.Get(name)); ok {
			uris = append(uris, uri)
		}
	}
	return uris
}

func sameOriginPath(req *http.Request, location string) (string, bool) {
	if location == "" {
		return "", false
	}
	ref, err := url.Parse(location)
	if err != nil {
		return "", false
	}
	if ref.IsAbs() && (ref.Host != requestHost(req) || (req.URL.Scheme != "" && ref.Scheme != req.URL.Scheme)) {
		return "", false
	}
	return req.URL.ResolveReference(ref).Path, true
}

func requestHost(req *http.Request) string {
	if req.URL.Host != "" {
		return req.URL.Host
	}
	return req.Host
}

// §
// §     A "non-error response" is one with a 2xx (Successful) or 3xx
// §     (Redirection) status code.
// §
// §     Note that this does not guarantee that all appropriate responses are
// §     invalidated globally; a state-changing request would only invalidate
// §     responses in the caches it travels through.
func nonErrorStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 400
}

// UnsafeRequest reports whether the request method is unsafe, or of unknown safety.
func UnsafeRequest(req *http.Request) bool {
	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	}
	return true
}
