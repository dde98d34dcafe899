package conditional

import (
	"net/http"
	"strconv"
)

// Result is the outcome of a service call: a representation together
// with its cache metadata.
type Result struct {
	CacheDirectives
	// Zero means 200 (OK).
	StatusCode  int
	ContentType string
	// Additional response header fields. Cache headers are generated from
	// the directives and must not be set here.
	Header http.Header
	Body   []byte

	notModified bool
}

// NewResult returns a 200 (OK) result.
func NewResult(body []byte, d CacheDirectives) *Result {
	return &Result{CacheDirectives: d, StatusCode: http.StatusOK, Body: body}
}

// NotModifiedResult returns a result for a service that has already found,
// e.g. with RequestValidators.HasValidCache, that the client's cached
// representation is valid. Directives that the service did not compute,
// such as Age, are simply not sent.
func NotModifiedResult(d CacheDirectives) *Result {
	return &Result{CacheDirectives: d, StatusCode: http.StatusOK, notModified: true}
}

// IsNotModified reports whether the result was created with NotModifiedResult.
func (res *Result) IsNotModified() bool {
	return res.notModified
}

func (res *Result) status() int {
	if res.StatusCode == 0 {
		return http.StatusOK
	}
	return res.StatusCode
}

// Decide evaluates the request validators against the result.
// Only 200 (OK) results are subject to validation.
func (res *Result) Decide(v RequestValidators) Decision {
	if res.notModified {
		return Decision{NotModified, res.CacheDirectives}
	}
	if v.IsEmpty() || res.status() != http.StatusOK {
		return Decision{Proceed, res.CacheDirectives}
	}
	return Evaluate(v, res.CacheDirectives)
}

// WriteResult writes the result as the response to the request: either
// 304 (Not Modified) without body, or the full response with cache headers.
// Validators are only taken into account for GET and HEAD requests.
func WriteResult(w http.ResponseWriter, r *http.Request, res *Result) Decision {
	dec := res.Decide(validatorsFor(r))
	h := w.Header()
	copyHeader(h, res.Header)
	dec.WriteHeaders(h)
	if dec.IsNotModified() {
		writeNotModified(w)
		return dec
	}
	if res.ContentType != "" {
		h.Set("Content-Type", res.ContentType)
	}
	h.Set("Content-Length", strconv.Itoa(len(res.Body)))
	w.WriteHeader(res.status())
	if r.Method != http.MethodHead {
		w.Write(res.Body)
	}
	return dec
}

// writeNotModified sends 304 (Not Modified). Representation metadata other
// than the cache headers is removed, as RFC 9110 section 15.4.5 suggests.
func writeNotModified(w http.ResponseWriter) {
	h := w.Header()
	h.Del("Content-Type")
	h.Del("Content-Length")
	h.Del("Content-Encoding")
	w.WriteHeader(http.StatusNotModified)
}
