package conditional

import (
	"net/http"
	"strings"
	"time"

	"github.com/always-cache/conditional/rfc9110"
)

// RequestValidators are the conditional request fields sent by a client.
type RequestValidators struct {
	// Raw If-None-Match field value. Empty means absent.
	IfNoneMatch string
	// Zero means absent.
	IfModifiedSince time.Time
}

// ParseRequestValidators reads the validators from request headers.
// A malformed If-Modified-Since date is treated as absent.
func ParseRequestValidators(h http.Header) RequestValidators {
	v := RequestValidators{
		IfNoneMatch: strings.Join(h.Values(IfNoneMatch), ", "),
	}
	if ims := h.Values(IfModifiedSince); len(ims) == 1 {
		v.IfModifiedSince, _ = rfc9110.ParseHttpDate(ims[0])
	}
	return v
}

// validatorsFor returns the validators applicable to the request.
// Only GET and HEAD requests can be answered with 304 (Not Modified).
func validatorsFor(r *http.Request) RequestValidators {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return RequestValidators{}
	}
	return ParseRequestValidators(r.Header)
}

// IsEmpty reports whether the client sent no validators.
func (v RequestValidators) IsEmpty() bool {
	return !rfc9110.FieldPresent(v.IfNoneMatch) && v.IfModifiedSince.IsZero()
}

// HasValidCache reports whether the client's cached representation is still
// valid for a representation with the given entity-tag and modification date.
// It is cheap, and meant to be called before doing any expensive work.
func (v RequestValidators) HasValidCache(etag string, lastModified time.Time) bool {
	return Evaluate(v, CacheDirectives{ETag: etag, LastModified: lastModified}).IsNotModified()
}
