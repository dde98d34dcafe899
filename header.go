package conditional

import (
	"net/http"
	"time"

	"github.com/always-cache/conditional/rfc9110"
	"github.com/always-cache/conditional/rfc9111"
)

const (
	// IfModifiedSince the "If-Modified-Since" HTTP request header name
	IfModifiedSince = "If-Modified-Since"
	// IfNoneMatch the "If-None-Match" HTTP request header name
	IfNoneMatch = "If-None-Match"
	// LastModified the "Last-Modified" HTTP response header name
	LastModified = "Last-Modified"
	// ETag the "ETag" HTTP response header name
	ETag = "ETag"
	// Age the "Age" HTTP response header name
	Age = "Age"
	// Expires the "Expires" HTTP response header name
	Expires = "Expires"
	// CacheControl the "Cache-Control" HTTP response header name
	CacheControl = "Cache-Control"
)

// cacheHeaders are the headers generated from CacheDirectives.
var cacheHeaders = []string{ETag, LastModified, Age, Expires, CacheControl}

// WriteHeaders sets the cache headers for the decision, replacing existing values.
//
// For NotModified, Last-Modified is left out when there is an entity-tag.
// Age is only written if the directives carry one: a service that
// short-circuits without computing the age sends no Age at all.
func (dec Decision) WriteHeaders(h http.Header) {
	d := dec.Directives
	etag := rfc9110.QuoteEntityTag(d.ETag)
	if etag != "" {
		h.Set(ETag, etag)
	}
	if !d.LastModified.IsZero() && !(dec.IsNotModified() && etag != "") {
		h.Set(LastModified, rfc9110.FormatHttpDate(d.LastModified))
	}
	if d.Age != nil {
		rfc9111.AddAgeHeader(h, *d.Age)
	}
	if !d.Expires.IsZero() {
		h.Set(Expires, rfc9110.FormatHttpDate(d.Expires))
	}
	if cc := d.CacheControl(); cc != "" {
		h.Set(CacheControl, cc)
	}
}

// Header returns a new header containing the cache headers for the decision.
func (dec Decision) Header() http.Header {
	h := make(http.Header)
	dec.WriteHeaders(h)
	return h
}

// DirectivesFromHeader reads cache directives from response headers.
// Malformed values are treated as absent.
func DirectivesFromHeader(h http.Header) CacheDirectives {
	var d CacheDirectives
	if e, ok := rfc9110.ParseEntityTag(h.Get(ETag)); ok {
		if e.Weak {
			d.ETag = e.String()
		} else {
			d.ETag = e.Tag
		}
	}
	d.LastModified, _ = rfc9110.ParseHttpDate(h.Get(LastModified))
	d.Expires, _ = rfc9110.ParseHttpDate(h.Get(Expires))
	if age, ok := rfc9111.GetAge(h); ok {
		d.Age = Duration(age)
	}
	cc := rfc9111.ParseCacheControl(h.Values(CacheControl))
	if maxAge, ok := cc.MaxAge(); ok {
		d.MaxAge = Duration(maxAge)
	}
	d.Flags = flagsFromCacheControl(cc)
	return d
}

func flagsFromCacheControl(cc rfc9111.CacheControl) CacheControlFlags {
	var flags CacheControlFlags
	for _, fd := range flagDirectives {
		if cc.HasDirective(fd.directive) {
			flags |= fd.flag
		}
	}
	return flags
}

// removeCacheHeaders deletes the headers that are generated from CacheDirectives.
func removeCacheHeaders(h http.Header) {
	for _, name := range cacheHeaders {
		h.Del(name)
	}
}

func copyHeader(dst, src http.Header) {
	for k, vv := range src {
		for _, v := range vv {
			dst.Add(k, v)
		}
	}
}

// cacheControlDirectives reads max-age and the flags from a Cache-Control field value.
func cacheControlDirectives(value string) (*time.Duration, CacheControlFlags) {
	cc := rfc9111.ParseCacheControl([]string{value})
	var maxAge *time.Duration
	if d, ok := cc.MaxAge(); ok {
		maxAge = Duration(d)
	}
	return maxAge, flagsFromCacheControl(cc)
}
