// Package rfc9211 implements the Cache-Status HTTP response header field (RFC 9211).
//
// Lines starting with § are quotes from the standard.
package rfc9211

import (
	"net/http"
	"strconv"
	"strings"
)

// §  2.  The Cache-Status HTTP Response Header Field
// §
// §     The Cache-Status HTTP response header field indicates caches' handling
// §     of the request corresponding to the response it occurs within.
// §
// §     Its value is a List (Section 3.1 of [STRUCTURED-FIELDS]):
// §
// §     Cache-Status   = sf-list
// §
// §     Each member of the list represents a cache that has handled the
// §     request.  The first member of the list represents the cache closest
// §     to the origin server, and the last member of the list represents the
// §     cache closest to the user (possibly including the user agent's cache
// §     itself if it appends a value).

// HeaderName is the name of the field.
const HeaderName = "Cache-Status"

// FwdReason is the value of the fwd parameter.
type FwdReason string

// §  2.2.  The fwd Parameter
// §
// §     "fwd" indicates that the request went forward towards the origin and
// §     why.
const (
	// §     bypass:  The cache was configured to not handle this request.
	FwdReasonBypass FwdReason = "bypass"
	// §     method:  The request method's semantics require the request to be
	// §        forwarded.
	FwdReasonMethod FwdReason = "method"
	// §     uri-miss:  The cache did not contain any responses that matched the
	// §        request URI.
	FwdReasonUriMiss FwdReason = "uri-miss"
	// §     miss:  The cache did not contain any responses that could be used to
	// §        satisfy this request (to be used when an implementation cannot
	// §        distinguish between uri-miss and vary-miss).
	FwdReasonMiss FwdReason = "miss"
	// §     request:  The cache was able to select a fresh response for the
	// §        request, but the request's semantics (e.g., Cache-Control request
	// §        directives) did not allow its use.
	FwdReasonRequest FwdReason = "request"
	// §     stale:  The cache was able to select a response for the request, but
	// §        it was stale.
	FwdReasonStale FwdReason = "stale"
)

// Status is the kind of handling, either hit or fwd.
type Status string

const (
	// §  2.1.  The hit Parameter
	// §
	// §     "hit", when true, indicates that the request was satisfied by the
	// §     cache; that is, it was not forwarded, and the response was obtained
	// §     from the cache.
	StatusHit Status = "hit"
	StatusFwd Status = "fwd"
)

// CacheStatus is a single member of the Cache-Status list.
type CacheStatus struct {
	// Cache identifies the cache, e.g. the product name.
	Cache     string
	Status    Status
	FwdReason FwdReason
	// §  2.3.  The fwd-status Parameter
	// §
	// §     "fwd-status" indicates what status code the next hop server returned
	// §     in response to the forwarded request.
	FwdStatus int
	// §  2.4.  The ttl Parameter
	// §
	// §     "ttl" indicates the response's remaining freshness lifetime as
	// §     calculated by the cache, as an integer number of seconds, measured
	// §     when the response header section is sent by the cache.
	TimeToLive    int
	hasTimeToLive bool
	// §  2.5.  The stored Parameter
	// §
	// §     "stored" indicates whether the cache stored the response (Section 3
	// §     of [HTTP-CACHING]); a true value indicates that it did.
	Stored bool
	// §  2.7.  The key Parameter
	// §
	// §     "key" conveys a representation of the cache key (Section 2 of
	// §     [HTTP-CACHING]) used for the response.
	Key string
	// §  2.8.  The detail Parameter
	// §
	// §     "detail" allows implementations to convey additional information not
	// §     captured in other parameters, such as implementation-specific states
	// §     or other caching-related metrics.
	Detail string
}

// New returns a CacheStatus for the named cache.
func New(cache string) CacheStatus {
	return CacheStatus{Cache: cache}
}

// Hit marks the request as satisfied by the cache.
func (cs *CacheStatus) Hit() {
	cs.Status = StatusHit
	cs.FwdReason = ""
}

// Forward marks the request as forwarded for the given reason.
func (cs *CacheStatus) Forward(reason FwdReason) {
	cs.Status = StatusFwd
	cs.FwdReason = reason
}

// SetTimeToLive sets the ttl parameter, in whole seconds.
func (cs *CacheStatus) SetTimeToLive(seconds int) {
	cs.TimeToLive = seconds
	cs.hasTimeToLive = true
}

// IsHit reports whether the status is a hit.
func (cs CacheStatus) IsHit() bool {
	return cs.Status == StatusHit
}

// String returns the list member in structured field syntax.
func (cs CacheStatus) String() string {
	var b strings.Builder
	b.WriteString(cacheName(cs.Cache))
	switch {
	case cs.Status == StatusHit:
		b.WriteString("; hit")
	case cs.Status == StatusFwd && cs.FwdReason != "":
		b.WriteString("; fwd=" + string(cs.FwdReason))
	}
	if cs.FwdStatus != 0 {
		b.WriteString("; fwd-status=" + strconv.Itoa(cs.FwdStatus))
	}
	if cs.hasTimeToLive {
		b.WriteString("; ttl=" + strconv.Itoa(cs.TimeToLive))
	}
	if cs.Stored {
		b.WriteString("; stored")
	}
	if cs.Key != "" {
		b.WriteString("; key=" + strconv.Quote(cs.Key))
	}
	if cs.Detail != "" {
		b.WriteString("; detail=" + strconv.Quote(cs.Detail))
	}
	return b.String()
}

// AddTo appends the member to the Cache-Status header.
func (cs CacheStatus) AddTo(h http.Header) {
	h.Add(HeaderName, cs.String())
}

// §     Each list member identifies the cache that inserted it and this
// §     identifier MUST be a String or Token.
func cacheName(name string) string {
	if name == "" {
		return "Unknown"
	}
	if strings.ContainsAny(name, " ,;=\"") {
		return strconv.Quote(name)
	}
	return name
}
