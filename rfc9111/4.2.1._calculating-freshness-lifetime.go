package rfc9111

import (
	"net/http"
	"time"

	"github.com/always-cache/conditional/rfc9110"
)

// GetExpiration returns the time at which a response with the given header,
// received at the given time, becomes stale.
// The boolean is false when the header carries no explicit expiration time.
func GetExpiration(h http.Header, receivedAt time.Time) (time.Time, bool) {
	if ttl, ok := freshnessLifetime(h, receivedAt); ok {
		return receivedAt.Add(ttl), true
	}
	return time.Time{}, false
}

// §  4.2.1.  Calculating Freshness Lifetime
// §
func freshnessLifetime(h http.Header, receivedAt time.Time) (time.Duration, bool) {
	resCacheControl := ParseCacheControl(h.Values("Cache-Control"))
	// §     A cache can calculate the freshness lifetime (denoted as
	// §     freshness_lifetime) of a response by evaluating the following rules
	// §     and using the first match:
	// §
	// §     *  If the cache is shared and the s-maxage response directive
	// §        (Section 5.2.2.10) is present, use its value, or
	if val, ok := resCacheControl.SMaxAge(); ok {
		return val, true
	}
	// §
	// §     *  If the max-age response directive (Section 5.2.2.1) is present,
	// §        use its value, or
	if val, ok := resCacheControl.MaxAge(); ok {
		return val, true
	}
	// §
	// §     *  If the Expires response header field (Section 5.3) is present, use
	// §        its value minus the value of the Date response header field (using
	// §        the time the message was received if it is not present, as per
	// §        Section 6.6.1 of [HTTP]), or
	if expires, ok := getExpires(h); ok {
		date, ok := rfc9110.ParseHttpDate(h.Get("Date"))
		if !ok {
			date = receivedAt
		}
		return durationMax(0, expires.Sub(date)), true
	}
	// §
	// §     *  Otherwise, no explicit expiration time is present in the response.
	// §        A heuristic freshness lifetime might be applicable; see
	// §        Section 4.2.2.
	return 0, false
}

func durationMax(d1, d2 time.Duration) time.Duration {
	if d1 > d2 {
		return d1
	}
	return d2
}
