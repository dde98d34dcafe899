package rfc9111

import (
	"net/http"
	"strings"
	"time"
)

// §  5.1.  Age
// §
// §     The "Age" response header field conveys the sender's estimate of the
// §     time since the response was generated or successfully validated at
// §     the origin server.  Age values are calculated as specified in
// §     Section 4.2.3.
// §
// §       Age = delta-seconds
// §
// §     The Age field value is a non-negative integer, representing time in
// §     seconds (see Section 1.2.2).
// §
// §     Although it is defined as a singleton header field, a cache
// §     encountering a message with a list-based Age field value SHOULD use
// §     the first member of the field value, discarding subsequent ones.
// §
// §     If the field value (after discarding additional members, as per
// §     above) is invalid (e.g., it contains something other than a non-
// §     negative integer), a cache SHOULD ignore the field.
// §
// §     The presence of an Age header field implies that the response was not
// §     generated or validated by the origin server for this request.
// §     However, lack of an Age header field does not imply the origin was
// §     contacted.

// GetAge returns the value of the Age field, and whether a valid one was present.
func GetAge(h http.Header) (time.Duration, bool) {
	value := h.Get("Age")
	if value == "" {
		return 0, false
	}
	first, _, _ := strings.Cut(value, ",")
	return deltaSeconds(strings.TrimSpace(first))
}

// FormatAge formats age as an Age field value.
func FormatAge(age time.Duration) string {
	return toDeltaSeconds(age)
}
