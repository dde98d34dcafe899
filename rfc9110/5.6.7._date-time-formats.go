package rfc9110

import (
	"fmt"
	"strings"
	"time"
)

// §  5.6.7.  Date/Time Formats
// §
// §     Prior to 1995, there were three different formats commonly used by
// §     servers to communicate timestamps.  For compatibility with old
// §     implementations, all three are defined here.  The preferred format
// §     is a fixed-length and single-zone subset of the date and time
// §     specification used by the Internet Message Format [RFC5322].
// §
// §       HTTP-date    = IMF-fixdate / obs-date
// §
// §     An example of the preferred format is
// §
// §       Sun, 06 Nov 1994 08:49:37 GMT    ; IMF-fixdate
// §
// §     Examples of the two obsolete formats are
// §
// §       Sunday, 06-Nov-94 08:49:37 GMT   ; obsolete RFC 850 format
// §       Sun Nov  6 08:49:37 1994         ; ANSI C's asctime() format
// §
// §     A recipient that parses a timestamp value in an HTTP field MUST
// §     accept all three HTTP-date formats.  When a sender generates a field
// §     that contains one or more timestamps defined as HTTP-date, the sender
// §     MUST generate those timestamps in the IMF-fixdate format.

const (
	imfFixdateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"
	rfc850Layout     = "Monday, 02-Jan-06 15:04:05 GMT"
	asctimeLayout    = "Mon Jan _2 15:04:05 2006"
)

// HttpDate parses an HTTP-date in any of the three accepted formats.
// The returned time is in UTC.
func HttpDate(dateStr string) (time.Time, error) {
	str := normalizeDateStr(dateStr)
	if date, err := time.Parse(imfFixdateLayout, str); err == nil {
		return date.UTC(), nil
	}
	// try to parse as obsolete date
	if date, err := time.Parse(rfc850Layout, str); err == nil {
		return date.UTC(), nil
	}
	if date, err := time.Parse(asctimeLayout, str); err == nil {
		return date.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid HTTP-date: %q", dateStr)
}

// ParseHttpDate is like HttpDate, but reports failure with a boolean.
// An empty or malformed value is reported as absent.
func ParseHttpDate(dateStr string) (time.Time, bool) {
	if !FieldPresent(dateStr) {
		return time.Time{}, false
	}
	date, err := HttpDate(dateStr)
	return date, err == nil
}

// FormatHttpDate returns t as an IMF-fixdate.
func FormatHttpDate(t time.Time) string {
	// §     [...] an HTTP-date value represents time as an instance of
	// §     Coordinated Universal Time (UTC).
	return t.UTC().Format(imfFixdateLayout)
}

// §     Recipients of timestamp values are encouraged to be robust in parsing
// §     timestamps unless otherwise restricted by the field definition.
// §     [...]
// §     HTTP-date is case sensitive.
//
// Being case sensitive is not robust: day and month names are matched
// case-insensitively by time.Parse, so only the zone literal needs fixing.
func normalizeDateStr(dateStr string) string {
	str := strings.TrimSpace(dateStr)
	if n := len(str); n >= 3 && strings.EqualFold(str[n-3:], "GMT") {
		str = str[:n-3] + "GMT"
	}
	return str
}

// FieldPresent returns whether a field value is present, i.e. non-empty
// after removing optional whitespace.
func FieldPresent(value string) bool {
	return strings.TrimSpace(value) != ""
}
