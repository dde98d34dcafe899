package rfc9110

import "time"

// §  13.1.3.  If-Modified-Since
// §
// §     The "If-Modified-Since" header field makes a GET or HEAD request
// §     method conditional on the selected representation's modification
// §     date being more recent than the date provided in the field value.
// §     Transfer of the selected representation's data is avoided if that
// §     data has not changed.
// §
// §       If-Modified-Since = HTTP-date
// §
// §     [...]
// §
// §     A recipient MUST ignore If-Modified-Since if the request contains an
// §     If-None-Match header field; the condition in If-None-Match is
// §     considered to be a more accurate replacement for the condition in
// §     If-Modified-Since, and the two are only combined for the sake of
// §     interoperating with older intermediaries that might not implement
// §     If-None-Match.
// §
// §     A recipient MUST ignore the If-Modified-Since header field if the
// §     received field value is not a valid HTTP-date, the field value has
// §     more than one member, or if the request method is neither GET nor
// §     HEAD.
// §
// §     [...]
// §
// §     To evaluate a received If-Modified-Since header field:
// §
// §     1.  If the selected representation's last modification date is
// §         earlier or equal to the date provided in the field value, the
// §         condition is false.
// §
// §     2.  Otherwise, the condition is true.

// ModifiedSinceFalse returns true if the representation has not been modified
// since ifModifiedSince, i.e. the If-Modified-Since condition is false.
// Both dates are compared at one second resolution, the resolution of HTTP-date.
// A zero time on either side means the validator is absent, and the condition is true.
func ModifiedSinceFalse(ifModifiedSince, lastModified time.Time) bool {
	if ifModifiedSince.IsZero() || lastModified.IsZero() {
		return false
	}
	return lastModified.Unix() <= ifModifiedSince.Unix()
}
