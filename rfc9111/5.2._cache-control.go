package rfc9111

import (
	"strings"
	"time"
)

// §  5.2.  Cache-Control
// §
// §     The "Cache-Control" header field is used to list directives for
// §     caches along the request/response chain.  [...]
// §     Cache directives are identified by a token, to be compared
// §     case-insensitively, and have an optional argument that can use both
// §     token and quoted-string syntax.  For the directives defined below
// §     that define arguments, recipients ought to accept both forms, even if
// §     a specific form is required for generation.
// §
// §       Cache-Control   = #cache-directive
// §
// §       cache-directive = token [ "=" ( token / quoted-string ) ]

// Response directive names, as generated.
const (
	// §  5.2.2.1.  max-age
	// §
	// §     The max-age response directive indicates that the response is to be
	// §     considered stale after its age is greater than the specified number
	// §     of seconds.
	// §
	// §     This directive uses the token form of the argument syntax: e.g.,
	// §     'max-age=5' not 'max-age="5"'.
	MaxAgeDirective = "max-age"
	// §  5.2.2.2.  must-revalidate
	// §
	// §     The must-revalidate response directive indicates that once the
	// §     response has become stale, a cache MUST NOT reuse that response to
	// §     satisfy another request until it has been successfully validated by
	// §     the origin, as defined by Section 4.3.
	MustRevalidateDirective = "must-revalidate"
	// §  5.2.2.4.  no-cache
	// §
	// §     The no-cache response directive, in its unqualified form (without an
	// §     argument), indicates that the response MUST NOT be used to satisfy
	// §     any other request without forwarding it for validation and receiving
	// §     a successful response; see Section 4.3.
	NoCacheDirective = "no-cache"
	// §  5.2.2.5.  no-store
	// §
	// §     The no-store response directive indicates that a cache MUST NOT store
	// §     any part of either the immediate request or the response and MUST NOT
	// §     use the response to satisfy any other request.
	NoStoreDirective = "no-store"
	// §  5.2.2.7.  private
	// §
	// §     The unqualified private response directive indicates that a shared
	// §     cache MUST NOT store the response (i.e., the response is intended for
	// §     a single user).
	PrivateDirective = "private"
	// §  5.2.2.9.  public
	// §
	// §     The public response directive indicates that a cache MAY store the
	// §     response even if it would otherwise be prohibited, subject to the
	// §     constraint defined in the beginning of Section 3.
	PublicDirective = "public"
	// §  5.2.2.10.  s-maxage
	// §
	// §     The s-maxage response directive indicates that, for a shared cache,
	// §     the maximum age specified by this directive overrides the maximum age
	// §     specified by either the max-age directive or the Expires header
	// §     field.
	SMaxAgeDirective = "s-maxage"
)

// CacheControl implements parsing of the "Cache-Control" header (/field).
type CacheControl struct {
	directives map[string]string
}

// Get returns the value (/argument) of the specified directive,
// along with a boolean indicating whether this directive is present
func (c CacheControl) Get(directive string) (string, bool) {
	val, ok := c.directives[getCacheControlDirectiveName(directive)]
	return val, ok
}

// HasDirective returns whether the specified directive is present
func (c CacheControl) HasDirective(directive string) bool {
	_, ok := c.Get(directive)
	return ok
}

// Len returns the number of distinct directives.
func (c CacheControl) Len() int {
	return len(c.directives)
}

// ParseCacheControl takes Cache-Control headers as a slice of strings
// and returns an instance of `CacheControl`.
func ParseCacheControl(headers []string) CacheControl {
	m := make(map[string]string)
	// note setting map values like this means last defined directive wins
	for _, header := range headers {
		// "#" means comma-separated list, with optional whitespace
		for _, directive := range strings.Split(header, ",") {
			directive = strings.TrimSpace(directive)
			if directive == "" {
				continue
			}
			name, arg, _ := strings.Cut(directive, "=")
			m[getCacheControlDirectiveName(name)] = getCacheControlDirectiveArgument(arg)
		}
	}
	return CacheControl{m}
}

// getCacheControlDirectiveName returns a normalized name for the given directive.
func getCacheControlDirectiveName(token string) string {
	// §  [...] to be compared case-insensitively [...]
	return strings.ToLower(strings.TrimSpace(token))
}

// getCacheControlDirectiveArgument returns the directive argument in token form,
// i.e. it converts the argument from "quoted-string" to "token" form if needed.
func getCacheControlDirectiveArgument(arg string) string {
	// §  [...] argument that can use both token and quoted-string syntax. [...]
	return strings.Trim(strings.TrimSpace(arg), "\"")
}

// MaxAge returns "max-age" as a duration, along with a boolean indicating
// whether the "max-age" directive was present.
func (c CacheControl) MaxAge() (time.Duration, bool) {
	return c.getDeltaSeconds(MaxAgeDirective)
}

// SMaxAge returns "s-maxage" as a duration, along with a boolean indicating
// whether the "s-maxage" directive was present.
func (c CacheControl) SMaxAge() (time.Duration, bool) {
	return c.getDeltaSeconds(SMaxAgeDirective)
}

// getDeltaSeconds returns the "delta-seconds" as `time.Duration`,
// as well as a boolean indicating whether the directive was set.
//
// Examples:
// directive    -> 0,  false
// directive=0  -> 0,  true
// directive=60 -> 60, true
// directive=x  -> 0,  false
func (c CacheControl) getDeltaSeconds(directive string) (time.Duration, bool) {
	if secondsStr, ok := c.Get(directive); ok && secondsStr != "" {
		return deltaSeconds(secondsStr)
	}
	return 0, false
}

// FormatMaxAge generates a max-age directive with its argument in token form.
func FormatMaxAge(maxAge time.Duration) string {
	return MaxAgeDirective + "=" + toDeltaSeconds(maxAge)
}
