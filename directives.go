package conditional

import (
	"strings"
	"time"

	"github.com/always-cache/conditional/rfc9110"
	"github.com/always-cache/conditional/rfc9111"
)

// DefaultMaxAge is the max-age used for responses that carry cache metadata
// but no explicit MaxAge.
const DefaultMaxAge = 3600 * time.Second

// CacheControlFlags is a set of argument-less Cache-Control response directives.
type CacheControlFlags uint8

const (
	Public CacheControlFlags = 1 << iota
	Private
	NoCache
	NoStore
	MustRevalidate
)

// flagDirectives lists the flags in the order they are emitted.
var flagDirectives = []struct {
	flag      CacheControlFlags
	directive string
}{
	{Public, rfc9111.PublicDirective},
	{NoStore, rfc9111.NoStoreDirective},
	{MustRevalidate, rfc9111.MustRevalidateDirective},
	{NoCache, rfc9111.NoCacheDirective},
	{Private, rfc9111.PrivateDirective},
}

// Has reports whether all of the given flags are set.
func (f CacheControlFlags) Has(flags CacheControlFlags) bool {
	return f&flags == flags
}

func (f CacheControlFlags) String() string {
	var directives []string
	for _, fd := range flagDirectives {
		if f.Has(fd.flag) {
			directives = append(directives, fd.directive)
		}
	}
	return strings.Join(directives, ", ")
}

// CacheDirectives is the cache metadata of a response.
// All fields are optional; the zero value carries no metadata.
type CacheDirectives struct {
	// Entity-tag, quoted or not. Empty means absent.
	ETag string
	// Age of the response. Nil means absent, so that an age of zero can be sent.
	Age *time.Duration
	// Freshness lifetime. Nil means absent, in which case DefaultMaxAge is used.
	MaxAge *time.Duration
	// Zero means absent.
	Expires time.Time
	// Zero means absent.
	LastModified time.Time
	Flags        CacheControlFlags
}

// Duration returns a pointer to d, for use with the optional duration fields.
func Duration(d time.Duration) *time.Duration {
	return &d
}

// HasETag reports whether an entity-tag is present.
func (d CacheDirectives) HasETag() bool {
	return rfc9110.FieldPresent(d.ETag)
}

// IsSet reports whether any cache-related field is set.
func (d CacheDirectives) IsSet() bool {
	return d.HasETag() ||
		d.Age != nil ||
		d.MaxAge != nil ||
		!d.Expires.IsZero() ||
		!d.LastModified.IsZero() ||
		d.Flags != 0
}

// EffectiveMaxAge returns MaxAge, or DefaultMaxAge if it is not set.
func (d CacheDirectives) EffectiveMaxAge() time.Duration {
	if d.MaxAge != nil {
		return *d.MaxAge
	}
	return DefaultMaxAge
}

// CacheControl returns the Cache-Control field value for the directives:
// max-age first, followed by the flags. It returns an empty string if no
// cache-related field is set.
func (d CacheDirectives) CacheControl() string {
	if !d.IsSet() {
		return ""
	}
	cc := rfc9111.FormatMaxAge(d.EffectiveMaxAge())
	if d.Flags != 0 {
		cc += ", " + d.Flags.String()
	}
	return cc
}
