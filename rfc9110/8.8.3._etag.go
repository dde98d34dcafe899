package rfc9110

import "strings"

// §  8.8.3.  ETag
// §
// §     The "ETag" field in a response provides the current entity tag for
// §     the selected representation, as determined at the conclusion of
// §     handling the request.  An entity tag is an opaque validator for
// §     differentiating between multiple representations of the same
// §     resource, regardless of whether those multiple representations are
// §     due to resource state changes over time, content negotiation
// §     resulting in multiple representations being valid at the same time,
// §     or both.  An entity tag consists of an opaque quoted string, possibly
// §     prefixed by a weakness indicator.
// §
// §       ETag       = entity-tag
// §
// §       entity-tag = [ weak ] opaque-tag
// §       weak       = %s"W/"
// §       opaque-tag = DQUOTE *etagc DQUOTE
// §       etagc      = %x21 / %x23-7E / obs-text
// §                  ; VCHAR except double quotes, plus obs-text

// EntityTag represents an entity-tag.
type EntityTag struct {
	// Tag is the opaque-tag without the surrounding double quotes.
	Tag string
	// Weak specifies if this is a weak entity-tag.
	Weak bool
}

// ParseEntityTag parses an entity-tag.
// Unquoted values are accepted and taken as the opaque-tag as-is,
// since applications commonly hand out bare version identifiers.
// It returns ok==false for empty values.
func ParseEntityTag(s string) (EntityTag, bool) {
	s = strings.TrimSpace(s)
	weak := false
	if strings.HasPrefix(s, "W/") {
		weak = true
		s = s[2:]
	}
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		return EntityTag{}, false
	}
	return EntityTag{Tag: s, Weak: weak}, true
}

// String returns the entity-tag in its quoted form.
func (e EntityTag) String() string {
	s := `"` + e.Tag + `"`
	if e.Weak {
		s = "W/" + s
	}
	return s
}

// QuoteEntityTag returns the quoted canonical form of an entity-tag
// that may or may not already be quoted.
// An empty value stays empty.
func QuoteEntityTag(s string) string {
	if e, ok := ParseEntityTag(s); ok {
		return e.String()
	}
	return ""
}

// §  8.8.3.2.  Comparison
// §
// §     There are two entity tag comparison functions, depending on whether
// §     or not the comparison context allows the use of weak validators:
// §
// §     "Strong comparison":  two entity tags are equivalent if both are not
// §        weak and their opaque-tags match character-by-character.
// §
// §     "Weak comparison":  two entity tags are equivalent if their opaque-
// §        tags match character-by-character, regardless of either or both
// §        being tagged as "weak".

// StrongEqual compares two entity-tags using strong comparison.
func (e EntityTag) StrongEqual(other EntityTag) bool {
	return !e.Weak && !other.Weak && e.Tag == other.Tag
}

// WeakEqual compares two entity-tags using weak comparison.
func (e EntityTag) WeakEqual(other EntityTag) bool {
	return e.Tag == other.Tag
}
