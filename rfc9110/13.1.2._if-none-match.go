package rfc9110

import "strings"

// §  13.1.2.  If-None-Match
// §
// §     The "If-None-Match" header field makes the request method conditional
// §     on a recipient cache or origin server either not having any current
// §     representation of the target resource, when the field value is "*",
// §     or having a selected representation with an entity tag that does not
// §     match any of those listed in the field value.
// §
// §       If-None-Match = "*" / #entity-tag
// §
// §     A recipient MUST use the weak comparison function when comparing
// §     entity tags for If-None-Match (Section 8.8.3.2), since weak entity
// §     tags can be used for cache validation even if there have been changes
// §     to the representation data.
// §
// §     [...]
// §
// §     An origin server that receives an If-None-Match header field MUST
// §     evaluate the condition as per Section 13.2 prior to performing the
// §     method.
// §
// §     To evaluate a received If-None-Match header field:
// §
// §     1.  If the field value is "*", the condition is false if the origin
// §         server has a current representation for the target resource.
// §
// §     2.  If the field value is a list of entity tags, the condition is
// §         false if one of the listed tags matches the entity tag of the
// §         selected representation.
// §
// §     3.  Otherwise, the condition is true.

// NoneMatchFalse evaluates the If-None-Match field value against the
// entity-tag of the selected representation, returning true if the
// condition is false (i.e. the client already has the representation).
// An empty etag means the representation has no entity-tag.
func NoneMatchFalse(fieldValue, etag string) bool {
	current, ok := ParseEntityTag(etag)
	if !ok {
		return false
	}
	if strings.TrimSpace(fieldValue) == "*" {
		return true
	}
	for _, member := range splitEntityTagList(fieldValue) {
		if e, ok := ParseEntityTag(member); ok && e.WeakEqual(current) {
			return true
		}
	}
	return false
}

// splitEntityTagList splits a #entity-tag list.
// Commas are allowed within an opaque-tag, so only commas outside of
// double quotes separate members.
func splitEntityTagList(fieldValue string) []string {
	var members []string
	quoted := false
	start := 0
	for i := 0; i < len(fieldValue); i++ {
		switch fieldValue[i] {
		case '"':
			quoted = !quoted
		case ',':
			if !quoted {
				members = append(members, fieldValue[start:i])
				start = i + 1
			}
		}
	}
	return append(members, fieldValue[start:])
}
