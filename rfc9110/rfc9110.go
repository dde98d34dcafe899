// Package rfc9110 implements the parts of HTTP Semantics (RFC 9110) needed
// to evaluate conditional requests: HTTP-date handling, entity-tags,
// and the If-None-Match and If-Modified-Since preconditions.
//
// Each file corresponds to a section of the standard. Lines starting with §
// are quotes from the standard.
package rfc9110
