// Package etag generates entity-tags from the data that identifies
// a version of an entity.
package etag

import (
	"bytes"
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"
)

// Generate returns an entity-tag for the given fragments. The entity-tag is
// the base64-encoded md5 hash of the fragments, and is returned unquoted.
//
// Supported fragments are strings, byte slices, integers, times, nested
// []interface{} and fmt.Stringer. Other types are formatted with %v.
func Generate(fragments ...interface{}) string {
	var buffer bytes.Buffer
	writeFragments(&buffer, fragments)
	sum := md5.Sum(buffer.Bytes())
	return base64.StdEncoding.EncodeToString(sum[:])
}

// FromBytes returns an entity-tag for the given representation data.
func FromBytes(b []byte) string {
	return Generate(b)
}

func writeFragments(buffer *bytes.Buffer, fragments []interface{}) {
	for i, f := range fragments {
		switch f := f.(type) {
		case []interface{}:
			writeFragments(buffer, f)
		case string:
			buffer.WriteString(f)
		case []byte:
			buffer.Write(f)
		case time.Time:
			buffer.WriteString(f.UTC().String())
		case int:
			buffer.WriteString(strconv.Itoa(f))
		case int64:
			buffer.WriteString(strconv.FormatInt(f, 10))
		case fmt.Stringer:
			buffer.WriteString(f.String())
		default:
			fmt.Fprintf(buffer, "%v", f)
		}
		if i < len(fragments)-1 {
			buffer.WriteString("|")
		}
	}
}
