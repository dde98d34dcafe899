package rfc9110

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestHttpDateFormats(t *testing.T) {
	want := time.Date(1994, time.November, 6, 8, 49, 37, 0, time.UTC)
	tests := []string{
		"Sun, 06 Nov 1994 08:49:37 GMT",
		"Sunday, 06-Nov-94 08:49:37 GMT",
		"Sun Nov  6 08:49:37 1994",
		"Sun, 06 Nov 1994 08:49:37 gMT",
		"  Sun, 06 Nov 1994 08:49:37 GMT ",
	}
	for _, test := range tests {
		t.Run(test, func(t *testing.T) {
			is := is.New(t)
			date, err := HttpDate(test)
			is.NoErr(err)
			is.True(date.Equal(want))
		})
	}
}

func TestHttpDateInvalid(t *testing.T) {
	is := is.New(t)
	_, err := HttpDate("yesterday")
	is.True(err != nil)
	_, ok := ParseHttpDate("")
	is.True(!ok)
	_, ok = ParseHttpDate("0")
	is.True(!ok)
}

func TestFormatHttpDate(t *testing.T) {
	is := is.New(t)
	loc := time.FixedZone("EET", 2*60*60)
	date := time.Date(2022, time.October, 20, 13, 44, 49, 500, loc)
	is.Equal(FormatHttpDate(date), "Thu, 20 Oct 2022 11:44:49 GMT")
}
