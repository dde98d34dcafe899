package etag

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestGenerateIsDeterministic(t *testing.T) {
	is := is.New(t)
	updated := time.Date(2022, time.October, 20, 12, 0, 0, 0, time.UTC)
	is.Equal(Generate("/files/a.txt", 42, updated), Generate("/files/a.txt", 42, updated))
}

func TestGenerateDependsOnFragments(t *testing.T) {
	is := is.New(t)
	updated := time.Date(2022, time.October, 20, 12, 0, 0, 0, time.UTC)
	is.True(Generate("/files/a.txt", 42, updated) != Generate("/files/a.txt", 43, updated))
	is.True(Generate("/files/a.txt", 42, updated) != Generate("/files/a.txt", 42, updated.Add(time.Second)))
	// separators keep fragment boundaries
	is.True(Generate("ab", "c") != Generate("a", "bc"))
}

func TestGenerateTimeZoneIndependent(t *testing.T) {
	is := is.New(t)
	updated := time.Date(2022, time.October, 20, 12, 0, 0, 0, time.UTC)
	is.Equal(Generate(updated), Generate(updated.In(time.FixedZone("EEST", 3*3600))))
}

func TestFromBytes(t *testing.T) {
	is := is.New(t)
	// md5("Hello world")
	is.Equal(FromBytes([]byte("Hello world")), "PiWWCnnbxptnTNTsZ6csYg==")
}
