package rfc9111

import (
	"net/http"
	"testing"

	"github.com/matryer/is"
)

func TestVaryFields(t *testing.T) {
	is := is.New(t)
	h := http.Header{}
	h.Add("Vary", "accept-language, Accept-Encoding")
	h.Add("Vary", " ,*")
	is.Equal(VaryFields(h), []string{"Accept-Language", "Accept-Encoding", "*"})
	is.True(HasVary(h))
}

func TestNoVary(t *testing.T) {
	is := is.New(t)
	h := http.Header{}
	is.True(!HasVary(h))
	h.Set("Vary", " , ")
	is.True(!HasVary(h))
	is.True(!HasVary(nil))
}
