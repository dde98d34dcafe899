package cachekey

import (
	"fmt"
	"net/http"
	"net/url"
)

var ErrorMethodNotSupported = fmt.Errorf("Method not supported")

const (
	namespaceSeparator = ":"
	methodSeparator    = ":"
	cacheKeySeparator  = "\t"
)

type CacheKeyer struct {
	// Namespace of the keys, e.g. the name of the service.
	Namespace string
	// Cache key prefix for the namespace
	NamespacePrefix string
}

func NewCacheKeyer(namespace string) CacheKeyer {
	return CacheKeyer{
		Namespace:       namespace,
		NamespacePrefix: namespace + namespaceSeparator,
	}
}

// MethodPrefix gets the key prefix for the namespace with the given method.
// E.g. prefix for all GET requests in the cache.
func (c CacheKeyer) MethodPrefix(method string) string {
	return c.NamespacePrefix + method + methodSeparator
}

// GetKey returns the cache key for a request.
// HEAD shares its key with GET, since they produce the same result.
// Query parameters are sorted, so that their order does not matter.
// If the request has a `Cache-Key` header, that value is included in the key.
// It returns ErrorMethodNotSupported for methods whose results are not cacheable.
func (c CacheKeyer) GetKey(r *http.Request) (string, error) {
	method := r.Method
	switch method {
	case http.MethodGet:
	case http.MethodHead:
		method = http.MethodGet
	default:
		return "", ErrorMethodNotSupported
	}
	key := c.MethodPrefix(method) + r.URL.EscapedPath()
	if r.URL.RawQuery != "" {
		key += "?" + r.URL.Query().Encode()
	}
	key += cacheKeySeparator
	if ck := r.Header.Get("Cache-Key"); ck != "" {
		key += ck
	}
	return key, nil
}

// PathPrefixes returns the key prefixes matching all stored results for the
// given unescaped path: with or without query, and with any `Cache-Key`.
func (c CacheKeyer) PathPrefixes(path string) []string {
	escaped := (&url.URL{Path: path}).EscapedPath()
	prefix := c.MethodPrefix(http.MethodGet) + escaped
	return []string{prefix + cacheKeySeparator, prefix + "?"}
}
