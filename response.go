package conditional

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// storedAtHeader records when a result was stored.
// It is removed when the result is read back.
const storedAtHeader = "X-Conditional-Stored-At"

// resultToBytes converts a result to a byte slice.
// It returns the HTTP/1.1 representation of the full response.
func resultToBytes(res *Result, storedAt time.Time) ([]byte, error) {
	h := make(http.Header)
	copyHeader(h, res.Header)
	Decision{Proceed, res.CacheDirectives}.WriteHeaders(h)
	if res.ContentType != "" {
		h.Set("Content-Type", res.ContentType)
	}
	h.Set(storedAtHeader, strconv.FormatInt(storedAt.UnixNano(), 10))
	status := res.status()
	httpRes := &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        h,
		Body:          io.NopCloser(bytes.NewReader(res.Body)),
		ContentLength: int64(len(res.Body)),
	}
	buf := &bytes.Buffer{}
	if err := httpRes.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// bytesToResult converts a byte slice created by resultToBytes back to a result.
func bytesToResult(b []byte) (*Result, time.Time, error) {
	httpRes, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(b)), nil)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer httpRes.Body.Close()
	body, err := io.ReadAll(httpRes.Body)
	if err != nil {
		return nil, time.Time{}, err
	}
	h := httpRes.Header
	var storedAt time.Time
	if nanos, err := strconv.ParseInt(h.Get(storedAtHeader), 10, 64); err == nil {
		storedAt = time.Unix(0, nanos)
	}
	res := &Result{
		CacheDirectives: DirectivesFromHeader(h),
		StatusCode:      httpRes.StatusCode,
		ContentType:     h.Get("Content-Type"),
		Body:            body,
	}
	removeCacheHeaders(h)
	for _, name := range []string{storedAtHeader, "Content-Type", "Content-Length"} {
		h.Del(name)
	}
	if len(h) > 0 {
		res.Header = h
	}
	return res, storedAt, nil
}
