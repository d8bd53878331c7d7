// Package relay emits the backend's search response to the original
// caller with adjusted transport headers.
package relay

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Response is the captured backend response handed to the relay.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// forwardPrefixes lists the canonical header prefixes relayed verbatim.
// Content-Encoding intentionally never matches: the body is emitted
// decompressed.
var forwardPrefixes = []string{
	"Content-Type",
	"Content-Language",
	"Content-Security",
	"X-",
}

// Write relays the response: filtered headers, Set-Cookie rewritten to the
// caller host, gzip bodies decompressed, status defaulting to 404 when the
// backend reported none.
func Write(w http.ResponseWriter, resp *Response, host string) error {
	body := resp.Body
	if declaresGzip(resp.Header) {
		decompressed, err := gunzip(body)
		if err != nil {
			return fmt.Errorf("decompress response: %w", err)
		}
		body = decompressed
	}

	for key, values := range resp.Header {
		if !forwardable(key) {
			continue
		}
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	for _, line := range resp.Header.Values("Set-Cookie") {
		if rewritten := rewriteCookie(line, host); rewritten != "" {
			w.Header().Add("Set-Cookie", rewritten)
		}
	}

	status := resp.StatusCode
	if status == 0 {
		status = http.StatusNotFound
	}
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return nil
}

func forwardable(key string) bool {
	canonical := http.CanonicalHeaderKey(key)
	for _, prefix := range forwardPrefixes {
		if strings.HasPrefix(canonical, prefix) {
			return true
		}
	}
	return false
}

// rewriteCookie pins the cookie to the caller: domain set to the caller
// host, path attribute stripped. Unparseable lines are dropped.
func rewriteCookie(line, host string) string {
	cookie, err := http.ParseSetCookie(line)
	if err != nil {
		return ""
	}
	cookie.Domain = hostname(host)
	cookie.Path = ""
	return cookie.String()
}

// hostname strips a port from a Host header value.
func hostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func declaresGzip(header http.Header) bool {
	return strings.Contains(strings.ToLower(header.Get("Content-Encoding")), "gzip")
}

func gunzip(body []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip read: %w", err)
	}
	return out, nil
}
