// Package httplog logs outbound HTTP traffic at the transport layer.
//
// Instead of a process-global interceptor, the logger is an explicit
// http.RoundTripper wrapper attached per client, and the set of redacted
// headers and query parameters is passed in as configuration.
package httplog

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const redactedPlaceholder = "[REDACTED]"

// Redaction enumerates the request parts that must never reach the logs.
type Redaction struct {
	Headers     []string
	QueryParams []string
}

// DefaultRedaction covers the credentials our provider clients send.
func DefaultRedaction() Redaction {
	return Redaction{
		Headers:     []string{"Authorization", "Cookie", "X-RapidAPI-Key"},
		QueryParams: []string{"key", "api_key", "apikey", "token", "secret"},
	}
}

type transport struct {
	base http.RoundTripper
	log  *zap.Logger
	red  Redaction
}

// Transport wraps base so every request/response pair is logged with the
// configured redaction applied. A nil base falls back to
// http.DefaultTransport.
func Transport(base http.RoundTripper, log *zap.Logger, red Redaction) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &transport{base: base, log: log, red: red}
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	safeURL := t.redactURL(req.URL)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.log.Warn("outbound request failed",
			zap.String("method", req.Method),
			zap.String("url", safeURL),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return resp, err
	}

	t.log.Info("outbound request",
		zap.String("method", req.Method),
		zap.String("url", safeURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)
	return resp, nil
}

func (t *transport) redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	clean := *u
	q := clean.Query()
	changed := false
	for _, param := range t.red.QueryParams {
		if q.Has(param) {
			q.Set(param, redactedPlaceholder)
			changed = true
		}
	}
	if changed {
		clean.RawQuery = q.Encode()
	}
	clean.User = nil
	return clean.String()
}

// RedactHeaders returns a copy of h with the configured headers masked.
// Exposed for callers that log request headers themselves.
func (r Redaction) RedactHeaders(h http.Header) http.Header {
	out := h.Clone()
	for _, name := range r.Headers {
		for key := range out {
			if strings.EqualFold(key, name) {
				out.Set(key, redactedPlaceholder)
			}
		}
	}
	return out
}
