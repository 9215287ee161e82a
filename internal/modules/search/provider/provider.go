// Package provider contains one client per external lookup source. Each
// client knows its source's request shape, response shape, and failure
// signals, and normalizes everything into an Entry before it leaves the
// package; raw provider JSON never travels upward.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FailureKind classifies why a lookup produced no usable entry.
type FailureKind string

const (
	KindTimeout           FailureKind = "timeout"
	KindNotFound          FailureKind = "not_found"
	KindRateLimited       FailureKind = "rate_limited"
	KindMalformedResponse FailureKind = "malformed_response"
	KindCancelled         FailureKind = "cancelled"
	KindTransport         FailureKind = "transport"
)

// Failure is a typed lookup failure. Ordinary failure modes (timeouts,
// empty result sets, 4xx, bad payloads) are values, not errors: they are
// part of a provider's normal vocabulary.
type Failure struct {
	Kind    FailureKind
	Message string
	// Suggestions carries "did you mean" spellings some providers return
	// alongside a NotFound.
	Suggestions []string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Entry is the normalized result shape shared by all providers.
type Entry struct {
	// Word is the headword the provider resolved the query to.
	Word string
	// Terms are related terms (rhymes, synonyms) in provider order.
	Terms []string
	// Definitions are short defs, when the provider supplies them.
	Definitions []string
}

// Result holds exactly one of Entry or Err.
type Result struct {
	Entry *Entry
	Err   *Failure
}

// OK reports whether the lookup succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Client is a single external lookup source.
type Client interface {
	Name() string
	// Lookup issues exactly one outbound request for query. It never
	// returns a Go error for ordinary failures; those become Result.Err.
	// Cancelling ctx aborts the in-flight request promptly.
	Lookup(ctx context.Context, query string) Result
}

func success(e *Entry) Result { return Result{Entry: e} }

func failure(kind FailureKind, msg string) Result {
	return Result{Err: &Failure{Kind: kind, Message: msg}}
}

// classifyTransportErr maps an http.Client error to a failure kind.
// Context cancellation must win over deadline classification when the
// caller cancelled us: a superseded query is Cancelled, not Timeout.
func classifyTransportErr(ctx context.Context, err error) Result {
	if ctx.Err() == context.Canceled || errors.Is(err, context.Canceled) {
		return failure(KindCancelled, "lookup cancelled")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return failure(KindTimeout, "provider timed out")
	}
	return failure(KindTransport, err.Error())
}

// doJSON performs the request with the per-client timeout applied and
// returns the response body for 200s; non-200s map to typed failures.
func doJSON(ctx context.Context, hc *http.Client, timeout time.Duration, req *http.Request) ([]byte, *Result) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req = req.WithContext(ctx)

	resp, err := hc.Do(req)
	if err != nil {
		r := classifyTransportErr(ctx, err)
		return nil, &r
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		r := failure(KindNotFound, "no results")
		return nil, &r
	case resp.StatusCode == http.StatusTooManyRequests:
		r := failure(KindRateLimited, "provider rate limit hit")
		return nil, &r
	case resp.StatusCode != http.StatusOK:
		r := failure(KindTransport, fmt.Sprintf("unexpected status %d", resp.StatusCode))
		return nil, &r
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		r := classifyTransportErr(ctx, err)
		return nil, &r
	}
	return body, nil
}
