// Package querykey escapes lookup terms for use as URL path segments.
//
// The only character the upstream providers and our own routes cannot carry
// in a path segment is a literal slash, so Escape rewrites "/" to "%2F" and
// leaves everything else alone. This matches the escaping the web client
// applies when it builds /search/:query links.
package querykey

import "strings"

// Escape encodes a lookup term for embedding in a URL path segment.
func Escape(q string) string {
	return strings.ReplaceAll(q, "/", "%2F")
}

// Unescape reverses Escape for terms received as path parameters.
// Gin hands us the raw segment, so only %2F (either case) needs decoding.
func Unescape(q string) string {
	q = strings.ReplaceAll(q, "%2F", "/")
	return strings.ReplaceAll(q, "%2f", "/")
}
