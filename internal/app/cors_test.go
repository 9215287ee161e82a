package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOriginHost(t *testing.T) {
	assert.Equal(t, "www.carpediction.com", extractOriginHost("https://www.carpediction.com"))
	assert.Equal(t, "localhost:3000", extractOriginHost("http://localhost:3000"))
	assert.Equal(t, "not a url", extractOriginHost("not a url"))
}

func TestMatchOriginPattern(t *testing.T) {
	cases := []struct {
		pattern string
		host    string
		want    bool
	}{
		{"www.carpediction.com", "www.carpediction.com", true},
		{"www.carpediction.com", "evil.com", false},
		{"*.carpediction.com", "www.carpediction.com", true},
		{"*.carpediction.com", "api.carpediction.com", true},
		{"*.carpediction.com", "carpediction.com.evil.com", false},
		{"localhost:*", "localhost:3000", true},
		{"localhost:*", "localhost:8000", true},
		{"localhost:*", "evilhost:3000", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, matchOriginPattern(tc.pattern, tc.host), "%s vs %s", tc.pattern, tc.host)
	}
}
