package querykey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sun", "sun"},
		{"a/b", "a%2Fb"},
		{"//", "%2F%2F"},
		{"done it", "done it"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Escape(tt.in))
	}
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, "a/b", Unescape("a%2Fb"))
	assert.Equal(t, "a/b", Unescape("a%2fb"))
	assert.Equal(t, "sun", Unescape("sun"))
}

func TestEscapeRoundTrip(t *testing.T) {
	for _, x := range []string{"a/b", "/", "x//y", "word of/the day"} {
		assert.Equal(t, Escape(x), Escape(Unescape(Escape(x))))
	}
}
