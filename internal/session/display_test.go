package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github/chapool/wallet-session/internal/session"
)

func TestShortenAddress(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0x1234567890abcdef", "0x1234...cdef"},
		{"0x71C7656EC7ab88b098defB751B7401B5f6d8976F", "0x71C7...976F"},
		{"0123456789", "012345...6789"},
		{"012345678", "012345678"},
		{"0xabc", "0xabc"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, session.ShortenAddress(tt.in), tt.in)
	}
}
