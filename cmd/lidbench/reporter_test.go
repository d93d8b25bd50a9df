package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		expect string
	}{
		{"short_unchanged", "hello", 10, "hello"},
		{"exact_unchanged", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello w…"},
		{"multibyte", "héllo wörld", 8, "héllo w…"},
		{"empty", "", 5, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, truncate(tt.input, tt.maxLen))
		})
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 5))
	// Wide runes occupy two columns.
	assert.Equal(t, "世界 ", padRight("世界", 5))
}

func TestPadLeft(t *testing.T) {
	assert.Equal(t, "   ab", padLeft("ab", 5))
	assert.Equal(t, "abcdef", padLeft("abcdef", 5))
	assert.Equal(t, " 世界", padLeft("世界", 5))
}
