package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseActivityLimit(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{"", 50},
		{"abc", 50},
		{"10", 10},
		{"0", 1},
		{"-4", 1},
		{"200", 200},
		{"5000", 200},
		{"25items", 25},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseActivityLimit(tt.raw))
		})
	}
}
