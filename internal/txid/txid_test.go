package txid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuffix(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{"TXN-0042", 42},
		{"TXN-7", 7},
		{"abc123", 123},
		{"no-digits", 0},
		{"", 0},
		{"123", 123},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Suffix(tt.id), "id %q", tt.id)
	}
}

func TestLess_DescendingBySuffix(t *testing.T) {
	assert.True(t, Less("TXN-10", "TXN-3"))
	assert.False(t, Less("TXN-3", "TXN-10"))
	assert.False(t, Less("TXN-5", "TXN-5"))
}
