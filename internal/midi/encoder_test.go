package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeRelative(t *testing.T) {
	tests := []struct {
		in   uint8
		want int
	}{
		{0, 0},
		{1, 1},
		{5, 5},
		{63, 63},
		{127, -1},
		{123, -5},
		{64, -64},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DecodeRelative(tt.in), "byte %d", tt.in)
	}
}

func TestEncodeRelativeInverts(t *testing.T) {
	for step := -64; step <= 63; step++ {
		assert.Equal(t, step, DecodeRelative(EncodeRelative(step)))
	}
	assert.Equal(t, 63, DecodeRelative(EncodeRelative(500)))
	assert.Equal(t, -64, DecodeRelative(EncodeRelative(-500)))
}
