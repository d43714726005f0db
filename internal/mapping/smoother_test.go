package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmoother_SeedDoesNotSmooth(t *testing.T) {
	var s Smoother
	assert.False(t, s.Initialized())

	s.Seed(0.25)
	assert.True(t, s.Initialized())
	assert.Equal(t, 0.25, s.Value())

	assert.InDelta(t, 0.25, s.Step(0.25, 0.0025, 1.0/30), 1e-12)
}

func TestSmoother_JumpThreshold(t *testing.T) {
	tests := []struct {
		name  string
		from  float64
		to    float64
		snaps bool
	}{
		{"full range up snaps", 0, 1, true},
		{"full range down snaps", 1, 0, true},
		{"just under threshold smooths", 0, 0.99, false},
		{"small move smooths", 0.5, 0.6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Smoother
			s.Seed(tt.from)
			got := s.Step(tt.to, 0.0025, 1.0/30)
			if tt.snaps {
				assert.Equal(t, tt.to, got)
				return
			}
			lo, hi := tt.from, tt.to
			if lo > hi {
				lo, hi = hi, lo
			}
			assert.Greater(t, got, lo)
			assert.Less(t, got, hi)
		})
	}
}

func TestSmoother_ConvergesMonotonically(t *testing.T) {
	var s Smoother
	s.Seed(0.2)
	prev := s.Value()
	for i := 0; i < 400; i++ {
		v := s.Step(0.8, 0.0025, 1.0/30)
		assert.GreaterOrEqual(t, v, prev)
		assert.LessOrEqual(t, v, 0.8)
		prev = v
	}
	assert.InDelta(t, 0.8, prev, 1e-6)
}

func TestSmoother_Reset(t *testing.T) {
	var s Smoother
	s.Seed(0.7)
	s.Reset()
	assert.False(t, s.Initialized())
	assert.Equal(t, 0.0, s.Value())
}
