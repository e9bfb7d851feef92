package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundPrice(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected int64
	}{
		{"whole", 120, 120},
		{"rounds down", 130.49, 130},
		{"half rounds up", 130.5, 131},
		{"rounds up", 74.6, 75},
		{"zero", 0, 0},
		{"negative clamps", -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RoundPrice(tt.value))
		})
	}
}

func TestMulRound(t *testing.T) {
	assert.Equal(t, int64(720), MulRound(120, 6))
	assert.Equal(t, int64(150), MulRound(75, 2))
	assert.Equal(t, int64(0), MulRound(0, 9))
}

func TestDivRound(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		divisor  int
		expected int64
	}{
		{"exact", 870, 3, 290},
		{"rounds down", 100, 3, 33},
		{"half rounds up", 5, 2, 3},
		{"rounds up", 200, 3, 67},
		{"zero divisor guarded", 870, 0, 870},
		{"negative divisor guarded", 870, -1, 870},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DivRound(tt.total, tt.divisor))
		})
	}
}

func TestMillisToSeconds(t *testing.T) {
	assert.Equal(t, int64(1700000000), MillisToSeconds(1700000000999))
}
