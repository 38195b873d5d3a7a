package social

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePair(t *testing.T) {
	tests := []struct {
		name         string
		u1, u2       uint
		wantA, wantB uint
	}{
		{"already ordered", 1, 2, 1, 2},
		{"reversed", 2, 1, 1, 2},
		{"equal ids", 7, 7, 7, 7},
		{"large gap", 1, 1000000, 1, 1000000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := NormalizePair(tt.u1, tt.u2)
			assert.Equal(t, tt.wantA, a)
			assert.Equal(t, tt.wantB, b)
		})
	}
}

func TestNormalizePairSymmetric(t *testing.T) {
	pairs := [][2]uint{{1, 2}, {42, 7}, {100, 99}, {3, 300}}
	for _, p := range pairs {
		a1, b1 := NormalizePair(p[0], p[1])
		a2, b2 := NormalizePair(p[1], p[0])
		assert.Equal(t, a1, a2)
		assert.Equal(t, b1, b2)
		assert.LessOrEqual(t, a1, b1)
	}
}
