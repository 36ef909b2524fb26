package gf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIrreducible(t *testing.T) {
	tests := []struct {
		name string
		poly uint64
		want bool
	}{
		{"x^2 + x + 1", 0x7, true},
		{"x^3 + x + 1", 0xB, true},
		{"x^3 + x^2 + 1", 0xD, true},
		{"x^4 + x + 1", 0x13, true},
		{"x^8 + x^4 + x^3 + x^2 + 1", 0x11D, true},
		{"x^8 + x^4 + x^3 + x + 1 (AES)", 0x11B, true},

		{"x^2 + 1 = (x+1)^2", 0x5, false},
		{"x^4 + x^3 + x^2 + x = x(...)", 0x1E, false},
		{"x^2 + x = x(x+1)", 0x6, false},
		{"x^4 + x^2 + 1 = (x^2+x+1)^2", 0x15, false},
		{"x^8 + 1", 0x101, false},

		{"constant 1", 0x1, false},
		{"zero", 0x0, false},
		{"x", 0x2, true},
		{"x + 1", 0x3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsIrreducible(tt.poly))
		})
	}
}

func TestIsIrreducibleExhaustiveDegree4(t *testing.T) {
	// Exactly three irreducible polynomials of degree 4 exist over GF(2).
	want := map[uint64]bool{0x13: true, 0x19: true, 0x1F: true}

	for p := uint64(0x10); p < 0x20; p++ {
		assert.Equal(t, want[p], IsIrreducible(p), "poly %#x", p)
	}
}
