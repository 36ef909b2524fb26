package invariant

import (
	"fmt"
	"math/bits"

	apnerr "apncat/pkg/errors"
)

// checkTable validates the (truth table, n) pair every computer receives.
func checkTable(tt []uint32, n int) error {
	size := 1 << uint(n)
	if n < 1 || len(tt) != size {
		return apnerr.WithDetails(apnerr.ErrInvalidDimension, map[string]string{
			"n":        fmt.Sprintf("%d", n),
			"expected": fmt.Sprintf("%d", size),
			"got":      fmt.Sprintf("%d", len(tt)),
		})
	}
	return nil
}

// DifferentialUniformity computes the differential uniformity of F: the
// maximum over nonzero a and all b of the number of solutions x to
// F(x+a) + F(x) = b. A function is APN exactly when this is 2.
type DifferentialUniformity struct{}

// Name implements Computer.
func (DifferentialUniformity) Name() string { return "uniformity" }

// Compute implements Computer. Cost is O(4^n) counting.
func (DifferentialUniformity) Compute(tt []uint32, n int) (any, error) {
	if err := checkTable(tt, n); err != nil {
		return nil, err
	}

	size := 1 << uint(n)
	counts := make([]int, size)
	maxCount := 0

	for a := 1; a < size; a++ {
		for i := range counts {
			counts[i] = 0
		}
		for x := 0; x < size; x++ {
			b := tt[x^a] ^ tt[x]
			counts[b]++
			if counts[b] > maxCount {
				maxCount = counts[b]
			}
		}
	}
	return maxCount, nil
}

// AlgebraicDegree computes the algebraic degree of F: the maximum ANF
// monomial degree over all coordinate functions, obtained with the Moebius
// transform. The zero function has degree 0.
type AlgebraicDegree struct{}

// Name implements Computer.
func (AlgebraicDegree) Name() string { return "degree" }

// Compute implements Computer.
func (AlgebraicDegree) Compute(tt []uint32, n int) (any, error) {
	if err := checkTable(tt, n); err != nil {
		return nil, err
	}

	size := 1 << uint(n)

	// Moebius transform on all coordinates at once: tt values are bit
	// vectors, and XOR acts coordinate-wise.
	anf := make([]uint32, size)
	copy(anf, tt)
	for i := 0; i < n; i++ {
		bit := 1 << uint(i)
		for x := 0; x < size; x++ {
			if x&bit != 0 {
				anf[x] ^= anf[x^bit]
			}
		}
	}

	deg := 0
	for x := 0; x < size; x++ {
		if anf[x] != 0 {
			if d := bits.OnesCount(uint(x)); d > deg {
				deg = d
			}
		}
	}
	return deg, nil
}

// IsAPN reports whether the truth table is almost perfect nonlinear, i.e.
// has differential uniformity exactly 2.
func IsAPN(tt []uint32, n int) (bool, error) {
	v, err := DifferentialUniformity{}.Compute(tt, n)
	if err != nil {
		return false, err
	}
	return v.(int) == 2, nil
}

// IsPermutation reports whether the truth table is a bijection on the
// field.
func IsPermutation(tt []uint32) bool {
	seen := make([]bool, len(tt))
	for _, v := range tt {
		if int(v) >= len(tt) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
