// Package interp converts between the two representations of a vectorial
// Boolean function over GF(2^n): the truth table and the univariate
// polynomial. Interpolate recovers the unique polynomial of degree < 2^n
// through all 2^n sample points; Evaluate is the exact inverse.
//
// Both directions run on a caller-supplied gf.Tables, so the pair agrees
// bit-for-bit on any field and round-trips losslessly. Interpolation is
// O(2^(3n)) and is the bottleneck of the whole system; it bounds practical
// dimensions to roughly n <= 12.
package interp

import (
	"fmt"

	"apncat/internal/gf"
	apnerr "apncat/pkg/errors"
)

// Interpolate computes the unique polynomial P over GF(2^n) with
// P(alpha) = tt[alpha] for every field element alpha, returned as
// (coefficientExponent, monomialExponent) terms in ascending monomial
// order. An all-zero table yields the empty term list.
//
// For each nonzero sample the Lagrange basis polynomial is built
// incrementally: L starts as the constant 1 and is multiplied by (x + beta)
// for every beta != alpha, scaling by the inverse of (alpha + beta) inside
// the same loop iteration. Scaling per beta instead of once at the end is
// exactly equivalent over a field; it is kept so each intermediate L matches
// the reference computation step for step.
func Interpolate(tt []uint32, tables *gf.Tables) ([]gf.Term, error) {
	size := tables.Size()
	if len(tt) != size {
		return nil, apnerr.WithDetails(apnerr.ErrInvalidDimension, map[string]string{
			"expected": fmt.Sprintf("%d", size),
			"got":      fmt.Sprintf("%d", len(tt)),
		})
	}
	for i, v := range tt {
		if int(v) >= size {
			return nil, apnerr.WithDetails(apnerr.ErrInvalidInput, map[string]string{
				"index":  fmt.Sprintf("%d", i),
				"value":  fmt.Sprintf("%d", v),
				"reason": fmt.Sprintf("field element must be < %d", size),
			})
		}
	}

	poly := make([]uint32, size)
	l := make([]uint32, size)
	lNext := make([]uint32, size)

	for alpha := 0; alpha < size; alpha++ {
		y := tt[alpha]
		if y == 0 {
			// Zero samples contribute nothing: the basis polynomial is only
			// ever used multiplied by y.
			continue
		}

		for i := range l {
			l[i] = 0
		}
		l[0] = 1

		for beta := 0; beta < size; beta++ {
			if beta == alpha {
				continue
			}
			denom := tables.Inv(tables.Add(uint32(alpha), uint32(beta)))

			for i := range lNext {
				lNext[i] = 0
			}
			// Multiply L by (x + beta): shift for the x factor, then add
			// beta times the unshifted coefficients.
			for i := 0; i < size-1; i++ {
				if l[i] != 0 {
					lNext[i+1] ^= l[i]
				}
			}
			for i := 0; i < size; i++ {
				if l[i] != 0 {
					lNext[i] ^= tables.Mul(l[i], uint32(beta))
				}
			}
			// Scale by the denominator inverse for this beta.
			for i := 0; i < size; i++ {
				if lNext[i] != 0 {
					lNext[i] = tables.Mul(lNext[i], denom)
				}
			}
			l, lNext = lNext, l
		}

		for i := 0; i < size; i++ {
			if l[i] != 0 {
				poly[i] ^= tables.Mul(l[i], y)
			}
		}
	}

	var terms []gf.Term
	for i := 0; i < size; i++ {
		if poly[i] != 0 {
			terms = append(terms, gf.Term{CoeffExp: int(tables.Log(poly[i])), MonExp: i})
		}
	}
	return terms, nil
}
