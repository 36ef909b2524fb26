package interp

import (
	"apncat/internal/gf"
)

// Evaluate produces the truth table of the polynomial given by terms,
// evaluating sum of generator^c * x^m at every field element. The empty
// term list yields the all-zero table.
//
// Field resolution (default-modulus substitution for callers that supply no
// modulus) happens a layer above; Evaluate always receives concrete tables.
func Evaluate(terms []gf.Term, tables *gf.Tables) ([]uint32, error) {
	if err := gf.ValidateTerms(terms, tables.Descriptor().N); err != nil {
		return nil, err
	}

	size := tables.Size()

	// Resolve coefficient exponents once; they do not depend on x.
	coeffs := make([]uint32, len(terms))
	for i, t := range terms {
		coeffs[i] = tables.Alog(t.CoeffExp)
	}

	tt := make([]uint32, size)
	for x := 0; x < size; x++ {
		var acc uint32
		for i, t := range terms {
			acc ^= tables.Mul(coeffs[i], tables.Pow(uint32(x), t.MonExp))
		}
		tt[x] = acc
	}
	return tt, nil
}
