package gf

import (
	"encoding/json"
	"fmt"

	apnerr "apncat/pkg/errors"
)

// Term is one monomial of a univariate polynomial over GF(2^n):
// generator^CoeffExp * x^MonExp. Coefficients are carried as exponents of
// the field generator, matching the discrete-log form the interpolator
// produces and the catalog persists.
type Term struct {
	CoeffExp int
	MonExp   int
}

// MarshalJSON encodes the term as the two-element array
// [coefficientExponent, monomialExponent] used by the catalog files.
func (t Term) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{t.CoeffExp, t.MonExp})
}

// UnmarshalJSON decodes the [coefficientExponent, monomialExponent] pair
// form.
func (t *Term) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	t.CoeffExp = pair[0]
	t.MonExp = pair[1]
	return nil
}

// Degree returns the largest monomial exponent among the terms, or -1 for
// the zero polynomial.
func Degree(terms []Term) int {
	deg := -1
	for _, t := range terms {
		if t.MonExp > deg {
			deg = t.MonExp
		}
	}
	return deg
}

// ValidateTerms checks that every monomial exponent lies in [0, 2^n) and
// every coefficient exponent is non-negative.
func ValidateTerms(terms []Term, n int) error {
	size := 1 << uint(n)
	for _, t := range terms {
		if t.MonExp < 0 || t.MonExp >= size {
			return apnerr.WithDetails(apnerr.ErrInvalidInput, map[string]string{
				"term":   fmt.Sprintf("(%d,%d)", t.CoeffExp, t.MonExp),
				"reason": fmt.Sprintf("monomial exponent must be in [0, %d)", size),
			})
		}
		if t.CoeffExp < 0 {
			return apnerr.WithDetails(apnerr.ErrInvalidInput, map[string]string{
				"term":   fmt.Sprintf("(%d,%d)", t.CoeffExp, t.MonExp),
				"reason": "coefficient exponent must be non-negative",
			})
		}
	}
	return nil
}

// NormalizeTerms combines terms sharing a monomial exponent by adding their
// coefficients in the field (XOR of the antilog values), drops terms whose
// combined coefficient vanishes, and returns the result in ascending
// monomial-exponent order. The input slice is not modified.
func NormalizeTerms(terms []Term, t *Tables) ([]Term, error) {
	if err := ValidateTerms(terms, t.Descriptor().N); err != nil {
		return nil, err
	}

	size := t.Size()
	coeffs := make([]uint32, size)
	for _, tm := range terms {
		coeffs[tm.MonExp] ^= t.Alog(tm.CoeffExp)
	}

	out := make([]Term, 0, len(terms))
	for m := 0; m < size; m++ {
		if c := coeffs[m]; c != 0 {
			out = append(out, Term{CoeffExp: int(t.Log(c)), MonExp: m})
		}
	}
	return out, nil
}

// TermKey returns a canonical string key for a term list, used by the
// catalog for duplicate detection. Terms are assumed normalized (ascending
// monomial exponent, combined coefficients).
func TermKey(terms []Term) string {
	key := ""
	for _, t := range terms {
		key += fmt.Sprintf("%d:%d;", t.CoeffExp, t.MonExp)
	}
	return key
}
