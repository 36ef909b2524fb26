// Package vbf wraps one vectorial Boolean function in its two
// interchangeable representations, the truth table and the univariate
// polynomial, converting lazily between them and remembering which
// irreducible polynomial was actually in effect.
package vbf

import (
	"fmt"
	"strings"

	"apncat/internal/gf"
	apnerr "apncat/pkg/errors"
)

// ResolveField turns a dimension and an optional modulus string into a
// concrete field descriptor.
//
// An empty modulus string is the documented "not specified" path and
// substitutes the canonical default for n; usedDefault reports the
// substitution so callers can persist the effective modulus rather than the
// requested one. A malformed string is an error, never a silent fallback,
// and a well-formed but reducible modulus is rejected outright.
func ResolveField(n int, modulus string) (desc gf.FieldDescriptor, usedDefault bool, err error) {
	if n < gf.MinDefaultN || n > gf.MaxDefaultN {
		return gf.FieldDescriptor{}, false, apnerr.WithDetails(apnerr.ErrInvalidDimension, map[string]string{
			"n":     fmt.Sprintf("%d", n),
			"range": fmt.Sprintf("%d-%d", gf.MinDefaultN, gf.MaxDefaultN),
		})
	}

	if strings.TrimSpace(modulus) == "" {
		desc, err = gf.Defaults(n)
		if err != nil {
			return gf.FieldDescriptor{}, false, err
		}
		return desc, true, nil
	}

	mask, err := gf.ParseModulus(modulus)
	if err != nil {
		return gf.FieldDescriptor{}, false, err
	}
	if got := degreeOf(mask); got != n {
		return gf.FieldDescriptor{}, false, apnerr.WithDetails(apnerr.ErrUnparseableField, map[string]string{
			"modulus": modulus,
			"reason":  fmt.Sprintf("degree %d does not match dimension %d", got, n),
		})
	}
	if !gf.IsIrreducible(mask) {
		return gf.FieldDescriptor{}, false, apnerr.WithDetails(apnerr.ErrReduciblePolynomial, map[string]string{
			"modulus": modulus,
		})
	}

	return gf.FieldDescriptor{N: n, Modulus: mask, Generator: gf.DefaultGenerator}, false, nil
}

func degreeOf(mask uint64) int {
	d := -1
	for mask != 0 {
		mask >>= 1
		d++
	}
	return d
}
