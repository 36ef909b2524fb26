package vbf

import (
	"fmt"

	"apncat/internal/gf"
	"apncat/internal/interp"
	apnerr "apncat/pkg/errors"
)

// VBF is one vectorial Boolean function GF(2^n) -> GF(2^n) held in either
// or both of its representations. Conversions are lazy and cached: once a
// form has been computed, every later call returns the identical value.
// Callers must treat returned slices as read-only; conversions never mutate
// a previously returned slice.
//
// The effective modulus is an explicit field set at construction time, not
// a side effect of reading a representation: when the caller supplied no
// modulus, UsedDefault reports the substitution and EffectiveModulus names
// the polynomial actually in force.
type VBF struct {
	desc        gf.FieldDescriptor
	usedDefault bool
	cache       *TableCache

	hasTT    bool
	tt       []uint32
	hasTerms bool
	terms    []gf.Term

	// Properties and Invariants are filled by the invariant layer and
	// carried through persistence untouched.
	Properties map[string]any
	Invariants map[string]any
}

// FromTruthTable builds a VBF from a truth table. The modulus string may be
// empty (default substitution) but must parse and be irreducible otherwise.
// The table is copied; the caller's slice stays untouched.
func FromTruthTable(tt []uint32, n int, modulus string, cache *TableCache) (*VBF, error) {
	desc, usedDefault, err := ResolveField(n, modulus)
	if err != nil {
		return nil, err
	}
	if len(tt) != desc.Size() {
		return nil, apnerr.WithDetails(apnerr.ErrInvalidDimension, map[string]string{
			"expected": fmt.Sprintf("%d", desc.Size()),
			"got":      fmt.Sprintf("%d", len(tt)),
		})
	}

	cp := make([]uint32, len(tt))
	copy(cp, tt)
	return &VBF{
		desc:        desc,
		usedDefault: usedDefault,
		cache:       cache,
		hasTT:       true,
		tt:          cp,
		Properties:  map[string]any{},
		Invariants:  map[string]any{},
	}, nil
}

// FromPolynomial builds a VBF from a (coefficientExponent,
// monomialExponent) term list. Terms sharing a monomial exponent are
// combined in the field during normalization.
func FromPolynomial(terms []gf.Term, n int, modulus string, cache *TableCache) (*VBF, error) {
	desc, usedDefault, err := ResolveField(n, modulus)
	if err != nil {
		return nil, err
	}

	tables, err := cache.Get(desc)
	if err != nil {
		return nil, err
	}
	normalized, err := gf.NormalizeTerms(terms, tables)
	if err != nil {
		return nil, err
	}

	return &VBF{
		desc:        desc,
		usedDefault: usedDefault,
		cache:       cache,
		hasTerms:    true,
		terms:       normalized,
		Properties:  map[string]any{},
		Invariants:  map[string]any{},
	}, nil
}

// Descriptor returns the field descriptor in effect.
func (v *VBF) Descriptor() gf.FieldDescriptor {
	return v.desc
}

// FieldN returns the field dimension n.
func (v *VBF) FieldN() int {
	return v.desc.N
}

// EffectiveModulus returns the text form of the irreducible polynomial
// actually used, whether supplied or substituted.
func (v *VBF) EffectiveModulus() string {
	return gf.FormatModulus(v.desc.Modulus)
}

// UsedDefault reports whether the modulus was substituted from the default
// table because the caller supplied none.
func (v *VBF) UsedDefault() bool {
	return v.usedDefault
}

// AsTruthTable returns the truth-table form, evaluating the polynomial on
// first call and returning the cached table afterwards.
func (v *VBF) AsTruthTable() ([]uint32, error) {
	if v.hasTT {
		return v.tt, nil
	}
	if !v.hasTerms {
		return nil, apnerr.ErrUnsupportedConversion
	}

	tables, err := v.cache.Get(v.desc)
	if err != nil {
		return nil, err
	}
	tt, err := interp.Evaluate(v.terms, tables)
	if err != nil {
		return nil, err
	}
	v.tt = tt
	v.hasTT = true
	return v.tt, nil
}

// AsUnivariatePolynomial returns the polynomial form, interpolating the
// truth table on first call and returning the cached term list afterwards.
// Interpolation is the O(2^(3n)) bottleneck; the caching is what keeps
// duplicate detection in the catalog affordable.
func (v *VBF) AsUnivariatePolynomial() ([]gf.Term, error) {
	if v.hasTerms {
		return v.terms, nil
	}
	if !v.hasTT {
		return nil, apnerr.ErrUnsupportedConversion
	}

	tables, err := v.cache.Get(v.desc)
	if err != nil {
		return nil, err
	}
	terms, err := interp.Interpolate(v.tt, tables)
	if err != nil {
		return nil, err
	}
	v.terms = terms
	v.hasTerms = true
	return v.terms, nil
}

// PolyString renders the polynomial form for display, converting first if
// needed.
func (v *VBF) PolyString() (string, error) {
	terms, err := v.AsUnivariatePolynomial()
	if err != nil {
		return "", err
	}
	return gf.FormatTerms(terms), nil
}

// Key returns the canonical identity of the function for duplicate
// detection: dimension, effective modulus, and the normalized term list.
func (v *VBF) Key() (string, error) {
	terms, err := v.AsUnivariatePolynomial()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d|%s|%s", v.desc.N, v.EffectiveModulus(), gf.TermKey(terms)), nil
}
