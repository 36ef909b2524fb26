// Package catalog persists classified functions: a per-dimension database,
// the working input list, and the match list produced by comparisons. All
// three are JSON files under the apncat home directory; corrupted files are
// quarantined by rename rather than destroyed.
package catalog

import (
	"fmt"

	"apncat/internal/gf"
	"apncat/internal/vbf"
)

// Record is the persisted form of one function. The polynomial is the
// ordered [coefficientExponent, monomialExponent] pair list; together with
// the dimension and the effective modulus string it is the function's
// identity in the database.
type Record struct {
	FieldN     int            `json:"field_n"`
	IrrPoly    string         `json:"irr_poly"`
	Poly       []gf.Term      `json:"poly"`
	PolyStr    string         `json:"poly_str"`
	Properties map[string]any `json:"properties"`
	Invariants map[string]any `json:"invariants"`
}

// NewRecord captures a VBF into its persisted form, converting to the
// polynomial representation if only the truth table is present.
func NewRecord(v *vbf.VBF) (Record, error) {
	terms, err := v.AsUnivariatePolynomial()
	if err != nil {
		return Record{}, err
	}
	return Record{
		FieldN:     v.FieldN(),
		IrrPoly:    v.EffectiveModulus(),
		Poly:       terms,
		PolyStr:    gf.FormatTerms(terms),
		Properties: v.Properties,
		Invariants: v.Invariants,
	}, nil
}

// ToVBF reconstructs the function from its persisted form.
func (r Record) ToVBF(cache *vbf.TableCache) (*vbf.VBF, error) {
	v, err := vbf.FromPolynomial(r.Poly, r.FieldN, r.IrrPoly, cache)
	if err != nil {
		return nil, err
	}
	v.Properties = r.Properties
	v.Invariants = r.Invariants
	if v.Properties == nil {
		v.Properties = map[string]any{}
	}
	if v.Invariants == nil {
		v.Invariants = map[string]any{}
	}
	return v, nil
}

// Key is the duplicate-detection identity: dimension, effective modulus,
// and the canonical term list.
func (r Record) Key() string {
	return fmt.Sprintf("%d|%s|%s", r.FieldN, r.IrrPoly, gf.TermKey(r.Poly))
}
