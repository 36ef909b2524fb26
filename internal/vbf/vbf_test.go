package vbf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apncat/internal/gf"
	apnerr "apncat/pkg/errors"
)

// Truth table of x^3 over GF(2^3) with the default modulus x^3 + x + 1.
var cubeTableGF8 = []uint32{0, 1, 3, 4, 5, 6, 7, 2}

func TestFromTruthTableRoundTrip(t *testing.T) {
	cache := NewTableCache()

	v, err := FromTruthTable(cubeTableGF8, 3, "", cache)
	require.NoError(t, err)
	assert.True(t, v.UsedDefault())
	assert.Equal(t, "x^3 + x + 1", v.EffectiveModulus())
	assert.Equal(t, 3, v.FieldN())

	terms, err := v.AsUnivariatePolynomial()
	require.NoError(t, err)
	assert.Equal(t, []gf.Term{{CoeffExp: 0, MonExp: 3}}, terms)

	s, err := v.PolyString()
	require.NoError(t, err)
	assert.Equal(t, "x^3", s)
}

func TestFromPolynomialRoundTrip(t *testing.T) {
	cache := NewTableCache()

	v, err := FromPolynomial([]gf.Term{{CoeffExp: 0, MonExp: 3}}, 3, "x^3 + x + 1", cache)
	require.NoError(t, err)
	assert.False(t, v.UsedDefault())

	tt, err := v.AsTruthTable()
	require.NoError(t, err)
	assert.Equal(t, cubeTableGF8, tt)
}

func TestConversionCaching(t *testing.T) {
	cache := NewTableCache()

	v, err := FromTruthTable(cubeTableGF8, 3, "", cache)
	require.NoError(t, err)

	first, err := v.AsUnivariatePolynomial()
	require.NoError(t, err)
	second, err := v.AsUnivariatePolynomial()
	require.NoError(t, err)
	// Identical value, not just equal: conversion runs once.
	assert.True(t, &first[0] == &second[0])

	tt1, err := v.AsTruthTable()
	require.NoError(t, err)
	tt2, err := v.AsTruthTable()
	require.NoError(t, err)
	assert.True(t, &tt1[0] == &tt2[0])
}

func TestFromTruthTableCopiesInput(t *testing.T) {
	cache := NewTableCache()
	in := append([]uint32(nil), cubeTableGF8...)

	v, err := FromTruthTable(in, 3, "", cache)
	require.NoError(t, err)

	in[0] = 7
	tt, err := v.AsTruthTable()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), tt[0], "caller mutation must not leak in")
}

func TestZeroValueConversionFails(t *testing.T) {
	var v VBF

	_, err := v.AsTruthTable()
	assert.True(t, apnerr.Is(err, apnerr.ErrUnsupportedConversion))
	_, err = v.AsUnivariatePolynomial()
	assert.True(t, apnerr.Is(err, apnerr.ErrUnsupportedConversion))
}

func TestFromPolynomialNormalizes(t *testing.T) {
	cache := NewTableCache()

	// g^0*x^3 + g^1*x^3 combines to g^3*x^3 in GF(2^3).
	v, err := FromPolynomial([]gf.Term{{CoeffExp: 0, MonExp: 3}, {CoeffExp: 1, MonExp: 3}}, 3, "", cache)
	require.NoError(t, err)

	terms, err := v.AsUnivariatePolynomial()
	require.NoError(t, err)
	assert.Equal(t, []gf.Term{{CoeffExp: 3, MonExp: 3}}, terms)
}

func TestKey(t *testing.T) {
	cache := NewTableCache()

	a, err := FromTruthTable(cubeTableGF8, 3, "", cache)
	require.NoError(t, err)
	b, err := FromPolynomial([]gf.Term{{CoeffExp: 0, MonExp: 3}}, 3, "x^3 + x + 1", cache)
	require.NoError(t, err)

	ka, err := a.Key()
	require.NoError(t, err)
	kb, err := b.Key()
	require.NoError(t, err)
	assert.Equal(t, ka, kb, "same function, either source, same identity")

	c, err := FromPolynomial([]gf.Term{{CoeffExp: 0, MonExp: 3}}, 3, "x^3 + x^2 + 1", cache)
	require.NoError(t, err)
	kc, err := c.Key()
	require.NoError(t, err)
	assert.NotEqual(t, ka, kc, "different modulus, different identity")
}

func TestFromTruthTableLengthMismatch(t *testing.T) {
	cache := NewTableCache()

	_, err := FromTruthTable([]uint32{0, 1, 2}, 3, "", cache)
	require.Error(t, err)
	assert.True(t, apnerr.Is(err, apnerr.ErrInvalidDimension))
}
