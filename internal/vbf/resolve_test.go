package vbf

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apncat/internal/gf"
	apnerr "apncat/pkg/errors"
)

func TestResolveFieldDefault(t *testing.T) {
	for _, modulus := range []string{"", "   "} {
		desc, usedDefault, err := ResolveField(3, modulus)
		require.NoError(t, err)
		assert.True(t, usedDefault)
		assert.Equal(t, gf.FieldDescriptor{N: 3, Modulus: 0xB, Generator: 0x2}, desc)
	}
}

func TestResolveFieldExplicit(t *testing.T) {
	desc, usedDefault, err := ResolveField(3, "x^3 + x^2 + 1")
	require.NoError(t, err)
	assert.False(t, usedDefault)
	assert.Equal(t, uint64(0xD), desc.Modulus)
	assert.Equal(t, gf.DefaultGenerator, desc.Generator)
}

func TestResolveFieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		modulus string
		want    error
	}{
		{"dimension too small", 1, "", apnerr.ErrInvalidDimension},
		{"dimension too large", 33, "", apnerr.ErrInvalidDimension},
		{"malformed modulus", 3, "x^3 + wat", apnerr.ErrUnparseableField},
		{"degree mismatch", 3, "x^4 + x + 1", apnerr.ErrUnparseableField},
		{"reducible modulus", 4, "x^4 + x^2 + 1", apnerr.ErrReduciblePolynomial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ResolveField(tt.n, tt.modulus)
			require.Error(t, err)
			assert.True(t, apnerr.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestTableCacheSingleBuild(t *testing.T) {
	cache := NewTableCache()
	desc, err := gf.Defaults(4)
	require.NoError(t, err)

	a, err := cache.Get(desc)
	require.NoError(t, err)
	b, err := cache.Get(desc)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, cache.Len())
}

func TestTableCacheConcurrentGet(t *testing.T) {
	cache := NewTableCache()
	desc, err := gf.Defaults(5)
	require.NoError(t, err)

	const workers = 16
	results := make([]*gf.Tables, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tables, err := cache.Get(desc)
			assert.NoError(t, err)
			results[i] = tables
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, results[0], results[i])
	}
	assert.Equal(t, 1, cache.Len())
}

func TestTableCacheCachesErrors(t *testing.T) {
	cache := NewTableCache()
	bad := gf.FieldDescriptor{N: 4, Modulus: 0x13, Generator: 0}

	_, err1 := cache.Get(bad)
	require.Error(t, err1)
	_, err2 := cache.Get(bad)
	require.Error(t, err2)
	assert.True(t, apnerr.Is(err2, apnerr.ErrInvalidGenerator))
	assert.Equal(t, 1, cache.Len())
}
