// Package gf builds exact arithmetic tables for GF(2^n): multiplication,
// multiplicative inverse, and discrete log/antilog with respect to a chosen
// generator. Field elements are n-bit integers; addition is XOR and
// multiplication is polynomial multiplication modulo an irreducible
// polynomial over GF(2).
//
// Tables are immutable once built. The multiplication table holds 4^n
// entries, which is the dominant cost in both time and memory; building is
// only practical for n up to roughly 12, and BuildTables refuses dimensions
// beyond MaxTableN rather than hang.
package gf

import (
	"fmt"

	apnerr "apncat/pkg/errors"
)

// MaxTableN is the largest dimension BuildTables accepts. The mul table is
// 4^n uint32 entries: n=12 is 64 MiB, n=14 is 1 GiB, n=15 would be 4 GiB.
const MaxTableN = 14

// FieldDescriptor identifies a concrete GF(2^n) instance.
type FieldDescriptor struct {
	// N is the binary degree of the field.
	N int

	// Modulus is the degree-n irreducible polynomial as an (n+1)-bit mask:
	// bit k set means the coefficient of x^k is 1. Bit n and bit 0 must be
	// set (monic, nonzero constant term).
	Modulus uint64

	// Generator is a nonzero field element asserted to generate the
	// multiplicative group. BuildTables does not verify the assertion; a
	// non-generator yields inconsistent log/alog tables.
	Generator uint32
}

// Validate checks the structural preconditions of the descriptor. It does
// not check irreducibility (see IsIrreducible) or that Generator actually
// generates the multiplicative group.
func (d FieldDescriptor) Validate() error {
	if d.N < 1 {
		return apnerr.WithDetails(apnerr.ErrInvalidDimension, map[string]string{
			"n": fmt.Sprintf("%d", d.N),
		})
	}
	if d.Modulus&1 == 0 || d.Modulus>>uint(d.N) != 1 {
		return apnerr.WithDetails(apnerr.ErrUnparseableField, map[string]string{
			"modulus": fmt.Sprintf("%#x", d.Modulus),
			"reason":  fmt.Sprintf("must be monic of degree %d with nonzero constant term", d.N),
		})
	}
	if d.Generator == 0 || uint64(d.Generator) >= 1<<uint(d.N) {
		return apnerr.WithDetails(apnerr.ErrInvalidGenerator, map[string]string{
			"generator": fmt.Sprintf("%#x", d.Generator),
		})
	}
	return nil
}

// Size returns the number of field elements, 2^n.
func (d FieldDescriptor) Size() int {
	return 1 << uint(d.N)
}

// Tables holds the precomputed arithmetic tables for one field instance.
// A Tables value is immutable after BuildTables returns and is safe for
// concurrent use by any number of goroutines.
type Tables struct {
	desc FieldDescriptor
	size int

	mul  [][]uint32
	inv  []uint32
	log  []uint32
	alog []uint32
}

// BuildTables constructs the full table set for the descriptor. Cost is
// O(4^n) for the multiplication table; callers that need the same field
// repeatedly must cache the result per (n, modulus, generator) rather than
// rebuild per conversion.
func BuildTables(desc FieldDescriptor) (*Tables, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if desc.N > MaxTableN {
		return nil, apnerr.WithDetails(apnerr.ErrInvalidDimension, map[string]string{
			"n":      fmt.Sprintf("%d", desc.N),
			"reason": fmt.Sprintf("multiplication table would exceed 4^%d entries; maximum supported n is %d", MaxTableN, MaxTableN),
		})
	}

	size := desc.Size()
	t := &Tables{
		desc: desc,
		size: size,
		mul:  make([][]uint32, size),
		inv:  make([]uint32, size),
		log:  make([]uint32, size),
		alog: make([]uint32, size),
	}

	for a := 0; a < size; a++ {
		row := make([]uint32, size)
		for b := 0; b < size; b++ {
			row[b] = mulSlow(uint32(a), uint32(b), desc.N, desc.Modulus)
		}
		t.mul[a] = row
	}

	// inv[0] stays 0: a sentinel, never a valid inverse.
	for a := 1; a < size; a++ {
		t.inv[a] = findInverse(uint32(a), size, t.mul)
	}

	// alog[k] = generator^k for k in [0, size-2]. log[0] stays 0 as a
	// sentinel; correct callers never take the log of zero.
	t.alog[0] = 1
	for k := 1; k < size-1; k++ {
		t.alog[k] = t.mul[t.alog[k-1]][desc.Generator]
	}
	for k := 0; k < size-1; k++ {
		t.log[t.alog[k]] = uint32(k)
	}

	return t, nil
}

// mulSlow multiplies a and b in GF(2^n) with the shift-and-XOR method,
// reducing by the modulus after every shift so the running value never
// leaves n bits.
func mulSlow(a, b uint32, n int, modulus uint64) uint32 {
	mask := uint32(1)<<uint(n) - 1
	low := uint32(modulus) & mask
	hi := uint32(1) << uint(n-1)

	var r uint32
	for i := 0; i < n; i++ {
		if b&1 != 0 {
			r ^= a
		}
		b >>= 1
		carry := a&hi != 0
		a = (a << 1) & mask
		if carry {
			a ^= low
		}
	}
	return r
}

// findInverse locates x with a*x = 1 by brute-force scan of the mul table.
func findInverse(a uint32, size int, mul [][]uint32) uint32 {
	for x := 1; x < size; x++ {
		if mul[a][x] == 1 {
			return uint32(x)
		}
	}
	return 0
}

// Descriptor returns the field descriptor the tables were built from.
func (t *Tables) Descriptor() FieldDescriptor {
	return t.desc
}

// Size returns the number of field elements, 2^n.
func (t *Tables) Size() int {
	return t.size
}

// Add returns a + b. Addition in GF(2^n) is XOR.
func (t *Tables) Add(a, b uint32) uint32 {
	return a ^ b
}

// Mul returns the product of a and b reduced by the field modulus.
func (t *Tables) Mul(a, b uint32) uint32 {
	return t.mul[a][b]
}

// Inv returns the multiplicative inverse of a, with Inv(0) = 0 as a
// sentinel.
func (t *Tables) Inv(a uint32) uint32 {
	return t.inv[a]
}

// Log returns the discrete logarithm of nonzero a base the generator.
// Log(0) returns the sentinel 0 and must not be relied upon.
func (t *Tables) Log(a uint32) uint32 {
	return t.log[a]
}

// Alog returns generator^k. The exponent is reduced modulo the group order
// 2^n - 1, so any non-negative k is accepted.
func (t *Tables) Alog(k int) uint32 {
	return t.alog[k%(t.size-1)]
}

// Pow returns x^e. By convention 0^0 = 1.
func (t *Tables) Pow(x uint32, e int) uint32 {
	if e == 0 {
		return 1
	}
	if x == 0 {
		return 0
	}
	// x^e = g^(log(x)*e), reduced modulo the group order.
	return t.alog[(int(t.log[x])*e)%(t.size-1)]
}
