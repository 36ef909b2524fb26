package gf

import (
	"fmt"

	apnerr "apncat/pkg/errors"
)

// defaultModulus is the conventional irreducible polynomial per dimension.
// Persisted catalog data is keyed by these exact values; do not change them.
//
//nolint:gochecknoglobals // fixed reference table
var defaultModulus = map[int]uint64{
	2:  0x7,         // x^2 + x + 1
	3:  0xB,         // x^3 + x + 1
	4:  0x13,        // x^4 + x + 1
	5:  0x25,        // x^5 + x^2 + 1
	6:  0x5B,        // x^6 + x^4 + x^3 + x + 1
	7:  0x83,        // x^7 + x + 1
	8:  0x11D,       // x^8 + x^4 + x^3 + x^2 + 1
	9:  0x211,       // x^9 + x^4 + 1
	10: 0x46F,       // x^10 + x^6 + x^5 + x^3 + x^2 + x + 1
	11: 0x805,       // x^11 + x^2 + 1
	12: 0x10EB,      // x^12 + x^7 + x^6 + x^5 + x^3 + x + 1
	13: 0x201B,      // x^13 + x^4 + x^3 + x + 1
	14: 0x40A9,      // x^14 + x^7 + x^5 + x^3 + 1
	15: 0x8035,      // x^15 + x^5 + x^4 + x^2 + 1
	16: 0x1002D,     // x^16 + x^5 + x^3 + x^2 + 1
	17: 0x20009,     // x^17 + x^3 + 1
	18: 0x41403,     // x^18 + x^12 + x^10 + x + 1
	19: 0x80027,     // x^19 + x^5 + x^2 + x + 1
	20: 0x1006F3,    // x^20 + x^10 + x^9 + x^7 + x^6 + x^5 + x^4 + x + 1
	21: 0x200065,    // x^21 + x^6 + x^5 + x^2 + 1
	22: 0x401F61,    // x^22 + x^12 + x^11 + x^10 + x^9 + x^8 + x^6 + x^5 + 1
	23: 0x800021,    // x^23 + x^5 + 1
	24: 0x101E6A9,   // x^24 + x^16 + x^15 + x^14 + x^13 + x^10 + x^9 + x^7 + x^5 + x^3 + 1
	25: 0x2000145,   // x^25 + x^8 + x^6 + x^2 + 1
	26: 0x40045D3,   // x^26 + x^14 + x^10 + x^8 + x^7 + x^6 + x^4 + x + 1
	27: 0x80016AD,   // x^27 + x^12 + x^10 + x^9 + x^7 + x^5 + x^3 + x^2 + 1
	28: 0x100020E5,  // x^28 + x^13 + x^7 + x^6 + x^5 + x^2 + 1
	29: 0x20000005,  // x^29 + x^2 + 1
	30: 0x400328AF,  // x^30 + x^17 + x^16 + x^13 + x^11 + x^7 + x^5 + x^3 + x^2 + x + 1
	31: 0x80000009,  // x^31 + x^3 + 1
	32: 0x100008299, // x^32 + x^15 + x^9 + x^7 + x^4 + x^3 + 1
}

// DefaultGenerator is the conventional generator for every dimension in the
// default table: the field element x. (The AES literature uses 0x3 for n=8;
// the catalog convention is 0x2 throughout.)
const DefaultGenerator uint32 = 0x2

// MinDefaultN and MaxDefaultN bound the dimensions covered by the default
// table.
const (
	MinDefaultN = 2
	MaxDefaultN = 32
)

// Defaults returns the canonical field descriptor for dimension n: the
// conventional irreducible polynomial and generator 0x2.
func Defaults(n int) (FieldDescriptor, error) {
	m, ok := defaultModulus[n]
	if !ok {
		return FieldDescriptor{}, apnerr.WithDetails(apnerr.ErrNoDefaultField, map[string]string{
			"n":     fmt.Sprintf("%d", n),
			"range": fmt.Sprintf("%d-%d", MinDefaultN, MaxDefaultN),
		})
	}
	return FieldDescriptor{N: n, Modulus: m, Generator: DefaultGenerator}, nil
}
