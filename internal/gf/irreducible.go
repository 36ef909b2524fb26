package gf

import "math/bits"

// IsIrreducible reports whether the polynomial over GF(2) encoded in mask
// form is irreducible. It runs Rabin's test: p of degree n is irreducible
// iff x^(2^n) = x (mod p) and gcd(x^(2^(n/q)) - x, p) = 1 for every prime
// divisor q of n.
//
// The original tooling trusted the caller's modulus blindly; a reducible
// modulus makes every derived table meaningless, so the parse boundary
// calls this before building anything.
func IsIrreducible(poly uint64) bool {
	n := polyDegree(poly)
	if n < 1 {
		return false
	}
	if n == 1 {
		return true // x and x+1
	}
	// Degree >= 2 with a zero constant term is divisible by x.
	if poly&1 == 0 {
		return false
	}

	// h starts as x and is squared repeatedly: after i steps h = x^(2^i) mod p.
	const x = uint64(0b10)
	h := x
	checkpoints := map[int]struct{}{}
	for _, q := range primeDivisors(n) {
		checkpoints[n/q] = struct{}{}
	}

	for i := 1; i <= n; i++ {
		h = polyMulMod(h, h, poly)
		if _, ok := checkpoints[i]; ok {
			if polyGCD(h^x, poly) != 1 {
				return false
			}
		}
	}
	return h == x
}

// polyDegree returns the degree of the polynomial, or -1 for the zero
// polynomial.
func polyDegree(p uint64) int {
	return bits.Len64(p) - 1
}

// polyMulMod returns a*b mod m over GF(2). Operands must already be reduced
// modulo m, so for moduli of degree <= 32 the carry-less product fits in 64
// bits.
func polyMulMod(a, b, m uint64) uint64 {
	var r uint64
	for b != 0 {
		if b&1 != 0 {
			r ^= a
		}
		a <<= 1
		b >>= 1
	}
	return polyMod(r, m)
}

// polyMod reduces a modulo m over GF(2).
func polyMod(a, m uint64) uint64 {
	dm := polyDegree(m)
	for da := polyDegree(a); da >= dm; da = polyDegree(a) {
		a ^= m << uint(da-dm)
	}
	return a
}

// polyGCD returns the greatest common divisor of a and b over GF(2).
func polyGCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, polyMod(a, b)
	}
	return a
}

// primeDivisors returns the distinct prime divisors of n.
func primeDivisors(n int) []int {
	var ps []int
	for p := 2; p*p <= n; p++ {
		if n%p == 0 {
			ps = append(ps, p)
			for n%p == 0 {
				n /= p
			}
		}
	}
	if n > 1 {
		ps = append(ps, n)
	}
	return ps
}
