package gf

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	apnerr "apncat/pkg/errors"
)

// Text grammar for moduli: a sum of monomials over GF(2), e.g.
// "x^6 + x^4 + x^3 + x + 1". Terms are joined by '+'; each term is "1",
// "x", or "x^k". The formatter emits descending exponents, so parse and
// format round-trip losslessly.
//
// Grammar for polynomial terms over GF(2^n): "g^3*x^6 + x^3 + g^11", where
// "g^k" is the coefficient generator^k ("a^k" is accepted as an alias) and
// the monomial part is "1", "x", or "x^m".

var (
	monomialRe = regexp.MustCompile(`^x\^(\d+)$`)
	coeffRe    = regexp.MustCompile(`^[ga]\^(\d+)$`)
)

// maxModulusExp bounds modulus exponents to what a 64-bit mask can encode.
const maxModulusExp = 63

// ParseModulus parses an irreducible-polynomial string into its bitmask.
// The empty string is not a valid modulus here: "no modulus supplied" is a
// distinct condition handled by the caller (default substitution), never by
// this parser.
func ParseModulus(s string) (uint64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, apnerr.WithDetails(apnerr.ErrUnparseableField, map[string]string{
			"input":  s,
			"reason": "empty modulus string",
		})
	}

	var mask uint64
	for _, raw := range strings.Split(trimmed, "+") {
		token := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case token == "1":
			mask |= 1
		case token == "x":
			mask |= 1 << 1
		default:
			m := monomialRe.FindStringSubmatch(token)
			if m == nil {
				return 0, apnerr.WithDetails(apnerr.ErrUnparseableField, map[string]string{
					"input": s,
					"token": token,
				})
			}
			exp, err := strconv.Atoi(m[1])
			if err != nil || exp > maxModulusExp {
				return 0, apnerr.WithDetails(apnerr.ErrUnparseableField, map[string]string{
					"input":  s,
					"token":  token,
					"reason": fmt.Sprintf("exponent out of range [0, %d]", maxModulusExp),
				})
			}
			mask |= 1 << uint(exp)
		}
	}
	return mask, nil
}

// FormatModulus renders a modulus bitmask as its polynomial string with
// descending exponents, e.g. 0x5B -> "x^6 + x^4 + x^3 + x + 1".
func FormatModulus(mask uint64) string {
	if mask == 0 {
		return "0"
	}
	var terms []string
	for exp := polyDegree(mask); exp >= 0; exp-- {
		if mask>>uint(exp)&1 == 0 {
			continue
		}
		switch exp {
		case 0:
			terms = append(terms, "1")
		case 1:
			terms = append(terms, "x")
		default:
			terms = append(terms, fmt.Sprintf("x^%d", exp))
		}
	}
	return strings.Join(terms, " + ")
}

// ParseTerms parses a polynomial-term string like "g^3*x^6 + x^3" into
// (coefficientExponent, monomialExponent) pairs in the order written.
// Malformed term syntax fails loudly; there is no fallback for term input.
func ParseTerms(s string) ([]Term, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == "0" {
		return nil, nil
	}

	var terms []Term
	for _, raw := range strings.Split(trimmed, "+") {
		token := strings.ToLower(strings.TrimSpace(raw))
		if token == "" {
			return nil, termParseError(s, raw, "empty term")
		}

		term := Term{}
		parts := strings.Split(token, "*")
		if len(parts) > 2 {
			return nil, termParseError(s, token, "too many factors")
		}

		// Single factor: either a bare coefficient or a bare monomial.
		if len(parts) == 1 {
			p := strings.TrimSpace(parts[0])
			switch {
			case p == "1":
				// g^0 * x^0
			case p == "g" || p == "a":
				term.CoeffExp = 1
			case p == "x":
				term.MonExp = 1
			case coeffRe.MatchString(p):
				term.CoeffExp = mustExp(coeffRe, p)
			case monomialRe.MatchString(p):
				term.MonExp = mustExp(monomialRe, p)
			default:
				return nil, termParseError(s, token, "unrecognized term")
			}
			terms = append(terms, term)
			continue
		}

		// Coefficient factor then monomial factor.
		c := strings.TrimSpace(parts[0])
		switch {
		case c == "g" || c == "a":
			term.CoeffExp = 1
		case coeffRe.MatchString(c):
			term.CoeffExp = mustExp(coeffRe, c)
		default:
			return nil, termParseError(s, token, "invalid coefficient factor")
		}

		m := strings.TrimSpace(parts[1])
		switch {
		case m == "x":
			term.MonExp = 1
		case monomialRe.MatchString(m):
			term.MonExp = mustExp(monomialRe, m)
		default:
			return nil, termParseError(s, token, "invalid monomial factor")
		}

		terms = append(terms, term)
	}
	return terms, nil
}

func mustExp(re *regexp.Regexp, s string) int {
	v, _ := strconv.Atoi(re.FindStringSubmatch(s)[1])
	return v
}

func termParseError(input, token, reason string) error {
	return apnerr.WithDetails(apnerr.ErrUnparseableField, map[string]string{
		"input":  input,
		"token":  strings.TrimSpace(token),
		"reason": reason,
	})
}

// FormatTerms renders a term list with descending monomial exponents, the
// display convention of the catalog: "g^3*x^6 + x^3 + 1". Coefficient g^0
// is omitted; the zero polynomial renders as "0".
func FormatTerms(terms []Term) string {
	if len(terms) == 0 {
		return "0"
	}

	sorted := make([]Term, len(terms))
	copy(sorted, terms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MonExp > sorted[j].MonExp
	})

	parts := make([]string, 0, len(sorted))
	for _, t := range sorted {
		var coeff, mono string
		if t.CoeffExp != 0 {
			coeff = fmt.Sprintf("g^%d", t.CoeffExp)
		}
		switch t.MonExp {
		case 0:
		case 1:
			mono = "x"
		default:
			mono = fmt.Sprintf("x^%d", t.MonExp)
		}

		switch {
		case coeff == "" && mono == "":
			parts = append(parts, "1")
		case coeff == "":
			parts = append(parts, mono)
		case mono == "":
			parts = append(parts, coeff)
		default:
			parts = append(parts, coeff+"*"+mono)
		}
	}
	return strings.Join(parts, " + ")
}

// ParseTruthTable parses a whitespace-, comma-, or brace-delimited list of
// decimal values into a truth table for dimension n, validating both the
// 2^n length and the element range.
func ParseTruthTable(s string, n int) ([]uint32, error) {
	size := 1 << uint(n)
	cleaned := strings.NewReplacer("{", " ", "}", " ", ",", " ", "[", " ", "]", " ").Replace(s)
	fields := strings.Fields(cleaned)

	if len(fields) != size {
		return nil, apnerr.WithDetails(apnerr.ErrInvalidDimension, map[string]string{
			"expected": fmt.Sprintf("%d", size),
			"got":      fmt.Sprintf("%d", len(fields)),
		})
	}

	tt := make([]uint32, size)
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, apnerr.WithDetails(apnerr.ErrInvalidInput, map[string]string{
				"index": fmt.Sprintf("%d", i),
				"value": f,
			})
		}
		if v >= uint64(size) {
			return nil, apnerr.WithDetails(apnerr.ErrInvalidInput, map[string]string{
				"index":  fmt.Sprintf("%d", i),
				"value":  f,
				"reason": fmt.Sprintf("field element must be < %d", size),
			})
		}
		tt[i] = uint32(v)
	}
	return tt, nil
}
