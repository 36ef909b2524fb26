package cli

import (
	"fmt"
	"sort"
	"strings"

	"apncat/internal/catalog"
	"apncat/internal/invariant"
	"apncat/internal/vbf"
)

// classify fills the VBF's properties and invariants from the registered
// computers and captures it as a catalog record.
func classify(v *vbf.VBF) (catalog.Record, error) {
	tt, err := v.AsTruthTable()
	if err != nil {
		return catalog.Record{}, err
	}

	props, err := invariant.Properties(tt, v.FieldN())
	if err != nil {
		return catalog.Record{}, err
	}
	v.Properties = props

	invs, err := invariant.ComputeAll(registry, tt, v.FieldN())
	if err != nil {
		return catalog.Record{}, err
	}
	v.Invariants = invs

	return catalog.NewRecord(v)
}

// summarize renders one record for text output.
func summarize(rec catalog.Record, label string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s -> GF(2^%d), irreducible_poly='%s'\n", label, rec.FieldN, rec.IrrPoly)
	fmt.Fprintf(&sb, "  Univariate polynomial representation: %s\n", rec.PolyStr)
	fmt.Fprintf(&sb, "  Properties: %s\n", formatKV(rec.Properties))
	fmt.Fprintf(&sb, "  Invariants: %s", formatKV(rec.Invariants))
	return sb.String()
}

// formatKV renders a string-keyed map deterministically.
func formatKV(m map[string]any) string {
	if len(m) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, m[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// reportDefaultModulus tells the user when the default modulus was
// substituted, since the effective polynomial is part of the function's
// identity downstream.
func reportDefaultModulus(v *vbf.VBF) {
	if v.UsedDefault() && !formatter.IsJSON() {
		_ = formatter.Printf("Note: no irreducible polynomial supplied; using default '%s' for GF(2^%d)\n",
			v.EffectiveModulus(), v.FieldN())
	}
}
