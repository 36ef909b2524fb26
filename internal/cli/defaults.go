package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"apncat/internal/gf"
	"apncat/internal/output"
)

var defaultsFieldN int

// defaultsCmd prints the default field table.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Show the default irreducible polynomials",
	Long: `Show the canonical irreducible polynomial and generator used for each
dimension when none is supplied explicitly. Persisted catalog data is keyed
by these values.

Examples:
  apncat defaults
  apncat defaults --field-n 8`,
	RunE: runDefaults,
}

type defaultEntry struct {
	FieldN    int    `json:"field_n"`
	IrrPoly   string `json:"irr_poly"`
	Mask      string `json:"mask"`
	Generator string `json:"generator"`
}

func runDefaults(_ *cobra.Command, _ []string) error {
	from, to := gf.MinDefaultN, gf.MaxDefaultN
	if defaultsFieldN != 0 {
		from, to = defaultsFieldN, defaultsFieldN
	}

	var entries []defaultEntry
	for n := from; n <= to; n++ {
		desc, err := gf.Defaults(n)
		if err != nil {
			return err
		}
		entries = append(entries, defaultEntry{
			FieldN:    n,
			IrrPoly:   gf.FormatModulus(desc.Modulus),
			Mask:      fmt.Sprintf("%#x", desc.Modulus),
			Generator: fmt.Sprintf("%#x", desc.Generator),
		})
	}

	if formatter.IsJSON() {
		return formatter.Print(entries)
	}

	table := output.NewTable("N", "IRREDUCIBLE POLYNOMIAL", "MASK", "GENERATOR")
	for _, e := range entries {
		table.AddRow(fmt.Sprintf("%d", e.FieldN), e.IrrPoly, e.Mask, e.Generator)
	}
	return table.Render(formatter.Writer())
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	defaultsCmd.Flags().IntVar(&defaultsFieldN, "field-n", 0, "show a single dimension")

	rootCmd.AddCommand(defaultsCmd)
}
