package cli

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"apncat/internal/catalog"
	"apncat/internal/gf"
	"apncat/internal/vbf"
	apnerr "apncat/pkg/errors"
)

var (
	addFieldN  int
	addIrrPoly string
	addPolys   []string
	addTT      string
	addTTFiles []string
)

// addCmd adds functions to the working input list.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a function to the input list",
	Long: `Add a function to the working input list, either as a univariate
polynomial over GF(2^n) or as a truth table.

Polynomial terms are written as g^k*x^m joined by '+', where g is the field
generator. Truth tables are 2^n decimal values, whitespace or comma
separated. A truth-table file holds the dimension on its first line and the
table on the second.

If --irr-poly is omitted the canonical default polynomial for the dimension
is used and reported.

Examples:
  apncat add --field-n 6 --poly "g^3*x^6 + x^3"
  apncat add --field-n 3 --tt "0 1 3 4 5 6 7 2"
  apncat add --tt-file cube_map.tt --irr-poly "x^6 + x^4 + x^3 + x + 1"`,
	RunE: runAdd,
}

func runAdd(_ *cobra.Command, _ []string) error {
	if len(addPolys) == 0 && addTT == "" && len(addTTFiles) == 0 {
		return apnerr.WithSuggestion(apnerr.ErrInvalidInput,
			"supply at least one of --poly, --tt, or --tt-file")
	}
	if (len(addPolys) > 0 || addTT != "") && addFieldN == 0 {
		return apnerr.WithSuggestion(apnerr.ErrInvalidInput,
			"--field-n is required with --poly and --tt")
	}

	records, err := store.LoadInput()
	if err != nil {
		return err
	}

	for _, polyStr := range addPolys {
		terms, err := gf.ParseTerms(polyStr)
		if err != nil {
			return err
		}
		v, err := vbf.FromPolynomial(terms, addFieldN, addIrrPoly, tables)
		if err != nil {
			return err
		}
		reportDefaultModulus(v)

		rec, err := classify(v)
		if err != nil {
			return err
		}
		records, err = appendUnique(records, rec)
		if err != nil {
			return err
		}
		if err := printAdded(rec); err != nil {
			return err
		}
	}

	if addTT != "" {
		tt, err := gf.ParseTruthTable(addTT, addFieldN)
		if err != nil {
			return err
		}
		v, err := vbf.FromTruthTable(tt, addFieldN, addIrrPoly, tables)
		if err != nil {
			return err
		}
		reportDefaultModulus(v)

		rec, err := classify(v)
		if err != nil {
			return err
		}
		records, err = appendUnique(records, rec)
		if err != nil {
			return err
		}
		if err := printAdded(rec); err != nil {
			return err
		}
	}

	for _, path := range addTTFiles {
		rec, err := addFromFile(path)
		if err != nil {
			return err
		}
		records, err = appendUnique(records, rec)
		if err != nil {
			return err
		}
		if err := printAdded(rec); err != nil {
			return err
		}
	}

	if err := store.SaveInput(records); err != nil {
		return err
	}
	logger.Debug("input list saved with %d entries", len(records))
	return nil
}

// addFromFile reads a truth-table file: dimension on the first line, the
// 2^n values on the second.
func addFromFile(path string) (rec catalog.Record, err error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from a user flag
	if err != nil {
		return rec, apnerr.Wrap(err, "reading truth-table file %s", path)
	}

	lines := nonEmptyLines(string(data))
	if len(lines) < 2 {
		return rec, apnerr.WithDetails(apnerr.ErrInvalidInput, map[string]string{
			"file":   path,
			"reason": "expected dimension line followed by truth-table line",
		})
	}

	n, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return rec, apnerr.WithDetails(apnerr.ErrInvalidDimension, map[string]string{
			"file":  path,
			"value": lines[0],
		})
	}

	tt, err := gf.ParseTruthTable(lines[1], n)
	if err != nil {
		return rec, err
	}
	v, err := vbf.FromTruthTable(tt, n, addIrrPoly, tables)
	if err != nil {
		return rec, err
	}
	reportDefaultModulus(v)

	return classify(v)
}

// appendUnique rejects a function already on the input list. The list
// shares the database's identity key, so a duplicate here would also be
// skipped by 'db store' later.
func appendUnique(records []catalog.Record, rec catalog.Record) ([]catalog.Record, error) {
	key := rec.Key()
	for _, r := range records {
		if r.Key() == key {
			return nil, apnerr.WithSuggestion(
				apnerr.WithDetails(apnerr.ErrDuplicateFunction, map[string]string{
					"poly":     rec.PolyStr,
					"irr_poly": rec.IrrPoly,
				}),
				"the function is already on the input list; see 'apncat print'")
		}
	}
	return append(records, rec), nil
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

func printAdded(rec catalog.Record) error {
	if formatter.IsJSON() {
		return formatter.Print(rec)
	}
	return formatter.Println(summarize(rec, "INPUT"))
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	addCmd.Flags().IntVar(&addFieldN, "field-n", 0, "field dimension n")
	addCmd.Flags().StringVar(&addIrrPoly, "irr-poly", "", "irreducible polynomial, e.g. \"x^6 + x^4 + x^3 + x + 1\" (default: canonical for n)")
	addCmd.Flags().StringArrayVarP(&addPolys, "poly", "p", nil, "univariate polynomial, e.g. \"g^3*x^6 + x^3\"")
	addCmd.Flags().StringVar(&addTT, "tt", "", "truth table as 2^n decimal values")
	addCmd.Flags().StringArrayVar(&addTTFiles, "tt-file", nil, "truth-table file (dimension line, then values)")

	rootCmd.AddCommand(addCmd)
}
