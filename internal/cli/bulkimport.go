package cli

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"apncat/internal/gf"
	"apncat/internal/interp"
	apnerr "apncat/pkg/errors"
)

var bulkOutFile string

// bulkImportCmd interpolates every truth table in a file.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var bulkImportCmd = &cobra.Command{
	Use:   "bulk-import <file>",
	Short: "Interpolate a file of truth tables",
	Long: `Read a file whose first line is the field dimension n and whose
remaining lines each hold one truth table of 2^n decimal values, convert
every table to its univariate polynomial by Lagrange interpolation, and
write one polynomial string per line to the output file.

Tables are interpolated in parallel. Output order matches input order.

Example:
  apncat bulk-import gf2_8_candidates.tt.txt --out gf2_8_candidates.apn.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runBulkImport,
}

func runBulkImport(_ *cobra.Command, args []string) error {
	inPath := args[0]
	data, err := os.ReadFile(inPath) // #nosec G304 -- path comes from a user argument
	if err != nil {
		return apnerr.Wrap(err, "reading %s", inPath)
	}

	lines := nonEmptyLines(string(data))
	if len(lines) < 2 {
		return apnerr.WithDetails(apnerr.ErrInvalidInput, map[string]string{
			"file":   inPath,
			"reason": "expected a dimension line followed by truth-table lines",
		})
	}

	n, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return apnerr.WithDetails(apnerr.ErrInvalidDimension, map[string]string{
			"file":  inPath,
			"value": lines[0],
		})
	}
	if max := cfg.Interpolation.MaxDimension; n > max {
		return apnerr.WithDetails(apnerr.ErrInvalidDimension, map[string]string{
			"n":      fmt.Sprintf("%d", n),
			"reason": fmt.Sprintf("interpolation is O(2^(3n)); configured maximum is %d", max),
		})
	}

	desc, err := gf.Defaults(n)
	if err != nil {
		return err
	}
	// One immutable table set shared by all workers.
	fieldTables, err := tables.Get(desc)
	if err != nil {
		return err
	}

	if !formatter.IsJSON() {
		_ = formatter.Printf("Using GF(2^%d), irreducible_poly='%s', generator=%#x\n",
			n, gf.FormatModulus(desc.Modulus), desc.Generator)
	}

	ttLines := lines[1:]
	results := make([]string, len(ttLines))

	workers := cfg.Interpolation.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, line := range ttLines {
		g.Go(func() error {
			tt, err := gf.ParseTruthTable(line, n)
			if err != nil {
				return apnerr.Wrap(err, "line %d", i+2)
			}
			terms, err := interp.Interpolate(tt, fieldTables)
			if err != nil {
				return apnerr.Wrap(err, "line %d", i+2)
			}
			results[i] = gf.FormatTerms(terms)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	outPath := bulkOutFile
	if outPath == "" {
		outPath = strings.TrimSuffix(inPath, ".tt.txt") + ".apn.txt"
	}
	if err := os.WriteFile(outPath, []byte(strings.Join(results, "\n")+"\n"), 0o640); err != nil {
		return apnerr.Wrap(err, "writing %s", outPath)
	}

	logger.Debug("bulk-import: %d tables interpolated for n=%d", len(results), n)
	if formatter.IsJSON() {
		return formatter.Print(map[string]any{
			"field_n":  n,
			"count":    len(results),
			"out_file": outPath,
		})
	}
	return formatter.Printf("Interpolated %d truth tables. Results in %s\n", len(results), outPath)
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	bulkImportCmd.Flags().StringVar(&bulkOutFile, "out", "", "output file (default: input with .apn.txt suffix)")

	rootCmd.AddCommand(bulkImportCmd)
}
