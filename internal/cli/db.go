package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"apncat/internal/catalog"
	"apncat/internal/output"
	apnerr "apncat/pkg/errors"
)

var (
	dbFieldN       int
	dbResetInput   bool
	dbResetMatches bool
)

// dbCmd is the parent command for database operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the per-dimension function database",
}

// dbStoreCmd moves the input list into the database.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var dbStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Store the input list in the database",
	Long: `Append every function on the input list to its per-dimension
database file. Functions already present (same dimension, same irreducible
polynomial, same canonical term list) are skipped.

Example:
  apncat db store`,
	RunE: runDBStore,
}

// dbReadCmd lists a per-dimension database.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var dbReadCmd = &cobra.Command{
	Use:   "read",
	Short: "List the database for a dimension",
	Long: `List every function stored for the given dimension.

Example:
  apncat db read --field-n 6
  apncat db read --field-n 6 -o json`,
	RunE: runDBRead,
}

// dbResetCmd clears stored state.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var dbResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear stored state",
	Long: `Remove the database file for a dimension, and optionally the input
and match lists.

Examples:
  apncat db reset --field-n 6
  apncat db reset --input --matches`,
	RunE: runDBReset,
}

func runDBStore(_ *cobra.Command, _ []string) error {
	records, err := store.LoadInput()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return apnerr.WithSuggestion(apnerr.ErrEmptyInputList, "run 'apncat add' first")
	}

	// Group by dimension; each dimension has its own database file.
	byDim := map[int][]catalog.Record{}
	for _, rec := range records {
		byDim[rec.FieldN] = append(byDim[rec.FieldN], rec)
	}

	totalAdded, totalSkipped := 0, 0
	for n, recs := range byDim {
		added, skipped, err := store.AppendDB(n, recs)
		if err != nil {
			return err
		}
		totalAdded += added
		totalSkipped += skipped
		logger.Debug("db store: n=%d added=%d skipped=%d", n, added, skipped)
	}

	msg := fmt.Sprintf("Stored %d functions (%d duplicates skipped).", totalAdded, totalSkipped)
	return output.FormatSuccess(formatter.Writer(), msg, formatter.Format())
}

func runDBRead(_ *cobra.Command, _ []string) error {
	if dbFieldN == 0 {
		return apnerr.WithSuggestion(apnerr.ErrInvalidInput, "--field-n is required")
	}

	records, err := store.LoadDB(dbFieldN)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return apnerr.WithDetails(apnerr.ErrCatalogNotFound, map[string]string{
			"field_n": fmt.Sprintf("%d", dbFieldN),
		})
	}

	if formatter.IsJSON() {
		return formatter.Print(records)
	}

	table := output.NewTable("#", "POLYNOMIAL", "IRR_POLY", "APN", "DEGREE", "UNIFORMITY")
	for i, rec := range records {
		table.AddRow(
			fmt.Sprintf("%d", i),
			rec.PolyStr,
			rec.IrrPoly,
			fmt.Sprintf("%v", rec.Properties["is_apn"]),
			fmt.Sprintf("%v", rec.Invariants["degree"]),
			fmt.Sprintf("%v", rec.Invariants["uniformity"]),
		)
	}
	return table.Render(formatter.Writer())
}

func runDBReset(_ *cobra.Command, _ []string) error {
	if dbFieldN == 0 && !dbResetInput && !dbResetMatches {
		return apnerr.WithSuggestion(apnerr.ErrInvalidInput,
			"specify --field-n, --input, or --matches")
	}

	if dbFieldN != 0 {
		if err := store.ResetDB(dbFieldN); err != nil {
			return err
		}
	}
	if dbResetInput {
		if err := store.ResetInput(); err != nil {
			return err
		}
	}
	if dbResetMatches {
		if err := store.ResetMatches(); err != nil {
			return err
		}
	}
	return output.FormatSuccess(formatter.Writer(), "Reset complete.", formatter.Format())
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	dbReadCmd.Flags().IntVar(&dbFieldN, "field-n", 0, "field dimension n")
	dbResetCmd.Flags().IntVar(&dbFieldN, "field-n", 0, "dimension whose database to remove")
	dbResetCmd.Flags().BoolVar(&dbResetInput, "input", false, "also clear the input list")
	dbResetCmd.Flags().BoolVar(&dbResetMatches, "matches", false, "also clear the match list")

	dbCmd.AddCommand(dbStoreCmd)
	dbCmd.AddCommand(dbReadCmd)
	dbCmd.AddCommand(dbResetCmd)
	rootCmd.AddCommand(dbCmd)
}
