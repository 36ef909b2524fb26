package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apnerr "apncat/pkg/errors"
)

// printCmd shows the working input list.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the input list",
	Long: `Print every function currently on the working input list with its
polynomial representation, properties, and invariants.

Example:
  apncat print
  apncat print -o json`,
	RunE: runPrint,
}

func runPrint(_ *cobra.Command, _ []string) error {
	records, err := store.LoadInput()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return apnerr.WithSuggestion(apnerr.ErrEmptyInputList, "run 'apncat add' first")
	}

	if formatter.IsJSON() {
		return formatter.Print(records)
	}

	for i, rec := range records {
		if err := formatter.Println(summarize(rec, fmt.Sprintf("INPUT %d", i))); err != nil {
			return err
		}
	}
	return nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(printCmd)
}
