package cli

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/spf13/cobra"

	"apncat/internal/catalog"
	"apncat/internal/output"
	apnerr "apncat/pkg/errors"
)

var (
	compareFieldN int
	compareType   string
)

// compareCmd matches input functions against the database by invariant
// values.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare input functions against the database",
	Long: `Compare every function on the input list against the database for a
dimension, matching on invariant values. Matching database entries are
recorded in the match list together with the comparison types that agreed.

Invariant equality is a necessary condition for equivalence, so matches are
candidates for a subsequent equivalence check, not a verdict.

Examples:
  apncat compare --field-n 6
  apncat compare --field-n 6 --type uniformity`,
	RunE: runCompare,
}

func runCompare(_ *cobra.Command, _ []string) error {
	if compareFieldN == 0 {
		return apnerr.WithSuggestion(apnerr.ErrInvalidInput, "--field-n is required")
	}

	types := registry.Names()
	if compareType != "all" {
		// Unknown types get a closest-name suggestion from the registry.
		if _, err := registry.Get(compareType); err != nil {
			return err
		}
		types = []string{compareType}
	}

	inputs, err := store.LoadInput()
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return apnerr.WithSuggestion(apnerr.ErrEmptyInputList, "run 'apncat add' first")
	}

	dbRecords, err := store.LoadDB(compareFieldN)
	if err != nil {
		return err
	}
	if len(dbRecords) == 0 {
		return apnerr.WithDetails(apnerr.ErrCatalogNotFound, map[string]string{
			"field_n": fmt.Sprintf("%d", compareFieldN),
		})
	}

	matches, err := store.LoadMatches()
	if err != nil {
		return err
	}

	added := foldMatches(inputs, dbRecords, compareFieldN, types, matches)
	if !formatter.IsJSON() {
		for _, m := range added {
			_ = formatter.Printf("INPUT %d matches %s on %v\n", m.input, m.record.PolyStr, m.agreed)
		}
	}

	if err := store.SaveMatches(matches); err != nil {
		return err
	}

	msg := fmt.Sprintf("Found %d new invariant matches.", len(added))
	return output.FormatSuccess(formatter.Writer(), msg, formatter.Format())
}

// newMatch is a database entry newly matched to an input function.
type newMatch struct {
	input  int
	record catalog.Record
	agreed []string
}

// foldMatches records the database entries agreeing with each input on
// the given invariant types into the match list and returns only the
// entries added by this call. Re-running a comparison merges any newly
// agreed types into existing entries without reporting them again.
func foldMatches(inputs, dbRecords []catalog.Record, fieldN int, types []string, matches catalog.Matches) []newMatch {
	var added []newMatch
	for i, in := range inputs {
		if in.FieldN != fieldN {
			continue
		}
		key := strconv.Itoa(i)

		existing := map[string]int{}
		for j, m := range matches[key] {
			existing[m.Key()] = j
		}

		for _, db := range dbRecords {
			agreed := agreedTypes(in, db, types)
			if len(agreed) == 0 {
				continue
			}

			if j, ok := existing[db.Key()]; ok {
				matches[key][j].CompareTypes = mergeTypes(matches[key][j].CompareTypes, agreed)
				continue
			}
			matches[key] = append(matches[key], catalog.MatchEntry{
				Record:       db,
				CompareTypes: agreed,
			})
			added = append(added, newMatch{input: i, record: db, agreed: agreed})
		}
	}
	return added
}

// agreedTypes returns the comparison types on which both records carry
// equal invariant values. A type missing from either side does not agree.
func agreedTypes(a, b catalog.Record, types []string) []string {
	var agreed []string
	for _, t := range types {
		av, aok := a.Invariants[t]
		bv, bok := b.Invariants[t]
		if aok && bok && reflect.DeepEqual(av, bv) {
			agreed = append(agreed, t)
		}
	}
	return agreed
}

func mergeTypes(have, add []string) []string {
	seen := map[string]struct{}{}
	for _, t := range have {
		seen[t] = struct{}{}
	}
	for _, t := range add {
		if _, ok := seen[t]; !ok {
			have = append(have, t)
		}
	}
	return have
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	compareCmd.Flags().IntVar(&compareFieldN, "field-n", 0, "field dimension n")
	compareCmd.Flags().StringVar(&compareType, "type", "all", "invariant to compare on, or 'all'")

	rootCmd.AddCommand(compareCmd)
}
