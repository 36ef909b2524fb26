package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apncat/internal/catalog"
	"apncat/internal/gf"
	"apncat/internal/invariant"
	"apncat/internal/vbf"
	apnerr "apncat/pkg/errors"
)

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestFormatKV(t *testing.T) {
	assert.Equal(t, "{}", formatKV(nil))
	assert.Equal(t, "{}", formatKV(map[string]any{}))
	assert.Equal(t, "{alpha: 2, zeta: true}", formatKV(map[string]any{
		"zeta":  true,
		"alpha": 2,
	}))
}

func TestNonEmptyLines(t *testing.T) {
	lines := nonEmptyLines("3\n\n  \n0 1 3 4 5 6 7 2\n")
	assert.Equal(t, []string{"3", "0 1 3 4 5 6 7 2"}, lines)

	assert.Nil(t, nonEmptyLines(""))
	assert.Nil(t, nonEmptyLines("\n \n"))
}

func TestMergeTypes(t *testing.T) {
	assert.Equal(t, []string{"degree", "uniformity"},
		mergeTypes([]string{"degree"}, []string{"uniformity", "degree"}))
	assert.Equal(t, []string{"degree"}, mergeTypes(nil, []string{"degree"}))
}

func TestAgreedTypes(t *testing.T) {
	a := catalog.Record{Invariants: map[string]any{"degree": 2, "uniformity": 2}}
	b := catalog.Record{Invariants: map[string]any{"degree": 2, "uniformity": 4}}

	assert.Equal(t, []string{"degree"}, agreedTypes(a, b, []string{"degree", "uniformity"}))
	assert.Empty(t, agreedTypes(a, b, []string{"uniformity"}))
	// A type missing from one side never agrees.
	assert.Empty(t, agreedTypes(a, catalog.Record{}, []string{"degree"}))
}

func TestClassify(t *testing.T) {
	registry = invariant.NewRegistry()
	tables = vbf.NewTableCache()

	v, err := vbf.FromTruthTable([]uint32{0, 1, 3, 4, 5, 6, 7, 2}, 3, "", tables)
	require.NoError(t, err)

	rec, err := classify(v)
	require.NoError(t, err)

	assert.Equal(t, 3, rec.FieldN)
	assert.Equal(t, "x^3 + x + 1", rec.IrrPoly)
	assert.Equal(t, "x^3", rec.PolyStr)
	assert.Equal(t, true, rec.Properties["is_apn"])
	assert.Equal(t, 2, rec.Invariants["uniformity"])
	assert.Equal(t, 2, rec.Invariants["degree"])
}

func TestSummarize(t *testing.T) {
	rec := catalog.Record{
		FieldN:     3,
		IrrPoly:    "x^3 + x + 1",
		PolyStr:    "x^3",
		Properties: map[string]any{"is_apn": true},
		Invariants: map[string]any{"degree": 2},
	}

	s := summarize(rec, "INPUT 0")
	assert.Contains(t, s, "INPUT 0 -> GF(2^3), irreducible_poly='x^3 + x + 1'")
	assert.Contains(t, s, "Univariate polynomial representation: x^3")
	assert.Contains(t, s, "Properties: {is_apn: true}")
	assert.Contains(t, s, "Invariants: {degree: 2}")
}

func TestWorkflowAddStoreCompare(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	home := t.TempDir()

	// Add the cube map over GF(2^3) from its truth table.
	err := runCLI(t, "--home", home, "-o", "json",
		"add", "--field-n", "3", "--tt", "0 1 3 4 5 6 7 2")
	require.NoError(t, err)

	inputs, err := catalog.NewStore(home).LoadInput()
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, "x^3", inputs[0].PolyStr)
	assert.Equal(t, true, inputs[0].Properties["is_apn"])

	// Store it, then store again: the second pass is all duplicates.
	require.NoError(t, runCLI(t, "--home", home, "-o", "json", "db", "store"))
	db, err := catalog.NewStore(home).LoadDB(3)
	require.NoError(t, err)
	require.Len(t, db, 1)

	require.NoError(t, runCLI(t, "--home", home, "-o", "json", "db", "store"))
	db, err = catalog.NewStore(home).LoadDB(3)
	require.NoError(t, err)
	assert.Len(t, db, 1, "re-storing the same input must not grow the database")

	// The input matches its own database entry on every invariant.
	require.NoError(t, runCLI(t, "--home", home, "-o", "json", "compare", "--field-n", "3"))
	matches, err := catalog.NewStore(home).LoadMatches()
	require.NoError(t, err)
	require.Len(t, matches["0"], 1)
	assert.ElementsMatch(t, []string{"degree", "uniformity"}, matches["0"][0].CompareTypes)

	// A second comparison finds nothing new and leaves the list alone.
	require.NoError(t, runCLI(t, "--home", home, "-o", "json", "compare", "--field-n", "3"))
	matches, err = catalog.NewStore(home).LoadMatches()
	require.NoError(t, err)
	require.Len(t, matches["0"], 1)

	// print and db read succeed with content present.
	require.NoError(t, runCLI(t, "--home", home, "-o", "json", "print"))
	require.NoError(t, runCLI(t, "--home", home, "-o", "json", "db", "read", "--field-n", "3"))
}

func TestAddDuplicateRejected(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	home := t.TempDir()

	err := runCLI(t, "--home", home, "-o", "json",
		"add", "--field-n", "3", "--tt", "0 1 3 4 5 6 7 2")
	require.NoError(t, err)

	err = runCLI(t, "--home", home, "-o", "json",
		"add", "--field-n", "3", "--tt", "0 1 3 4 5 6 7 2")
	require.Error(t, err)
	assert.True(t, apnerr.Is(err, apnerr.ErrDuplicateFunction), "got %v", err)

	inputs, err := catalog.NewStore(home).LoadInput()
	require.NoError(t, err)
	assert.Len(t, inputs, 1, "rejected add must not grow the input list")
}

func TestFoldMatchesSecondRunAddsNothing(t *testing.T) {
	rec := catalog.Record{
		FieldN:     3,
		IrrPoly:    "x^3 + x + 1",
		Poly:       []gf.Term{{CoeffExp: 0, MonExp: 3}},
		PolyStr:    "x^3",
		Invariants: map[string]any{"degree": 2, "uniformity": 2},
	}
	matches := catalog.Matches{}
	types := []string{"degree", "uniformity"}

	added := foldMatches([]catalog.Record{rec}, []catalog.Record{rec}, 3, types, matches)
	require.Len(t, added, 1)
	assert.Equal(t, 0, added[0].input)
	assert.ElementsMatch(t, types, added[0].agreed)

	added = foldMatches([]catalog.Record{rec}, []catalog.Record{rec}, 3, types, matches)
	assert.Empty(t, added, "already recorded matches are not reported again")
	require.Len(t, matches["0"], 1)
	assert.ElementsMatch(t, types, matches["0"][0].CompareTypes)
}

func TestInvalidConfigFileFailsLoudly(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("{{not yaml"), 0o600))

	err := runCLI(t, "--home", home, "-o", "json", "defaults")
	require.Error(t, err)
	assert.True(t, apnerr.Is(err, apnerr.ErrConfigInvalid), "got %v", err)
}

func TestDBReadMissingDimension(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	home := t.TempDir()

	err := runCLI(t, "--home", home, "-o", "json", "db", "read", "--field-n", "9")
	require.Error(t, err)
	assert.True(t, apnerr.Is(err, apnerr.ErrCatalogNotFound))
	assert.Equal(t, apnerr.ExitNotFound, ExitCode(err))
}

func TestPrintEmptyInputList(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	home := t.TempDir()

	err := runCLI(t, "--home", home, "-o", "json", "print")
	require.Error(t, err)
	assert.True(t, apnerr.Is(err, apnerr.ErrEmptyInputList))
}

func TestCompareUnknownType(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	home := t.TempDir()

	err := runCLI(t, "--home", home, "-o", "json",
		"compare", "--field-n", "3", "--type", "uniformty")
	require.Error(t, err)
	assert.True(t, apnerr.Is(err, apnerr.ErrUnknownInvariant))
}

func TestBulkImport(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	home := t.TempDir()
	dir := t.TempDir()

	inPath := filepath.Join(dir, "cands.tt.txt")
	outPath := filepath.Join(dir, "cands.apn.txt")
	content := "3\n0 1 3 4 5 6 7 2\n0 0 0 0 0 0 0 0\n0 1 2 3 4 5 6 7\n"
	require.NoError(t, os.WriteFile(inPath, []byte(content), 0o640))

	err := runCLI(t, "--home", home, "-o", "json", "bulk-import", inPath, "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath) // #nosec G304 -- test temp file
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	// Output order matches input order.
	assert.Equal(t, []string{"x^3", "0", "x"}, lines)
}

func TestBulkImportRejectsOversizedDimension(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	home := t.TempDir()
	dir := t.TempDir()

	inPath := filepath.Join(dir, "huge.tt.txt")
	require.NoError(t, os.WriteFile(inPath, []byte("14\n0 1\n"), 0o640))

	err := runCLI(t, "--home", home, "-o", "json", "bulk-import", inPath)
	require.Error(t, err)
	assert.True(t, apnerr.Is(err, apnerr.ErrInvalidDimension))
}

func TestAddFromFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	home := t.TempDir()
	dir := t.TempDir()

	ttPath := filepath.Join(dir, "identity.tt")
	require.NoError(t, os.WriteFile(ttPath, []byte("3\n0 1 2 3 4 5 6 7\n"), 0o640))

	err := runCLI(t, "--home", home, "-o", "json", "add", "--tt-file", ttPath)
	require.NoError(t, err)

	inputs, err := catalog.NewStore(home).LoadInput()
	require.NoError(t, err)
	require.NotEmpty(t, inputs)
	assert.Equal(t, "x", inputs[len(inputs)-1].PolyStr)
}
