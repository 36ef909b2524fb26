package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	apnerr "apncat/pkg/errors"
)

const (
	// filePermissions is the permission mode for catalog files.
	filePermissions = 0o640

	// dirPermissions is the permission mode for catalog directories.
	dirPermissions = 0o750

	inputFile   = "input.json"
	matchesFile = "matches.json"
	dbDir       = "db"
)

// Store persists catalog state under one root directory.
type Store struct {
	root string
}

// NewStore creates a store rooted at dir. Nothing is created until the
// first save.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// DBPath returns the database file for dimension n.
func (s *Store) DBPath(n int) string {
	return filepath.Join(s.root, dbDir, fmt.Sprintf("gf2_%d.json", n))
}

func (s *Store) inputPath() string {
	return filepath.Join(s.root, inputFile)
}

func (s *Store) matchesPath() string {
	return filepath.Join(s.root, matchesFile)
}

// LoadDB reads the per-dimension database. A missing file is an empty
// database, not an error.
func (s *Store) LoadDB(n int) ([]Record, error) {
	var records []Record
	if err := s.loadJSON(s.DBPath(n), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// AppendDB adds records to the dimension-n database, skipping any whose
// key (dimension, modulus, canonical term list) is already present.
// Returns how many were added and how many were skipped as duplicates.
func (s *Store) AppendDB(n int, records []Record) (added, skipped int, err error) {
	existing, err := s.LoadDB(n)
	if err != nil {
		return 0, 0, err
	}

	seen := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		seen[r.Key()] = struct{}{}
	}

	for _, r := range records {
		key := r.Key()
		if _, dup := seen[key]; dup {
			skipped++
			continue
		}
		seen[key] = struct{}{}
		existing = append(existing, r)
		added++
	}

	if added > 0 {
		if err := s.saveJSON(s.DBPath(n), existing); err != nil {
			return 0, 0, err
		}
	}
	return added, skipped, nil
}

// ResetDB removes the dimension-n database file.
func (s *Store) ResetDB(n int) error {
	return removeIfExists(s.DBPath(n))
}

// LoadInput reads the working input list. Missing file means empty list.
func (s *Store) LoadInput() ([]Record, error) {
	var records []Record
	if err := s.loadJSON(s.inputPath(), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveInput writes the working input list.
func (s *Store) SaveInput(records []Record) error {
	return s.saveJSON(s.inputPath(), records)
}

// ResetInput removes the input list.
func (s *Store) ResetInput() error {
	return removeIfExists(s.inputPath())
}

// MatchEntry is one database function matched against an input function,
// with the comparison types that agreed.
type MatchEntry struct {
	Record
	CompareTypes []string `json:"compare_types"`
}

// Matches maps input-list indexes (as decimal strings, the JSON object key
// form) to their matching database entries.
type Matches map[string][]MatchEntry

// LoadMatches reads the match list. Missing file means no matches yet.
func (s *Store) LoadMatches() (Matches, error) {
	m := Matches{}
	if err := s.loadJSON(s.matchesPath(), &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = Matches{}
	}
	return m, nil
}

// SaveMatches writes the match list.
func (s *Store) SaveMatches(m Matches) error {
	return s.saveJSON(s.matchesPath(), m)
}

// ResetMatches removes the match list.
func (s *Store) ResetMatches() error {
	return removeIfExists(s.matchesPath())
}

// loadJSON reads path into v. A missing file leaves v untouched. A file
// that fails to parse is moved aside with a timestamped suffix so the data
// survives for inspection, and the load reports CATALOG_CORRUPTED.
func (s *Store) loadJSON(path string, v any) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path is derived from the configured home dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return apnerr.Wrap(err, "reading %s", path)
	}

	if err := json.Unmarshal(data, v); err != nil {
		corruptPath := fmt.Sprintf("%s.corrupt.%d", path, time.Now().UTC().UnixNano())
		if renameErr := os.Rename(path, corruptPath); renameErr != nil {
			return apnerr.Wrap(err, "parsing %s (quarantine also failed: %v)", path, renameErr)
		}
		return apnerr.WithDetails(apnerr.ErrCatalogCorrupted, map[string]string{
			"file":     path,
			"moved_to": corruptPath,
		})
	}
	return nil
}

// saveJSON writes v to path as indented JSON, creating directories as
// needed.
func (s *Store) saveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return apnerr.Wrap(err, "creating catalog directory")
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apnerr.Wrap(err, "marshaling %s", path)
	}

	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return apnerr.Wrap(err, "writing %s", path)
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return apnerr.Wrap(err, "removing %s", path)
	}
	return nil
}
