// Package invariant defines the interface between the catalog and the
// invariant computations that classify a function: every computer consumes
// a truth table plus the dimension and returns a value. The heavy
// invariants (rank measures, spectra) and the equivalence tests plug in
// through the same registry; the built-ins here are the cheap ones the
// catalog itself needs.
package invariant

import (
	"math"
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"

	apnerr "apncat/pkg/errors"
)

// Computer computes one invariant of a vectorial Boolean function.
type Computer interface {
	// Name is the registry key, lower-case.
	Name() string

	// Compute consumes the truth table and dimension and returns the
	// invariant value. Implementations must not retain or mutate tt.
	Compute(tt []uint32, n int) (any, error)
}

// Registry maps invariant names to computers.
type Registry struct {
	mu        sync.RWMutex
	computers map[string]Computer
}

// NewRegistry creates a registry preloaded with the built-in computers.
func NewRegistry() *Registry {
	r := &Registry{computers: make(map[string]Computer)}
	r.Register(DifferentialUniformity{})
	r.Register(AlgebraicDegree{})
	return r
}

// Register adds a computer under its name, replacing any previous entry.
func (r *Registry) Register(c Computer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.computers[c.Name()] = c
}

// Get returns the computer for name. An unknown name yields an error
// carrying the closest registered name as a suggestion.
func (r *Registry) Get(name string) (Computer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.computers[name]; ok {
		return c, nil
	}

	err := apnerr.WithDetails(apnerr.ErrUnknownInvariant, map[string]string{
		"name": name,
	})
	if s := r.closest(name); s != "" {
		err = apnerr.WithSuggestion(err, "did you mean '"+s+"'?")
	}
	return nil, err
}

// Names returns the registered invariant names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.computers))
	for name := range r.computers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// closest finds the registered name nearest to input by edit distance.
// Callers must hold at least the read lock.
func (r *Registry) closest(input string) string {
	minDist := math.MaxInt
	var suggestion string
	for name := range r.computers {
		dist := levenshtein.ComputeDistance(input, name)
		if dist < minDist {
			minDist = dist
			suggestion = name
		}
	}
	return suggestion
}
