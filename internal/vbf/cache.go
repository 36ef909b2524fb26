package vbf

import (
	"sync"

	"apncat/internal/gf"
)

// TableCache memoizes built gf.Tables per (n, modulus, generator) triple.
// Building a table set is O(4^n); the arithmetic engine deliberately holds
// no cache of its own, so any layer that converts repeatedly owns one of
// these.
//
// Safe for concurrent use. A table set is built at most once per
// descriptor; concurrent requesters for the same descriptor wait for the
// first build.
type TableCache struct {
	mu     sync.Mutex
	tables map[gf.FieldDescriptor]*entry
}

type entry struct {
	once   sync.Once
	tables *gf.Tables
	err    error
}

// NewTableCache creates an empty cache.
func NewTableCache() *TableCache {
	return &TableCache{tables: make(map[gf.FieldDescriptor]*entry)}
}

// Get returns the tables for the descriptor, building them on first use.
// Errors from BuildTables are cached too: an invalid descriptor stays
// invalid.
func (c *TableCache) Get(desc gf.FieldDescriptor) (*gf.Tables, error) {
	c.mu.Lock()
	e, ok := c.tables[desc]
	if !ok {
		e = &entry{}
		c.tables[desc] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.tables, e.err = gf.BuildTables(desc)
	})
	return e.tables, e.err
}

// Len returns the number of cached table sets.
func (c *TableCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tables)
}
