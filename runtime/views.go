// Package runtime is the transactional DML dispatcher: it accepts a batch
// of (sqlText, bindings) statements, submits engine commands inside a
// single transaction, and materializes the engine's post-commit change
// stream into per-table views that SELECT reads back.
package runtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/singleflight"

	"github.com/dlsql/dlsql/catalog"
)

// rowKey returns a stable byte-string key for row, used both as the
// ordered set's dedup key and as the structural-equality test DeleteVal
// requires: two decoded rows are equal iff their canonical msgpack
// encodings are equal.
func rowKey(row []any) (string, error) {
	b, err := msgpack.Marshal(row)
	if err != nil {
		return "", fmt.Errorf("runtime: encoding row key: %w", err)
	}
	return string(b), nil
}

// orderedRowSet is one table's materialized view: an insertion-ordered,
// dedup-by-structural-key set of decoded rows.
type orderedRowSet struct {
	order []string
	byKey map[string][]any
}

func newOrderedRowSet() *orderedRowSet {
	return &orderedRowSet{byKey: make(map[string][]any)}
}

func (s *orderedRowSet) insert(key string, row []any) {
	if _, exists := s.byKey[key]; exists {
		return
	}
	s.byKey[key] = row
	s.order = append(s.order, key)
}

func (s *orderedRowSet) remove(key string) {
	if _, exists := s.byKey[key]; !exists {
		return
	}
	delete(s.byKey, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// snapshot returns a copy of the currently-present rows in insertion
// order. Copying is what lets a
// concurrent reader observe a consistent view while a writer mutates the
// live set.
func (s *orderedRowSet) snapshot() [][]any {
	out := make([][]any, 0, len(s.order))
	for _, k := range s.order {
		if row, ok := s.byKey[k]; ok {
			out = append(out, row)
		}
	}
	return out
}

// ViewStore is the materialized-view container: per-table independent
// mutation, safe concurrent snapshot iteration, and
// insertion-order preservation within a table. Writers are serialized by
// the dispatcher's single-threaded-per-transaction change callback;
// singleflight collapses concurrent readers of the same table onto one
// snapshot copy rather than each reader copying independently.
//
// Table keys are canonicalized with catalog.CanonicalName — the same
// golang.org/x/text/cases.Upper canonicalizer the catalog itself uses —
// so a key computed here from a table name derived by the change-ingest
// path always agrees with one computed from a SELECT's table identifier.
type ViewStore struct {
	mu     sync.RWMutex
	tables map[string]*orderedRowSet
	group  singleflight.Group
}

// NewViewStore returns an empty view store.
func NewViewStore() *ViewStore {
	return &ViewStore{tables: make(map[string]*orderedRowSet)}
}

// Insert adds row to table's materialized view, keyed by its structural
// key.
func (vs *ViewStore) Insert(table, key string, row []any) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	name := catalog.CanonicalName(table)
	set, ok := vs.tables[name]
	if !ok {
		set = newOrderedRowSet()
		vs.tables[name] = set
	}
	set.insert(key, row)
}

// Remove deletes the row with the given structural key from table's view,
// if present.
func (vs *ViewStore) Remove(table, key string) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	if set, ok := vs.tables[catalog.CanonicalName(table)]; ok {
		set.remove(key)
	}
}

// Snapshot returns table's current rows in insertion order. Concurrent
// snapshots of the same table share one underlying copy via singleflight.
func (vs *ViewStore) Snapshot(ctx context.Context, table string) ([][]any, error) {
	key := catalog.CanonicalName(table)
	v, err, _ := vs.group.Do(key, func() (any, error) {
		vs.mu.RLock()
		defer vs.mu.RUnlock()
		set, ok := vs.tables[key]
		if !ok {
			return [][]any{}, nil
		}
		return set.snapshot(), nil
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return v.([][]any), nil
}
