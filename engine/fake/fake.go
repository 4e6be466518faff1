// Package fake provides an in-memory engine.Engine used by the runtime and
// client test suites and wired up by cmd/dlsqld as its default engine. It
// is not a model of any real deductive engine's internals.
package fake

import (
	"context"
	"fmt"
	"sync"

	"github.com/dlsql/dlsql/engine"
)

// Rule is a minimal head/body pair the fake engine evaluates on every
// commit: for every fact currently in Body's relation, Transform(fact) is
// added to Head unless Head already holds it. A fact already in Head is
// not removed when the Body fact it came from is deleted.
type Rule struct {
	Head      string
	Body      string
	Transform func(engine.Record) engine.Record
}

// Engine is a small in-memory engine.Engine: Input relations are sets of
// records mutated directly by ApplyUpdates; Output/Internal relations gain
// newly derived facts from Rules on every commit. It is single-threaded per
// transaction, matching the concurrency model the runtime assumes.
type Engine struct {
	mu      sync.Mutex
	nextID  int
	byName  map[string]int
	byID    map[int]string
	facts   map[int][]engine.Record // current committed state, by table id
	pending []engine.Command        // accumulated since TransactionStart
	inTx    bool
	rules   []Rule
}

// New returns an empty fake engine.
func New() *Engine {
	return &Engine{
		byName: make(map[string]int),
		byID:   make(map[int]string),
		facts:  make(map[int][]engine.Record),
	}
}

// Register assigns a table id to relationName if it doesn't have one yet,
// and returns that id. Tests and the DDL loader call this once per
// relation before the engine is used.
func (e *Engine) Register(relationName string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if id, ok := e.byName[relationName]; ok {
		return id
	}
	e.nextID++
	id := e.nextID
	e.byName[relationName] = id
	e.byID[id] = relationName
	return id
}

// AddRule registers a fake-engine evaluation rule.
func (e *Engine) AddRule(r Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, r)
}

func (e *Engine) GetTableID(_ context.Context, relationName string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id, ok := e.byName[relationName]
	if !ok {
		return 0, fmt.Errorf("fake: unknown relation %q", relationName)
	}
	return id, nil
}

func (e *Engine) GetTableName(_ context.Context, tableID int) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	name, ok := e.byID[tableID]
	if !ok {
		return "", fmt.Errorf("fake: unknown table id %d", tableID)
	}
	return name, nil
}

func (e *Engine) TransactionStart(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inTx {
		return fmt.Errorf("fake: transaction already started")
	}
	e.inTx = true
	e.pending = nil
	return nil
}

func (e *Engine) ApplyUpdates(_ context.Context, commands []engine.Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.inTx {
		return fmt.Errorf("fake: no transaction in progress")
	}
	e.pending = append(e.pending, commands...)
	return nil
}

func (e *Engine) TransactionRollback(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.inTx {
		return fmt.Errorf("fake: no transaction in progress")
	}
	e.inTx = false
	e.pending = nil
	return nil
}

func (e *Engine) TransactionCommitDumpChanges(_ context.Context, cb engine.ChangeCallback) error {
	e.mu.Lock()
	if !e.inTx {
		e.mu.Unlock()
		return fmt.Errorf("fake: no transaction in progress")
	}
	pending := e.pending
	e.pending = nil
	e.inTx = false

	var directChanges []engine.Change
	for _, cmd := range pending {
		switch cmd.Kind {
		case engine.Insert:
			e.facts[cmd.TableID] = append(e.facts[cmd.TableID], cmd.Record)
			directChanges = append(directChanges, engine.Change{Kind: engine.Insert, TableID: cmd.TableID, Record: cmd.Record})
		case engine.DeleteKey:
			e.deleteByKey(cmd.TableID, cmd.Record)
		case engine.DeleteVal:
			e.deleteByValue(cmd.TableID, cmd.Record)
			directChanges = append(directChanges, engine.Change{Kind: engine.DeleteVal, TableID: cmd.TableID, Record: cmd.Record})
		}
	}
	derived := e.rederiveLocked()
	e.mu.Unlock()

	for _, ch := range directChanges {
		if err := cb(ch); err != nil {
			return err
		}
	}
	for _, ch := range derived {
		if err := cb(ch); err != nil {
			return err
		}
	}
	return nil
}

// deleteByKey removes facts matching a DeleteKey's key record. The fake
// engine treats DeleteKey as "delete the only fact matching this key
// shape" by delegating to deleteByValue when the key record happens to be
// the whole fact (true for every table this core produces, since pk-only
// tables collapse key and value); composite-key tables are resolved by the
// caller building a matching Struct/Tuple before this is reached.
func (e *Engine) deleteByKey(tableID int, key engine.Record) {
	e.deleteByValue(tableID, key)
}

func (e *Engine) deleteByValue(tableID int, val engine.Record) {
	facts := e.facts[tableID]
	out := facts[:0]
	removed := false
	for _, f := range facts {
		if !removed && recordsEqual(f, val) {
			removed = true
			continue
		}
		out = append(out, f)
	}
	e.facts[tableID] = out
}

func (e *Engine) rederiveLocked() []engine.Change {
	var out []engine.Change
	for _, r := range e.rules {
		bodyID, ok := e.byName[r.Body]
		if !ok {
			continue
		}
		headID, ok := e.byName[r.Head]
		if !ok {
			continue
		}
		existing := e.facts[headID]
		for _, fact := range e.facts[bodyID] {
			derived := r.Transform(fact)
			if containsRecord(existing, derived) || containsRecord(out2Records(out, headID), derived) {
				continue
			}
			e.facts[headID] = append(e.facts[headID], derived)
			out = append(out, engine.Change{Kind: engine.Insert, TableID: headID, Record: derived})
		}
	}
	return out
}

func out2Records(changes []engine.Change, tableID int) []engine.Record {
	var out []engine.Record
	for _, c := range changes {
		if c.TableID == tableID {
			out = append(out, c.Record)
		}
	}
	return out
}

func containsRecord(rs []engine.Record, target engine.Record) bool {
	for _, r := range rs {
		if recordsEqual(r, target) {
			return true
		}
	}
	return false
}

// recordsEqual is a structural comparison good enough for this fake's
// purposes. The real materialized-view store (runtime/views.go) uses a
// msgpack-canonicalized byte comparison instead; this fake doesn't need
// that sophistication since it never persists beyond one process.
func recordsEqual(a, b engine.Record) bool {
	switch av := a.(type) {
	case engine.Bool:
		bv, ok := b.(engine.Bool)
		return ok && av == bv
	case engine.Int64:
		bv, ok := b.(engine.Int64)
		return ok && av == bv
	case engine.BigInt:
		bv, ok := b.(engine.BigInt)
		return ok && av.Int.Cmp(bv.Int) == 0
	case engine.Str:
		bv, ok := b.(engine.Str)
		return ok && av == bv
	case engine.Struct:
		bv, ok := b.(engine.Struct)
		if !ok || av.Tag != bv.Tag || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if av.Fields[i].Name != bv.Fields[i].Name || !recordsEqual(av.Fields[i].Value, bv.Fields[i].Value) {
				return false
			}
		}
		return true
	case engine.Tuple:
		bv, ok := b.(engine.Tuple)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !recordsEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Snapshot returns a copy of the current committed facts for tableID, for
// assertions in tests.
func (e *Engine) Snapshot(tableID int) []engine.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]engine.Record(nil), e.facts[tableID]...)
}
