package compiler

import "fmt"

// globalNamer issues names from the global namespace (prefix `tmp`), used
// for emitted relation and type-def names. It is owned by Context and
// lives for the lifetime of a whole DDL-list translation: fresh-name
// uniqueness is monotonic for the lifetime of the context.
type globalNamer struct {
	seq int
}

func (g *globalNamer) fresh() string {
	g.seq++
	return fmt.Sprintf("tmp%d", g.seq)
}

// localNamer issues row-variable names (prefix `v`) and synthetic column
// names (prefix `col`) from the per-query local namespace. A fresh
// localNamer is created for each top-level query compilation, giving
// each query its own local naming space.
type localNamer struct {
	varSeq int
	colSeq int
}

func newLocalNamer() *localNamer { return &localNamer{} }

func (l *localNamer) freshVar() string {
	l.varSeq++
	return fmt.Sprintf("v%d", l.varSeq)
}

func (l *localNamer) freshCol() string {
	l.colSeq++
	return fmt.Sprintf("col%d", l.colSeq)
}
