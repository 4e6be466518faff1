package compiler

import (
	"errors"
	"fmt"

	"github.com/dlsql/dlsql"
	"github.com/dlsql/dlsql/sqlast"
)

// TranslationError carries the offending AST node and compilation stage
// alongside the underlying sentinel error, so a translation failure
// always carries enough context for diagnostics, following the root
// package's tagged-error convention.
type TranslationError struct {
	Stage string
	Node  sqlast.Node
	Err   error
}

func (e *TranslationError) Error() string {
	if e.Node != nil {
		return fmt.Sprintf("compiler: %s at %s: %v", e.Stage, e.Node.Pos(), e.Err)
	}
	return fmt.Sprintf("compiler: %s: %v", e.Stage, e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }

// newTranslationError wraps err with the node/stage context.
func newTranslationError(stage string, node sqlast.Node, err error) *TranslationError {
	return &TranslationError{Stage: stage, Node: node, Err: err}
}

// ErrUnknownType is returned when a DDL column declares a SQL type this
// core does not lower to an IR scalar.
var ErrUnknownType = errors.New("compiler: unknown SQL type")

// ErrDuplicateName is returned when an emitted type-def, relation, table
// or view name is already registered. The counter-based generators in
// names.go never repeat a fresh name, so for compiler-issued names this
// marks a name-generation bug; a DDL list that declares the same table or
// view name twice also reaches it.
var ErrDuplicateName = errors.New("compiler: duplicate emitted name")

// ErrDuplicateProjectionName is returned when two SELECT items in one
// projection resolve to the same field name.
var ErrDuplicateProjectionName = errors.New("compiler: duplicate projection column name")

// IsUnsupportedConstruct reports whether err is a translation failure
// naming an unsupported SQL construct.
func IsUnsupportedConstruct(err error) bool {
	return dlsql.IsUnsupportedConstruct(err)
}
