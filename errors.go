// Package dlsql ties together the sub-packages that make up the SQL-to-IR
// compiler and DML dispatch runtime: ir (the typed intermediate
// representation), compiler (SQL DDL -> ir translation), sqlast (the two
// SQL dialects' AST and parsers), catalog (table metadata), codec (value
// conversion), engine (the deductive-engine contract), runtime (the
// transactional DML dispatcher), and client (the JDBC-shaped boundary).
//
// This file carries the repo-wide sentinel errors and tagged error types.
// Every error category follows the same convention: a sentinel `Err*` var
// for errors.Is, a struct type implementing Error/Unwrap/Is for attaching
// context, and an `IsXxx` helper.
package dlsql

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTable is returned when a statement references a table or
	// view not present in the catalog.
	ErrUnknownTable = errors.New("dlsql: unknown table")

	// ErrUnknownColumn is returned when a statement references a column
	// that does not exist on the resolved table.
	ErrUnknownColumn = errors.New("dlsql: unknown column")

	// ErrUnsupportedConstruct is returned when a statement is syntactically
	// valid but falls outside the supported grammar subset.
	ErrUnsupportedConstruct = errors.New("dlsql: unsupported construct")

	// ErrInvariantViolation is returned when the engine reports a shape
	// this core's invariants forbid (e.g. a DeleteKey change notification).
	ErrInvariantViolation = errors.New("dlsql: invariant violation")

	// ErrRollbackFailed is returned when a rollback triggered by another
	// failure itself fails; this is fatal to the dispatcher.
	ErrRollbackFailed = errors.New("dlsql: rollback failed")
)

// UnknownTableError carries the offending table name.
type UnknownTableError struct {
	Name string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("dlsql: unknown table %q", e.Name)
}

func (e *UnknownTableError) Is(target error) bool { return target == ErrUnknownTable }

// NewUnknownTableError returns a new UnknownTableError for name.
func NewUnknownTableError(name string) *UnknownTableError {
	return &UnknownTableError{Name: name}
}

// IsUnknownTable reports whether err is (or wraps) an UnknownTableError.
func IsUnknownTable(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownTableError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownTable)
}

// UnknownColumnError carries the offending table and column name.
type UnknownColumnError struct {
	Table  string
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("dlsql: unknown column %q on table %q", e.Column, e.Table)
}

func (e *UnknownColumnError) Is(target error) bool { return target == ErrUnknownColumn }

// NewUnknownColumnError returns a new UnknownColumnError.
func NewUnknownColumnError(table, column string) *UnknownColumnError {
	return &UnknownColumnError{Table: table, Column: column}
}

// IsUnknownColumn reports whether err is (or wraps) an UnknownColumnError.
func IsUnknownColumn(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownColumnError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownColumn)
}

// UnsupportedConstructError names the SQL construct a statement used that
// this core's grammar subset does not support.
type UnsupportedConstructError struct {
	Construct string
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("dlsql: unsupported construct: %s", e.Construct)
}

func (e *UnsupportedConstructError) Is(target error) bool { return target == ErrUnsupportedConstruct }

// NewUnsupportedConstructError returns a new UnsupportedConstructError.
func NewUnsupportedConstructError(construct string) *UnsupportedConstructError {
	return &UnsupportedConstructError{Construct: construct}
}

// IsUnsupportedConstruct reports whether err is (or wraps) an
// UnsupportedConstructError.
func IsUnsupportedConstruct(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedConstructError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupportedConstruct)
}

// RollbackError wraps the original failure together with the error the
// subsequent rollback attempt raised. Producing this value is fatal: the
// dispatcher must not continue serving requests afterward.
type RollbackError struct {
	Cause         error
	RollbackCause error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("dlsql: rollback failed after %v: %v", e.Cause, e.RollbackCause)
}

func (e *RollbackError) Unwrap() error { return e.RollbackCause }

func (e *RollbackError) Is(target error) bool { return target == ErrRollbackFailed }

// NewRollbackError returns a new RollbackError.
func NewRollbackError(cause, rollbackCause error) *RollbackError {
	return &RollbackError{Cause: cause, RollbackCause: rollbackCause}
}

// IsRollbackFailed reports whether err is (or wraps) a RollbackError.
func IsRollbackFailed(err error) bool {
	if err == nil {
		return false
	}
	var e *RollbackError
	return errors.As(err, &e) || errors.Is(err, ErrRollbackFailed)
}
