package runtime

import (
	"errors"
	"fmt"

	"github.com/dlsql/dlsql"
	"github.com/dlsql/dlsql/engine"
)

// ErrMissingWhere is returned when a DELETE statement carries no WHERE
// clause; the sqlast parser already rejects this syntactically, but the
// dispatcher checks again so a future relaxation of the grammar can't
// silently reintroduce an unbounded delete.
var ErrMissingWhere = errors.New("runtime: DELETE requires a WHERE clause")

// ErrPrimaryKeyNotCovered is returned when a DELETE's WHERE equalities
// don't cover every primary-key column.
var ErrPrimaryKeyNotCovered = errors.New("runtime: WHERE clause does not cover every primary-key column")

// ErrArityMismatch is returned when an INSERT row's element count doesn't
// match the table's column count.
var ErrArityMismatch = errors.New("runtime: row arity does not match table's column count")

// ErrUnexpectedChangeKind is returned when the engine's commit-dump-
// changes stream reports a DeleteKey — an engine invariant violation,
// never a shape the runtime itself can recover from.
var ErrUnexpectedChangeKind = errors.New("runtime: unexpected change kind in commit stream")

// ArityMismatchError names the table and the expected/actual row widths.
type ArityMismatchError struct {
	Table string
	Want  int
	Got   int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("runtime: table %q expects %d columns, got %d", e.Table, e.Want, e.Got)
}

func (e *ArityMismatchError) Is(target error) bool { return target == ErrArityMismatch }

// IsArityMismatch reports whether err is (or wraps) an ArityMismatchError.
func IsArityMismatch(err error) bool {
	if err == nil {
		return false
	}
	var e *ArityMismatchError
	return errors.As(err, &e) || errors.Is(err, ErrArityMismatch)
}

// PrimaryKeyCoverageError names the table and the pk columns the WHERE
// clause left unbound.
type PrimaryKeyCoverageError struct {
	Table   string
	Missing []string
}

func (e *PrimaryKeyCoverageError) Error() string {
	return fmt.Sprintf("runtime: DELETE FROM %q does not cover primary-key columns %v", e.Table, e.Missing)
}

func (e *PrimaryKeyCoverageError) Is(target error) bool { return target == ErrPrimaryKeyNotCovered }

// IsPrimaryKeyNotCovered reports whether err is (or wraps) a
// PrimaryKeyCoverageError.
func IsPrimaryKeyNotCovered(err error) bool {
	if err == nil {
		return false
	}
	var e *PrimaryKeyCoverageError
	return errors.As(err, &e) || errors.Is(err, ErrPrimaryKeyNotCovered)
}

// UnexpectedChangeKindError carries the offending change kind.
type UnexpectedChangeKindError struct {
	Kind engine.CommandKind
}

func (e *UnexpectedChangeKindError) Error() string {
	return fmt.Sprintf("runtime: commit stream reported unexpected kind %s", e.Kind)
}

func (e *UnexpectedChangeKindError) Is(target error) bool {
	return target == ErrUnexpectedChangeKind || target == dlsql.ErrInvariantViolation
}

// IsUnexpectedChangeKind reports whether err is (or wraps) an
// UnexpectedChangeKindError.
func IsUnexpectedChangeKind(err error) bool {
	if err == nil {
		return false
	}
	var e *UnexpectedChangeKindError
	return errors.As(err, &e) || errors.Is(err, ErrUnexpectedChangeKind)
}

func newUnexpectedChangeKindError(k engine.CommandKind) *UnexpectedChangeKindError {
	return &UnexpectedChangeKindError{Kind: k}
}
