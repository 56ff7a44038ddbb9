package quill

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors surfaced by the runtime.
var (
	ErrNotFound         = errors.New("record not found")
	ErrEmptyUpdate      = errors.New("no populated fields to update")
	ErrDuplicateKey     = errors.New("duplicate key violation")
	ErrForeignKey       = errors.New("foreign key violation")
	ErrCheckConstraint  = errors.New("check constraint violation")
	ErrNotNull          = errors.New("not null constraint violation")
	ErrConnectionFailed = errors.New("database connection failed")
	ErrCanceled         = errors.New("operation canceled")
)

// Error carries the operation and table context a query failure happened in.
type Error struct {
	Op         string // operation that failed, e.g. "update"
	Table      string // table involved
	Err        error  // underlying error
	Constraint string // constraint name, when the driver reported one
	Column     string // column name, when the driver reported one
}

func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("quill: %s", e.Op)}

	if e.Table != "" {
		parts = append(parts, fmt.Sprintf("table=%s", e.Table))
	}
	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column=%s", e.Column))
	}
	if e.Constraint != "" {
		parts = append(parts, fmt.Sprintf("constraint=%s", e.Constraint))
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches either the wrapped sentinel or another *Error with the same Op.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return errors.Is(e.Err, target)
	}
	if t.Op != "" && e.Op == t.Op {
		return true
	}
	return errors.Is(e.Err, t.Err)
}

// NotFound builds the typed not-found failure for a table, raised when a
// fetch failed with no rows or the parsed entity is structurally empty.
func NotFound(table string) error {
	return &Error{
		Op:    "fetch",
		Table: table,
		Err:   fmt.Errorf("no matching record(s) found in %s table: %w", table, ErrNotFound),
	}
}

// ParsePostgresError classifies a driver failure into a typed query error.
// No retry decision is made here; the caller propagates it unrecovered.
func ParsePostgresError(err error, op, table string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return NotFound(table)
	}

	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "duplicate key value violates unique constraint"):
		return &Error{Op: op, Table: table, Err: ErrDuplicateKey, Constraint: extractConstraintName(errStr)}

	case strings.Contains(errStr, "violates foreign key constraint"):
		return &Error{Op: op, Table: table, Err: ErrForeignKey, Constraint: extractConstraintName(errStr)}

	case strings.Contains(errStr, "violates not-null constraint"):
		return &Error{Op: op, Table: table, Err: ErrNotNull, Column: extractColumnName(errStr)}

	case strings.Contains(errStr, "violates check constraint"):
		return &Error{Op: op, Table: table, Err: ErrCheckConstraint, Constraint: extractConstraintName(errStr)}

	case strings.Contains(errStr, "context canceled"):
		return &Error{Op: op, Table: table, Err: ErrCanceled}

	case strings.Contains(errStr, "connection refused"),
		strings.Contains(errStr, "connection reset"),
		strings.Contains(errStr, "broken pipe"):
		return &Error{Op: op, Table: table, Err: ErrConnectionFailed}
	}

	return &Error{Op: op, Table: table, Err: err}
}

func extractConstraintName(errStr string) string {
	start := strings.Index(errStr, "\"")
	if start == -1 {
		return ""
	}
	end := strings.Index(errStr[start+1:], "\"")
	if end == -1 {
		return ""
	}
	return errStr[start+1 : start+1+end]
}

func extractColumnName(errStr string) string {
	columnIdx := strings.Index(errStr, "column \"")
	if columnIdx == -1 {
		return ""
	}
	start := columnIdx + len("column \"")
	end := strings.Index(errStr[start:], "\"")
	if end == -1 {
		return ""
	}
	return errStr[start : start+end]
}
