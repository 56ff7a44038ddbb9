package quill

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

// SetClause is one assignment of a partial update: the plain column name,
// the bindable value, and whether the caller actually provided the field.
// Clauses arrive in field-declaration order and are bound in that order.
type SetClause struct {
	Column  string
	Value   any
	Present bool
}

// ExecUpdate builds and executes a single parameterized partial update:
//
//	UPDATE <table> SET <c1> = $1, ... WHERE <id> = $n RETURNING <aliased all>
//
// Only clauses whose field left the unset state are included, so fields the
// caller never touched keep their stored values. The identifier is bound
// last. The statement is one atomic round trip against db; cancellation of
// ctx cancels the in-flight statement with no partial-write risk, and no
// retry happens here.
func ExecUpdate[T Emptier](ctx context.Context, db Executor, group Group[T], idColumn string, id any, clauses []SetClause) (T, error) {
	var zero T
	table := group.Naming.Table()

	builder := squirrel.Update(table).PlaceholderFormat(squirrel.Dollar)

	included := 0
	for _, clause := range clauses {
		if !clause.Present {
			continue
		}
		builder = builder.Set(clause.Column, clause.Value)
		included++
	}

	if included == 0 {
		return zero, &Error{Op: "update", Table: table, Err: ErrEmptyUpdate}
	}

	builder = builder.
		Where(squirrel.Eq{idColumn: id}).
		Suffix("RETURNING " + group.Naming.AllAliased())

	query, args, err := builder.ToSql()
	if err != nil {
		return zero, &Error{Op: "update", Table: table, Err: err}
	}

	row, err := RowOf(db.QueryRowxContext(ctx, query, args...))
	if err != nil {
		return zero, ParsePostgresError(err, "update", table)
	}

	return group.Result(row, nil)
}

// ArrayValue adapts a wrapped slice field for binding: a present slice binds
// through pq.Array, both empty states bind SQL NULL.
func ArrayValue[T any](n Null[[]T]) any {
	if v, ok := n.Get(); ok {
		return pq.Array(v)
	}
	return nil
}
