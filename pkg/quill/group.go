package quill

import "context"

// Emptier is implemented by generated entities; an entity equal to its
// all-unset default is considered structurally empty.
type Emptier interface {
	IsEmpty() bool
}

// Group bundles one naming projection with the parse routine keyed by its
// renamed columns. The base table and every declared join alias each get a
// Group, so a consumer of a multi-way join selects the correct parser by
// alias name.
type Group[T Emptier] struct {
	Naming NamingTable
	Parse  func(Row) T
}

// Result maps a fallible row fetch into a parsed entity. A fetch error
// becomes a typed query failure, and a parse that comes back structurally
// empty is treated as not-found as well.
func (g Group[T]) Result(row Row, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, ParsePostgresError(err, "fetch", g.Naming.Table())
	}

	parsed := g.Parse(row)
	if parsed.IsEmpty() {
		return zero, NotFound(g.Naming.Table())
	}
	return parsed, nil
}

// Relational maps a parse into an explicit present/absent wrapper, suitable
// for embedding as an optional related sub-object inside a parent entity.
func (g Group[T]) Relational(row Row) Null[T] {
	parsed := g.Parse(row)
	if parsed.IsEmpty() {
		return Undefined[T]()
	}
	return NullOf(parsed)
}

// Select runs query against db and parses every returned row through the
// group. Rows that come back structurally empty, as the unmatched side of an
// outer join does, are dropped rather than treated as failures.
func (g Group[T]) Select(ctx context.Context, db Executor, query string, args ...any) ([]T, error) {
	rows, err := db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, ParsePostgresError(err, "select", g.Naming.Table())
	}
	defer rows.Close()

	var parsed []T
	for rows.Next() {
		row, err := NextRow(rows)
		if err != nil {
			return nil, ParsePostgresError(err, "select", g.Naming.Table())
		}
		if entity := g.Parse(row); !entity.IsEmpty() {
			parsed = append(parsed, entity)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, ParsePostgresError(err, "select", g.Naming.Table())
	}

	return parsed, nil
}

// GroupSet is the per-entity registry mapping alias name to its group. It is
// built once by generated code and looked up by name at call sites.
type GroupSet[T Emptier] map[string]Group[T]

// Lookup returns the group registered under alias.
func (s GroupSet[T]) Lookup(alias string) (Group[T], bool) {
	g, ok := s[alias]
	return g, ok
}
