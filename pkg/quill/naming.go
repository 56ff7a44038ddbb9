package quill

import "strings"

// NamingTable holds the four column projections for one table, plus the
// alias-scoped variants derived from it. It is built once during schema
// compilation and never mutated afterwards; the joined "all columns" strings
// are precomputed alongside the per-column maps.
//
// For table T and column p (already snake_case):
//
//	Plain   p
//	Tabled  T.p
//	Renamed T_p
//	Aliased T.p AS T_p
//
// A table scoped to alias A substitutes A for T in the Renamed and Aliased
// forms while the qualification stays on the real table. Duplicate column
// names, or an alias equal to the table name, are documented invariants the
// generator enforces before a NamingTable is ever built.
type NamingTable struct {
	table   string
	scope   string
	columns []string

	plain   map[string]string
	tabled  map[string]string
	renamed map[string]string
	aliased map[string]string

	allPlain   string
	allTabled  string
	allRenamed string
	allAliased string
}

// BuildNaming constructs the base naming table for a table and its ordered
// attributed column names.
func BuildNaming(table string, columns []string) NamingTable {
	return buildScoped(table, table, columns)
}

// Scoped returns the projection of the table under a join alias. Column
// order is preserved.
func (t NamingTable) Scoped(alias string) NamingTable {
	return buildScoped(t.table, alias, t.columns)
}

func buildScoped(table, scope string, columns []string) NamingTable {
	t := NamingTable{
		table:   table,
		scope:   scope,
		columns: append([]string(nil), columns...),
		plain:   make(map[string]string, len(columns)),
		tabled:  make(map[string]string, len(columns)),
		renamed: make(map[string]string, len(columns)),
		aliased: make(map[string]string, len(columns)),
	}

	plain := make([]string, 0, len(columns))
	tabled := make([]string, 0, len(columns))
	renamed := make([]string, 0, len(columns))
	aliased := make([]string, 0, len(columns))

	for _, col := range t.columns {
		qualified := table + "." + col
		disambiguated := scope + "_" + col
		selectExpr := qualified + " AS " + disambiguated

		t.plain[col] = col
		t.tabled[col] = qualified
		t.renamed[col] = disambiguated
		t.aliased[col] = selectExpr

		plain = append(plain, col)
		tabled = append(tabled, qualified)
		renamed = append(renamed, disambiguated)
		aliased = append(aliased, selectExpr)
	}

	t.allPlain = strings.Join(plain, ", ")
	t.allTabled = strings.Join(tabled, ", ")
	t.allRenamed = strings.Join(renamed, ", ")
	t.allAliased = strings.Join(aliased, ", ")

	return t
}

// Table returns the table name the projections qualify against.
func (t NamingTable) Table() string { return t.table }

// Scope returns the alias the disambiguated forms are prefixed with. For the
// base table this equals Table.
func (t NamingTable) Scope() string { return t.scope }

// Columns returns the column names in field-declaration order.
func (t NamingTable) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Plain returns the unqualified column form.
func (t NamingTable) Plain(col string) string { return t.plain[col] }

// Tabled returns the table-qualified form.
func (t NamingTable) Tabled(col string) string { return t.tabled[col] }

// Renamed returns the disambiguated column alias used in multi-table
// SELECT lists and as the extraction key when parsing rows.
func (t NamingTable) Renamed(col string) string { return t.renamed[col] }

// Aliased returns the full select expression "qualified AS disambiguated".
func (t NamingTable) Aliased(col string) string { return t.aliased[col] }

// AllPlain returns the joined unqualified column list.
func (t NamingTable) AllPlain() string { return t.allPlain }

// AllTabled returns the joined table-qualified column list.
func (t NamingTable) AllTabled() string { return t.allTabled }

// AllRenamed returns the joined disambiguated column list.
func (t NamingTable) AllRenamed() string { return t.allRenamed }

// AllAliased returns the joined select-expression list, the usual RETURNING
// and SELECT projection for this table.
func (t NamingTable) AllAliased() string { return t.allAliased }
