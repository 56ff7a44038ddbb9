package generator

import (
	"regexp"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/quillsql/quill/internal/parser"
	"github.com/quillsql/quill/pkg/quill"
)

// ColumnSchema is one attributed field with its four naming projections
// resolved. Projections are computed once, from the same ordered field list
// the parsers and the update builder consume, which is what keeps them
// mutually consistent.
type ColumnSchema struct {
	GoName      string // Go field name, e.g. CreatedAt
	Column      string // plain form, e.g. created_at
	Inner       string // inner type, unwrapped from the Null wrapper
	NullWrapped bool
	IsID        bool

	Tabled  string // users.created_at
	Renamed string // users_created_at
	Aliased string // users.created_at AS users_created_at
}

// AliasColumn is a column projected under one join alias.
type AliasColumn struct {
	GoName      string
	Column      string
	Inner       string
	NullWrapped bool

	Renamed string // owner_created_at
	Aliased string // users.created_at AS owner_created_at
}

// AliasSchema is one declared join alias with its scoped projection.
type AliasSchema struct {
	Name       string // owner
	Pascal     string // Owner
	Columns    []AliasColumn
	AllAliased string
}

// EntitySchema is the compiled, immutable description of one entity. It is
// derived once per entity and feeds every emission pass.
type EntitySchema struct {
	Package  string
	Name     string // struct name, e.g. User
	Snake    string // user, used for output file names
	Receiver string // receiver identifier in emitted methods
	Table    string

	Columns       []ColumnSchema // attributed fields, declaration order
	UpdateColumns []ColumnSchema // non-identifier attributed fields
	ID            *ColumnSchema

	Aliases []AliasSchema

	// Imports are the packages the inner field types reference, resolved
	// from their qualifiers (e.g. time.Time needs "time").
	Imports []string

	AllPlain   string
	AllTabled  string
	AllRenamed string
	AllAliased string
}

// idColumn is the conventional identifier column name. The identifier field
// is excluded from the update field set and bound last in the statement.
const idColumn = "id"

// BuildSchema resolves an introspected entity definition into its compiled
// schema. The naming algorithm is the runtime one from pkg/quill, so the
// constants quill emits and the projections the runtime rebuilds can never
// drift apart.
func BuildSchema(pkg string, def parser.EntityDefinition) *EntitySchema {
	attributed := def.AttributedFields()

	columns := make([]string, 0, len(attributed))
	for _, f := range attributed {
		columns = append(columns, f.Column)
	}
	naming := quill.BuildNaming(def.TableName, columns)

	schema := &EntitySchema{
		Package:    pkg,
		Name:       def.StructName,
		Snake:      strcase.ToSnake(def.StructName),
		Receiver:   strings.ToLower(def.StructName[:1]),
		Table:      def.TableName,
		AllPlain:   naming.AllPlain(),
		AllTabled:  naming.AllTabled(),
		AllRenamed: naming.AllRenamed(),
		AllAliased: naming.AllAliased(),
	}

	for _, f := range attributed {
		col := ColumnSchema{
			GoName:      f.Name,
			Column:      f.Column,
			Inner:       f.InnerType,
			NullWrapped: f.IsNullWrapped,
			IsID:        f.Column == idColumn,
			Tabled:      naming.Tabled(f.Column),
			Renamed:     naming.Renamed(f.Column),
			Aliased:     naming.Aliased(f.Column),
		}
		schema.Columns = append(schema.Columns, col)

		if col.IsID {
			id := col
			schema.ID = &id
		} else {
			schema.UpdateColumns = append(schema.UpdateColumns, col)
		}
	}

	schema.Imports = collectImports(schema.Columns)

	for _, alias := range def.Aliases {
		scoped := naming.Scoped(alias)
		group := AliasSchema{
			Name:       alias,
			Pascal:     strcase.ToCamel(alias),
			AllAliased: scoped.AllAliased(),
		}
		for _, col := range schema.Columns {
			group.Columns = append(group.Columns, AliasColumn{
				GoName:      col.GoName,
				Column:      col.Column,
				Inner:       col.Inner,
				NullWrapped: col.NullWrapped,
				Renamed:     scoped.Renamed(col.Column),
				Aliased:     scoped.Aliased(col.Column),
			})
		}
		schema.Aliases = append(schema.Aliases, group)
	}

	return schema
}

// importsByQualifier maps the type qualifiers quill understands onto their
// import paths. Types from the models package itself need no entry.
var importsByQualifier = map[string]string{
	"time": "time",
	"json": "encoding/json",
	"sql":  "database/sql",
	"uuid": "github.com/google/uuid",
}

var qualifierPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\.`)

func collectImports(columns []ColumnSchema) []string {
	seen := make(map[string]bool)
	for _, col := range columns {
		for _, match := range qualifierPattern.FindAllStringSubmatch(col.Inner, -1) {
			if path, ok := importsByQualifier[match[1]]; ok {
				seen[path] = true
			}
		}
	}

	imports := make([]string, 0, len(seen))
	for path := range seen {
		imports = append(imports, path)
	}
	sort.Strings(imports)
	return imports
}

// ColumnNames returns the plain column names in declaration order.
func (s *EntitySchema) ColumnNames() []string {
	names := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		names = append(names, c.Column)
	}
	return names
}

// HasClearable reports whether any attributed field carries the Null
// wrapper; entities without one get no clearers and no ClearAll.
func (s *EntitySchema) HasClearable() bool {
	for _, c := range s.Columns {
		if c.NullWrapped {
			return true
		}
	}
	return false
}

// HasInsertID reports whether the entity gets a SetInsertID accessor:
// identifier generation only applies to a wrapped string id.
func (s *EntitySchema) HasInsertID() bool {
	return s.ID != nil && s.ID.NullWrapped && s.ID.Inner == "string"
}

// AccessorsNeedQuill reports whether the accessors file references the
// runtime package.
func (s *EntitySchema) AccessorsNeedQuill() bool {
	return s.HasClearable() || s.HasInsertID()
}
