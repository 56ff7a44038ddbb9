package parser

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/quillsql/quill/internal/logger"
)

// FieldDefinition is one introspected entity field, in declaration order.
type FieldDefinition struct {
	Name          string // Go field name
	Column        string // snake_case column name
	DeclaredType  string // type expression as written
	InnerType     string // unwrapped from the Null wrapper, if present
	IsNullWrapped bool   // declared as quill.Null[Inner]
	IsAttributed  bool   // participates in table storage and selection
}

// EntityDefinition is the introspected declaration of one entity.
type EntityDefinition struct {
	StructName string
	TableName  string
	Aliases    []string
	Fields     []FieldDefinition
}

// AttributedFields returns the fields carrying the column marker, in
// declaration order.
func (e EntityDefinition) AttributedFields() []FieldDefinition {
	var fields []FieldDefinition
	for _, f := range e.Fields {
		if f.IsAttributed {
			fields = append(fields, f)
		}
	}
	return fields
}

// StructParser extracts entity definitions from Go source declarations.
// The tag group it filters on is configurable; production callers use
// "quill".
type StructParser struct {
	fileSet   *token.FileSet
	tagParser *TagParser
	tagGroup  string
}

func NewStructParser(tagGroup string) *StructParser {
	return &StructParser{
		fileSet:   token.NewFileSet(),
		tagParser: NewTagParser(),
		tagGroup:  tagGroup,
	}
}

// ParseDirectory introspects every non-test Go file in dir. A structural
// error in one entity aborts that entity but not the others; all entity
// errors are joined into the returned error.
func (p *StructParser) ParseDirectory(dir string) ([]EntityDefinition, error) {
	pattern := filepath.Join(dir, "*.go")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob directory %s: %w", dir, err)
	}

	var entities []EntityDefinition
	var errs []error

	for _, file := range matches {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}

		parsed, err := p.ParseFile(file)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", file, err))
		}
		entities = append(entities, parsed...)
	}

	return entities, errors.Join(errs...)
}

// ParseFile introspects one Go source file.
func (p *StructParser) ParseFile(filename string) ([]EntityDefinition, error) {
	src, err := parser.ParseFile(p.fileSet, filename, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	var entities []EntityDefinition
	var errs []error

	ast.Inspect(src, func(n ast.Node) bool {
		spec, ok := n.(*ast.TypeSpec)
		if !ok {
			return true
		}
		structType, ok := spec.Type.(*ast.StructType)
		if !ok {
			return true
		}

		entity, err := p.parseStruct(spec.Name.Name, structType)
		if err != nil {
			errs = append(errs, fmt.Errorf("entity %s: %w", spec.Name.Name, err))
			return true
		}
		if p.isEntity(entity) {
			entities = append(entities, entity)
		}
		return true
	})

	return entities, errors.Join(errs...)
}

func (p *StructParser) parseStruct(structName string, structType *ast.StructType) (EntityDefinition, error) {
	entity := EntityDefinition{
		StructName: structName,
		TableName:  strcase.ToSnake(structName),
	}

	var errs []error
	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			continue
		}

		for _, name := range field.Names {
			if name.Name == "_" {
				p.applyTableLevel(&entity, field)
				continue
			}
			if !ast.IsExported(name.Name) {
				continue
			}

			def, err := p.parseField(structName, name.Name, field)
			if err != nil {
				// An unrenderable type is fatal only when quill is asked to
				// handle the field; plain helper structs stay out of the run.
				if p.extractTag(field) != "" {
					errs = append(errs, err)
				} else {
					logger.Parser().Debug("skipping unrenderable untagged field",
						"entity", structName, "field", name.Name, "error", err)
				}
				continue
			}
			entity.Fields = append(entity.Fields, def)
		}
	}

	return entity, errors.Join(errs...)
}

// applyTableLevel reads table rename and alias declarations from a blank
// field's tag. Malformed table-level attributes are recovered by keeping the
// derived defaults.
func (p *StructParser) applyTableLevel(entity *EntityDefinition, field *ast.Field) {
	tag := p.extractTag(field)
	if tag == "" {
		return
	}

	attrs, err := p.tagParser.Parse(tag)
	if err != nil {
		logger.Parser().Warn("malformed table attributes, using defaults",
			"entity", entity.StructName, "error", err)
		return
	}

	if table, ok := attrs["table"]; ok {
		entity.TableName = table
	}
	entity.Aliases = append(entity.Aliases, p.tagParser.Aliases(attrs)...)
}

// parseField introspects a single named field. An unrenderable type
// expression is a fatal structural error for the whole entity; a malformed
// quill tag only defaults this field's metadata.
func (p *StructParser) parseField(structName, fieldName string, field *ast.Field) (FieldDefinition, error) {
	declared := exprString(field.Type)
	if declared == "" {
		return FieldDefinition{}, fmt.Errorf("field %s: cannot parse type expression", fieldName)
	}

	def := FieldDefinition{
		Name:         fieldName,
		Column:       strcase.ToSnake(fieldName),
		DeclaredType: declared,
		InnerType:    declared,
	}

	if inner, ok := unwrapNull(field.Type); ok {
		def.InnerType = inner
		def.IsNullWrapped = true
	}

	tag := p.extractTag(field)
	if tag == "" {
		return def, nil
	}

	attrs, err := p.tagParser.Parse(tag)
	if err != nil {
		logger.Parser().Warn("malformed field attributes, defaulting metadata",
			"entity", structName, "field", fieldName, "error", err)
		return def, nil
	}

	def.IsAttributed = p.tagParser.HasFlag(attrs, "column")
	return def, nil
}

func (p *StructParser) extractTag(field *ast.Field) string {
	if field.Tag == nil {
		return ""
	}
	tagValue := strings.Trim(field.Tag.Value, "`")
	return reflect.StructTag(tagValue).Get(p.tagGroup)
}

// isEntity reports whether the struct declares anything in the quill tag
// group; plain utility structs are skipped.
func (p *StructParser) isEntity(entity EntityDefinition) bool {
	if entity.Aliases != nil {
		return true
	}
	for _, f := range entity.Fields {
		if f.IsAttributed {
			return true
		}
	}
	return false
}

// unwrapNull matches the single-level generic wrapper pattern
// quill.Null[Inner] (or a dot-imported Null[Inner]) and returns Inner.
func unwrapNull(expr ast.Expr) (string, bool) {
	idx, ok := expr.(*ast.IndexExpr)
	if !ok {
		return "", false
	}

	base := exprString(idx.X)
	if base != "quill.Null" && base != "Null" {
		return "", false
	}

	inner := exprString(idx.Index)
	if inner == "" {
		return "", false
	}
	return inner, true
}

// exprString renders a type expression back to compact source text. An
// empty result means the expression is not a type form quill understands.
func exprString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name

	case *ast.StarExpr:
		inner := exprString(t.X)
		if inner == "" {
			return ""
		}
		return "*" + inner

	case *ast.ArrayType:
		inner := exprString(t.Elt)
		if inner == "" {
			return ""
		}
		return "[]" + inner

	case *ast.SelectorExpr:
		pkg := exprString(t.X)
		if pkg == "" {
			return ""
		}
		return pkg + "." + t.Sel.Name

	case *ast.IndexExpr:
		base := exprString(t.X)
		index := exprString(t.Index)
		if base == "" || index == "" {
			return ""
		}
		return base + "[" + index + "]"

	case *ast.MapType:
		key := exprString(t.Key)
		value := exprString(t.Value)
		if key == "" || value == "" {
			return ""
		}
		return "map[" + key + "]" + value
	}

	return ""
}
