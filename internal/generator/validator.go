package generator

import (
	"fmt"

	"github.com/quillsql/quill/internal/parser"
)

// validateEntity enforces the documented schema invariants before any code
// is emitted: the runtime does not defend against duplicate column names or
// an alias shadowing the table name, so the compiler must.
func validateEntity(def parser.EntityDefinition) error {
	attributed := def.AttributedFields()
	if len(attributed) == 0 {
		return fmt.Errorf("entity %s has no attributed fields", def.StructName)
	}

	seen := make(map[string]bool, len(attributed))
	hasID := false
	for _, f := range attributed {
		if seen[f.Column] {
			return fmt.Errorf("entity %s: duplicate column name %q", def.StructName, f.Column)
		}
		seen[f.Column] = true
		if f.Column == idColumn {
			hasID = true
		}
	}

	if !hasID {
		return fmt.Errorf("entity %s has no attributed %q column", def.StructName, idColumn)
	}

	seenAlias := make(map[string]bool, len(def.Aliases))
	for _, alias := range def.Aliases {
		if alias == def.TableName {
			return fmt.Errorf("entity %s: alias %q collides with the table name", def.StructName, alias)
		}
		if seenAlias[alias] {
			return fmt.Errorf("entity %s: alias %q declared twice", def.StructName, alias)
		}
		seenAlias[alias] = true
	}

	return nil
}
