package generator

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	goparser "go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/quillsql/quill/internal/logger"
	"github.com/quillsql/quill/internal/parser"
)

// Config configures one generation run.
type Config struct {
	PackagePath string // directory holding the entity declarations
	OutputDir   string // defaults to PackagePath
	PackageName string // auto-detected from the package when empty
}

// Generator is the schema compiler driver: it runs introspection once per
// entity and feeds the result to the naming, accessor, parser, and update
// emission passes.
type Generator struct {
	config    Config
	parser    *parser.StructParser
	templates map[string]*template.Template
}

func New(config Config) *Generator {
	if config.OutputDir == "" {
		config.OutputDir = config.PackagePath
	}
	return &Generator{
		config:    config,
		parser:    parser.NewStructParser("quill"),
		templates: loadTemplates(),
	}
}

// emissions maps template name to output file suffix, one file per
// generator component per entity.
var emissions = []struct {
	template string
	suffix   string
}{
	{"columns", "_columns.go"},
	{"accessors", "_accessors.go"},
	{"parsers", "_parsers.go"},
	{"update", "_update.go"},
}

// Generate compiles every entity in the models package. Entities are
// independent: one entity's structural failure aborts only that entity,
// and all failures are reported together.
func (g *Generator) Generate() error {
	pkgName := g.config.PackageName
	if pkgName == "" {
		detected, err := g.detectPackageName(g.config.PackagePath)
		if err != nil {
			return fmt.Errorf("failed to detect package name: %w", err)
		}
		pkgName = detected
	}

	definitions, parseErr := g.parser.ParseDirectory(g.config.PackagePath)
	if len(definitions) == 0 {
		if parseErr != nil {
			return fmt.Errorf("introspection failed: %w", parseErr)
		}
		return fmt.Errorf("no entities found in %s", g.config.PackagePath)
	}

	var errs []error
	if parseErr != nil {
		errs = append(errs, fmt.Errorf("introspection: %w", parseErr))
	}

	for _, def := range definitions {
		if err := g.generateEntity(pkgName, def); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (g *Generator) generateEntity(pkgName string, def parser.EntityDefinition) error {
	log := logger.Generator().WithField("entity", def.StructName)

	if err := validateEntity(def); err != nil {
		return err
	}

	schema := BuildSchema(pkgName, def)
	log.Debug("compiled entity schema",
		"table", schema.Table, "columns", len(schema.Columns), "aliases", len(schema.Aliases))

	for _, emission := range emissions {
		filename := schema.Snake + emission.suffix
		if err := g.executeTemplate(emission.template, filename, schema); err != nil {
			return fmt.Errorf("entity %s: %w", def.StructName, err)
		}
	}

	log.Info("generated entity", "files", len(emissions))
	return nil
}

// executeTemplate renders one emission pass, gofmt-checks it, and writes
// it into the output directory.
func (g *Generator) executeTemplate(name, filename string, schema *EntitySchema) error {
	tmpl, ok := g.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, schema); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to format generated code for %s: %w", filename, err)
	}

	outputPath := filepath.Join(g.config.OutputDir, filename)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return os.WriteFile(outputPath, formatted, 0644)
}

// Clean removes previously generated files from the output directory,
// identified by the generated-code header.
func (g *Generator) Clean() error {
	return filepath.Walk(g.config.OutputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if bytes.HasPrefix(content, []byte(generatedHeader)) {
			return os.Remove(path)
		}
		return nil
	})
}

// detectPackageName reads the package clause of the first parsable non-test
// file in the models directory.
func (g *Generator) detectPackageName(packagePath string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(packagePath, "*.go"))
	if err != nil {
		return "", fmt.Errorf("failed to glob directory %s: %w", packagePath, err)
	}

	fileSet := token.NewFileSet()
	for _, file := range matches {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}
		src, err := goparser.ParseFile(fileSet, file, nil, goparser.PackageClauseOnly)
		if err != nil {
			continue
		}
		if src.Name != nil {
			return src.Name.Name, nil
		}
	}

	return "", fmt.Errorf("could not detect package name from files in %s", packagePath)
}
