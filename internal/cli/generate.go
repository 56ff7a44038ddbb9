package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillsql/quill/internal/generator"
)

var (
	generatePackage string
	generateOutput  string
	generateClean   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile entity declarations into typed database code",
	Long: `Compile every entity in the models package.

For each entity quill emits four files next to the declaration: the naming
tables, the accessors, the row parsers, and the update statement.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generatePackage, "package", "", "path to the package containing entity declarations")
	generateCmd.Flags().StringVar(&generateOutput, "output", "", "output directory for generated code (default: same as package)")
	generateCmd.Flags().BoolVar(&generateClean, "clean", false, "remove previously generated files first")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generatePackage == "" && quillConfig != nil {
		generatePackage = quillConfig.Models.Package
	}
	if generatePackage == "" {
		generatePackage = "./models"
	}
	if generateOutput == "" && quillConfig != nil {
		generateOutput = quillConfig.Models.Output
	}
	if generateOutput == "" {
		generateOutput = generatePackage
	}

	gen := generator.New(generator.Config{
		PackagePath: generatePackage,
		OutputDir:   generateOutput,
	})

	if generateClean {
		if err := gen.Clean(); err != nil {
			return fmt.Errorf("failed to clean output directory: %w", err)
		}
	}

	cmd.Printf("Compiling entities in %s\n", generatePackage)
	if err := gen.Generate(); err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	cmd.Printf("Entity code generated in %s\n", generateOutput)
	return nil
}
