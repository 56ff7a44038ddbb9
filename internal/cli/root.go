package cli

import (
	"github.com/spf13/cobra"

	"github.com/quillsql/quill/internal/logger"
)

// Global configuration variables
var (
	configFile  string
	quillConfig *QuillConfig
	debug       bool
	verbose     bool
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quill",
		Short: "Quill - SQL schema compiler for Go entities",
		Long: `Quill compiles declarative entity definitions into typed database code.

From a single annotated struct declaration, quill generates:
- Naming tables projecting each field onto its SQL column forms
- Accessors normalizing the tri-state field wrapper into plain values
- Row parsers for the base table and every declared join alias
- A partial-update statement bound in field-declaration order`,
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			path := configFile
			if path == "" {
				path = GetConfigPath()
			}

			var err error
			quillConfig, err = LoadQuillConfig(path)
			if err != nil {
				cmd.Printf("Warning: failed to load config file: %v\n", err)
			}

			if quillConfig != nil {
				debug = debug || quillConfig.Logging.Debug
				verbose = verbose || quillConfig.Logging.Verbose
			}
			logger.SetVerbosity(debug, verbose)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: quill.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
