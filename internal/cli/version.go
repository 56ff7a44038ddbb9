package cli

import (
	"github.com/spf13/cobra"
)

// Version is the quill release version, overridable at build time.
var Version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the quill version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("quill %s\n", Version)
	},
}
