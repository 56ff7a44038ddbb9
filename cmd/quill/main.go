package main

import (
	"os"

	"github.com/quillsql/quill/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
