package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/regexmark/cmd/regexmark"
	"github.com/arthur-debert/regexmark/pkg/ui/styles"
)

func main() {
	rootCmd := regexmark.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.Default().Get("error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
