// Package main provides the clipbridge CLI application entry point.
// clipbridge puts file lists, images and text on the system clipboard and
// reads them back.
package main

import (
	"fmt"
	"os"

	"clipbridge/cmd/clipbridge/internal/cli"
)

func main() {
	app := cli.NewApp()
	rootCmd := app.CreateRootCommand()

	if err := rootCmd.Execute(); err != nil {
		if reportErr := app.ReportError(err); reportErr != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
