package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-preview"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "viewpane",
		Short: "Viewpane - viewport engine for rendered document previews",
		Long: `Viewpane owns zoom and pan for a rendered document surface: it converts
wheel, keyboard, drag, and scrollbar-thumb gestures into clamped viewport
state and exposes synchronized position/zoom indicators. The serve command
hosts a browser preview over a websocket bridge; the view command runs a
terminal preview driving the same engine.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newViewCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
