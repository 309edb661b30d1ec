package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/recera/viewpane/cmd/viewpane/internal/ui"
	"github.com/recera/viewpane/internal/config"
)

func newViewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <document>",
		Short: "Preview a document in the terminal",
		Long: `Opens a document in a terminal viewer driven by the same viewport engine
as the browser preview: wheel and shift-wheel pan, ctrl-wheel and +/- zoom,
middle-drag pans, and the scroll indicators auto-hide after use.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("cannot read document %s: %w", args[0], err)
			}

			model := ui.NewModel(args[0], string(data), cfg.ViewportOptions())
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
			_, err = p.Run()
			return err
		},
	}
	return cmd
}
