package cmd

import (
	"fmt"

	"boilerInspector/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive inspection form (same as default)",
	Long: `Start the Terminal User Interface for recording inspections.
It provides the inspection form with checklist and product entry, the
dashboard of recent inspections and history backup.

Note: This is the same as running the program without any commands.`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	model := tui.NewModel(service, historyStore, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
