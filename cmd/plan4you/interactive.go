package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/plan4you/internal/tui"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Enter a household interactively and browse the results",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		p := tea.NewProgram(tui.NewModel(rt.advisor), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	},
}
