package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gatherly/gatherly/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse events interactively",
	Long: `Open the interactive event browser.

The browser shows approved events in a paginated grid, with search and
detail views. Logged-in users can like and save events and switch to
their liked, saved and own listings; anonymous users are offered a login
form when they reach those.

Examples:
  gatherly browse`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !tui.IsInteractive() {
			return fmt.Errorf("browse needs an interactive terminal")
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		app.start(cmd.Context())

		program := tea.NewProgram(
			tui.NewModel(app.session, app.client),
			tea.WithAltScreen(),
			tea.WithContext(cmd.Context()),
		)
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("browser failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
