// cmd/workorders/main.go
//
// Entry point for the work order manager. The app keeps its state under
// $HOME/.workorders (config, operation log, optional seed dataset) and
// runs the TUI full-screen.

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simchap123/Work-orders-for-PM/internal/tui"
)

func main() {
	baseDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving home directory: %v\n", err)
		os.Exit(1)
	}
	if dir := os.Getenv("WORKORDERS_DIR"); dir != "" {
		baseDir = dir
	}

	app, err := tui.NewApp(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting up: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(), // Use alternate screen buffer (like vim does)
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
