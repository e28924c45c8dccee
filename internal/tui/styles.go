package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/simchap123/Work-orders-for-PM/internal/workorder"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF")).
			MarginBottom(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			MarginTop(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)

	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)
)

var statusColors = map[workorder.Status]lipgloss.Color{
	workorder.StatusNew:        lipgloss.Color("#3B82F6"),
	workorder.StatusAssigned:   lipgloss.Color("#6366F1"),
	workorder.StatusInProgress: lipgloss.Color("#EAB308"),
	workorder.StatusOnHold:     lipgloss.Color("#6B7280"),
	workorder.StatusCompleted:  lipgloss.Color("#22C55E"),
	workorder.StatusClosed:     lipgloss.Color("#A855F7"),
}

var priorityColors = map[workorder.Priority]lipgloss.Color{
	workorder.PriorityLow:    lipgloss.Color("#22C55E"),
	workorder.PriorityMedium: lipgloss.Color("#EAB308"),
	workorder.PriorityHigh:   lipgloss.Color("#EF4444"),
}

func statusBadge(status workorder.Status) string {
	color, ok := statusColors[status]
	if !ok {
		color = lipgloss.Color("#CCCCCC")
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render("● " + string(status))
}

func priorityLabel(p workorder.Priority) string {
	color, ok := priorityColors[p]
	if !ok {
		color = lipgloss.Color("#CCCCCC")
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(p))
}

func orderRef(id int) string {
	return fmt.Sprintf("WO-%d", id)
}
