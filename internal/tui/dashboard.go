package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simchap123/Work-orders-for-PM/internal/directory"
	"github.com/simchap123/Work-orders-for-PM/internal/workorder"
)

// The dashboard is role-aware: technicians and vendors see their own
// queue, everyone else sees portfolio counts plus the open high-priority
// orders.

func (a *App) updateDashboard(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	rows := a.dashboardOrders()
	switch keyMsg.String() {
	case "q", "esc":
		return tea.Quit
	case "o":
		return a.openOrders()
	case "n":
		return a.openCreate()
	case "s":
		return a.openSettings()
	case "up", "k":
		if a.dashCursor > 0 {
			a.dashCursor--
		}
	case "down", "j":
		if a.dashCursor < len(rows)-1 {
			a.dashCursor++
		}
	case "enter":
		if a.dashCursor < len(rows) {
			return a.openDetail(rows[a.dashCursor].ID)
		}
	}
	return nil
}

// dashboardOrders returns the orders the dashboard lists for the current
// user.
func (a *App) dashboardOrders() []workorder.WorkOrder {
	var rows []workorder.WorkOrder
	switch a.user.Role {
	case directory.RoleTechnician, directory.RoleVendor:
		for _, wo := range a.snapshot() {
			if wo.IsAssignedTo(a.user.ID) {
				rows = append(rows, wo)
			}
		}
	default:
		for _, wo := range a.snapshot() {
			if wo.Priority == workorder.PriorityHigh && wo.Open() {
				rows = append(rows, wo)
			}
		}
	}
	return rows
}

func (a *App) renderDashboard(width int) string {
	rows := a.dashboardOrders()
	if a.dashCursor >= len(rows) {
		a.dashCursor = max(0, len(rows)-1)
	}

	var sections []string
	var listTitle string
	switch a.user.Role {
	case directory.RoleTechnician, directory.RoleVendor:
		listTitle = "My Work Orders"
	default:
		sections = append(sections, a.renderStatusCards())
		listTitle = "High Priority · Open"
	}

	sections = append(sections, titleStyle.Render(listTitle))
	if len(rows) == 0 {
		sections = append(sections, faintStyle.Render("Nothing here right now."))
	} else {
		for i, wo := range rows {
			sections = append(sections, a.renderOrderRow(wo, i == a.dashCursor, width))
		}
	}

	hints := "enter → open    o → all orders    s → settings    q → quit"
	if canCreateHint := a.user.Role; canCreateHint != directory.RoleTechnician &&
		canCreateHint != directory.RoleVendor && canCreateHint != directory.RoleOwner {
		hints = "enter → open    o → all orders    n → new order    s → settings    q → quit"
	}
	sections = append(sections, hintStyle.Render(hints))
	return strings.Join(sections, "\n")
}

func (a *App) renderStatusCards() string {
	counts := map[workorder.Status]int{}
	for _, wo := range a.snapshot() {
		counts[wo.Status]++
	}
	var cards []string
	for _, status := range workorder.Statuses {
		card := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(statusColors[status]).
			Padding(0, 1).
			Render(fmt.Sprintf("%s\n%d", statusBadge(status), counts[status]))
		cards = append(cards, card)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (a *App) renderOrderRow(wo workorder.WorkOrder, selected bool, width int) string {
	property := ""
	if p, ok := a.dir.PropertyByID(wo.PropertyID); ok {
		property = p.Name
	}
	line1 := fmt.Sprintf("%s · %s", orderRef(wo.ID), wo.Title)
	line2 := fmt.Sprintf("%s   %s   %s", statusBadge(wo.Status), priorityLabel(wo.Priority), faintStyle.Render(property))
	if id, ok := wo.Assignee(); ok {
		line2 += faintStyle.Render("   → " + a.dir.UserName(id))
	}
	content := line1 + "\n" + line2
	style := lipgloss.NewStyle().Width(max(30, width-4)).Padding(0, 0, 1, 0)
	if selected {
		style = selectedStyle.Width(max(30, width-4))
	}
	return style.Render(content)
}
