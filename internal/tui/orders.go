package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/simchap123/Work-orders-for-PM/internal/workorder"
)

// ordersView is the searchable, filterable list of every work order.
// "/" focuses the search box; "f" cycles the status filter.
type ordersView struct {
	app    *App
	search textinput.Model

	// filter is an index into filterOptions; 0 means no filter.
	filter int
	cursor int
}

// filterOptions is the status filter cycle: all, then each status.
var filterOptions = append([]workorder.Status{""}, workorder.Statuses...)

func newOrdersView(app *App) *ordersView {
	search := textinput.New()
	search.Placeholder = "Search title, description, tags..."
	search.CharLimit = 80
	search.Width = 40
	return &ordersView{app: app, search: search}
}

func (v *ordersView) update(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if v.search.Focused() {
		if isKey {
			switch keyMsg.String() {
			case "enter", "esc":
				v.search.Blur()
				return nil
			}
		}
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		v.clampCursor()
		return cmd
	}

	if !isKey {
		return nil
	}
	switch keyMsg.String() {
	case "esc", "q":
		return v.app.openDashboard()
	case "/":
		return v.search.Focus()
	case "f":
		v.filter = (v.filter + 1) % len(filterOptions)
		v.clampCursor()
	case "F":
		v.filter = (v.filter + len(filterOptions) - 1) % len(filterOptions)
		v.clampCursor()
	case "n":
		return v.app.openCreate()
	case "s":
		return v.app.openSettings()
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.rows())-1 {
			v.cursor++
		}
	case "enter":
		rows := v.rows()
		if v.cursor < len(rows) {
			return v.app.openDetail(rows[v.cursor].ID)
		}
	}
	return nil
}

// rows applies the search text and status filter to the snapshot.
func (v *ordersView) rows() []workorder.WorkOrder {
	query := strings.ToLower(strings.TrimSpace(v.search.Value()))
	status := filterOptions[v.filter]

	var out []workorder.WorkOrder
	for _, wo := range v.app.snapshot() {
		if status != "" && wo.Status != status {
			continue
		}
		if query != "" && !matchesQuery(wo, query) {
			continue
		}
		out = append(out, wo)
	}
	return out
}

func matchesQuery(wo workorder.WorkOrder, query string) bool {
	if strings.Contains(strings.ToLower(wo.Title), query) ||
		strings.Contains(strings.ToLower(wo.Description), query) ||
		strings.Contains(orderRef(wo.ID), strings.ToUpper(query)) {
		return true
	}
	for _, tag := range wo.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func (v *ordersView) clampCursor() {
	if n := len(v.rows()); v.cursor >= n {
		v.cursor = max(0, n-1)
	}
}

func (v *ordersView) view(width int) string {
	rows := v.rows()

	filterLabel := "All"
	if status := filterOptions[v.filter]; status != "" {
		filterLabel = string(status)
	}
	head := titleStyle.Render(fmt.Sprintf("Work Orders (%d)", len(rows)))
	bar := fmt.Sprintf("%s    %s", v.search.View(), faintStyle.Render("Filter: "+filterLabel))

	sections := []string{head, bar, ""}
	if len(rows) == 0 {
		sections = append(sections, faintStyle.Render("No work orders match."))
	}
	for i, wo := range rows {
		sections = append(sections, v.app.renderOrderRow(wo, i == v.cursor, width))
	}
	sections = append(sections, hintStyle.Render("enter → open    / → search    f → filter    n → new order    esc → dashboard"))
	return strings.Join(sections, "\n")
}
