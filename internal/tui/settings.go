package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// settingsView is the user switcher. The demo app has no authentication;
// picking a user here changes which role the whole session acts as.
type settingsView struct {
	app    *App
	cursor int
}

func newSettingsView(app *App) *settingsView {
	return &settingsView{app: app}
}

func (v *settingsView) reset() {
	for i, u := range v.app.dir.Users() {
		if u.ID == v.app.user.ID {
			v.cursor = i
			return
		}
	}
	v.cursor = 0
}

func (v *settingsView) update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	users := v.app.dir.Users()
	switch keyMsg.String() {
	case "esc", "q":
		return v.app.openDashboard()
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(users)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(users) {
			v.app.switchUser(users[v.cursor])
			return v.app.openDashboard()
		}
	}
	return nil
}

func (v *settingsView) view(width int) string {
	lines := []string{titleStyle.Render("Act As"), ""}
	for i, u := range v.app.dir.Users() {
		row := fmt.Sprintf("%s (%s)", u.Name, u.Role)
		switch {
		case u.ID == v.app.user.ID:
			row = "● " + row
		default:
			row = "  " + row
		}
		if i == v.cursor {
			row = selectedStyle.Render(row)
		}
		lines = append(lines, row)
	}
	lines = append(lines, hintStyle.Render("enter → switch user    esc → back"))
	return strings.Join(lines, "\n")
}
