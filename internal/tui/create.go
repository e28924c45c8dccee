package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/simchap123/Work-orders-for-PM/internal/ops"
	"github.com/simchap123/Work-orders-for-PM/internal/suggest"
	"github.com/simchap123/Work-orders-for-PM/internal/workorder"
)

// Minimum description length before the title suggestion shortcut is
// offered.
const minTitleSuggestLen = 10

const suggestTimeout = 20 * time.Second

// Form focus order.
const (
	focusTitle = iota
	focusDesc
	focusUnit
	focusProperty
	focusPriority
	focusTags
	focusCount
)

var priorityCycle = []workorder.Priority{
	workorder.PriorityLow,
	workorder.PriorityMedium,
	workorder.PriorityHigh,
}

type suggestTitleMsg struct {
	title string
	err   error
}

// tagTickMsg fires when a debounce window elapses; the token tells us
// whether the window is still the latest one.
type tagTickMsg struct {
	token uuid.UUID
}

type tagSuggestionsMsg struct {
	token uuid.UUID
	tags  []string
	err   error
}

// createView is the new work order form. While the user types a
// description, tag suggestions are requested after a debounce; a title
// can be generated on demand.
type createView struct {
	app *App

	title textinput.Model
	desc  textarea.Model
	unit  textinput.Model

	propCursor int
	priority   int
	tagCursor  int
	selected   map[string]bool

	focus    int
	debounce suggest.Debouncer

	suggestingTitle bool
	suggestingTags  bool
	lastDesc        string
}

func newCreateView(app *App) *createView {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 120
	title.Width = 50
	title.Focus()

	desc := textarea.New()
	desc.Placeholder = "Describe the problem..."
	desc.SetHeight(4)
	desc.CharLimit = 1000

	unit := textinput.New()
	unit.Placeholder = "Unit (optional)"
	unit.CharLimit = 20
	unit.Width = 20

	return &createView{
		app:      app,
		title:    title,
		desc:     desc,
		unit:     unit,
		priority: 1, // Medium
		selected: map[string]bool{},
	}
}

func (v *createView) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case suggestTitleMsg:
		v.suggestingTitle = false
		if msg.err != nil {
			v.app.statusMsg = errorStyle.Render("Title suggestion failed")
			v.app.logWarn("Title suggestion failed: %v", msg.err)
			return nil
		}
		if msg.title != "" {
			v.title.SetValue(msg.title)
			v.app.statusMsg = "Title suggested"
		}
		return nil

	case tagTickMsg:
		if !v.debounce.Current(msg.token) {
			return nil
		}
		v.suggestingTags = true
		return v.fetchTagSuggestions(msg.token, v.desc.Value())

	case tagSuggestionsMsg:
		v.suggestingTags = false
		if !v.debounce.Current(msg.token) {
			return nil
		}
		if msg.err != nil {
			v.app.logWarn("Tag suggestion failed: %v", msg.err)
			return nil
		}
		for _, tag := range msg.tags {
			v.selected[tag] = true
		}
		return nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v.routeToInputs(msg)
}

func (v *createView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return v.app.openDashboard()
	case "tab":
		return v.setFocus((v.focus + 1) % focusCount)
	case "shift+tab":
		return v.setFocus((v.focus + focusCount - 1) % focusCount)
	case "ctrl+s":
		return v.submit()
	case "ctrl+g":
		if v.suggestingTitle || !v.app.suggest.Enabled() ||
			len(strings.TrimSpace(v.desc.Value())) <= minTitleSuggestLen {
			return nil
		}
		v.suggestingTitle = true
		v.app.statusMsg = "Suggesting a title..."
		return v.fetchTitleSuggestion(v.desc.Value())
	}

	switch v.focus {
	case focusProperty:
		properties := v.app.dir.Properties()
		switch msg.String() {
		case "up", "k":
			if v.propCursor > 0 {
				v.propCursor--
			}
		case "down", "j":
			if v.propCursor < len(properties)-1 {
				v.propCursor++
			}
		}
		return nil
	case focusPriority:
		switch msg.String() {
		case "left", "h":
			v.priority = (v.priority + len(priorityCycle) - 1) % len(priorityCycle)
		case "right", "l", " ":
			v.priority = (v.priority + 1) % len(priorityCycle)
		}
		return nil
	case focusTags:
		switch msg.String() {
		case "up", "k":
			if v.tagCursor > 0 {
				v.tagCursor--
			}
		case "down", "j":
			if v.tagCursor < len(v.app.tags)-1 {
				v.tagCursor++
			}
		case " ", "enter":
			if v.tagCursor < len(v.app.tags) {
				tag := v.app.tags[v.tagCursor]
				v.selected[tag] = !v.selected[tag]
			}
		}
		return nil
	}
	return v.routeToInputs(msg)
}

// routeToInputs forwards a message to whichever text field has focus and,
// for the description, arms the tag suggestion debounce when the content
// changed.
func (v *createView) routeToInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch v.focus {
	case focusTitle:
		v.title, cmd = v.title.Update(msg)
	case focusDesc:
		v.desc, cmd = v.desc.Update(msg)
		if armCmd := v.armTagDebounce(); armCmd != nil {
			return tea.Batch(cmd, armCmd)
		}
	case focusUnit:
		v.unit, cmd = v.unit.Update(msg)
	}
	return cmd
}

// armTagDebounce restarts the debounce window after a description edit.
// Only the tick carrying the latest token will trigger a request.
func (v *createView) armTagDebounce() tea.Cmd {
	desc := v.desc.Value()
	if desc == v.lastDesc {
		return nil
	}
	v.lastDesc = desc
	if !v.app.suggest.Enabled() ||
		len(strings.TrimSpace(desc)) < v.app.config.File.Suggestions.MinDescriptionLen {
		v.debounce.Cancel()
		return nil
	}
	token := v.debounce.Arm()
	window := time.Duration(v.app.config.File.Suggestions.DebounceMS) * time.Millisecond
	return tea.Tick(window, func(time.Time) tea.Msg {
		return tagTickMsg{token: token}
	})
}

func (v *createView) fetchTitleSuggestion(desc string) tea.Cmd {
	client := v.app.suggest
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), suggestTimeout)
		defer cancel()
		title, err := client.SuggestTitle(ctx, desc)
		return suggestTitleMsg{title: title, err: err}
	}
}

func (v *createView) fetchTagSuggestions(token uuid.UUID, desc string) tea.Cmd {
	client := v.app.suggest
	available := v.app.tags
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), suggestTimeout)
		defer cancel()
		tags, err := client.SuggestTags(ctx, desc, available)
		return tagSuggestionsMsg{token: token, tags: tags, err: err}
	}
}

func (v *createView) setFocus(target int) tea.Cmd {
	v.focus = target
	v.title.Blur()
	v.desc.Blur()
	v.unit.Blur()
	switch target {
	case focusTitle:
		return v.title.Focus()
	case focusDesc:
		return v.desc.Focus()
	case focusUnit:
		return v.unit.Focus()
	}
	return nil
}

func (v *createView) submit() tea.Cmd {
	properties := v.app.dir.Properties()
	if len(properties) == 0 {
		v.app.statusMsg = errorStyle.Render("No properties configured")
		return nil
	}
	if v.propCursor >= len(properties) {
		v.propCursor = 0
	}
	var tags []string
	for _, tag := range v.app.tags {
		if v.selected[tag] {
			tags = append(tags, tag)
		}
	}

	wo, err := v.app.ops.Create(ops.CreateRequest{
		Title:       v.title.Value(),
		Description: v.desc.Value(),
		PropertyID:  properties[v.propCursor].ID,
		UnitNumber:  strings.TrimSpace(v.unit.Value()),
		Priority:    priorityCycle[v.priority],
		Tags:        tags,
		AuthorID:    v.app.user.ID,
	})
	if err != nil {
		v.app.statusMsg = errorStyle.Render(err.Error())
		return nil
	}
	v.app.create = nil
	v.app.statusMsg = fmt.Sprintf("%s created", orderRef(wo.ID))
	return v.app.openDetail(wo.ID)
}

func (v *createView) view(width int) string {
	properties := v.app.dir.Properties()
	property := "—"
	if v.propCursor < len(properties) {
		property = properties[v.propCursor].Name
	}

	sections := []string{
		titleStyle.Render("New Work Order"),
		"",
		v.fieldLabel("Title", focusTitle) + "  " + v.title.View(),
		v.fieldLabel("Description", focusDesc),
		v.desc.View(),
		v.fieldLabel("Unit", focusUnit) + "  " + v.unit.View(),
		v.fieldLabel("Property", focusProperty) + "  " + property,
		v.fieldLabel("Priority", focusPriority) + "  " + priorityLabel(priorityCycle[v.priority]),
		v.renderTags(),
	}
	if v.suggestingTags {
		sections = append(sections, faintStyle.Render("Suggesting tags..."))
	}

	hints := "tab → next field    ctrl+s → create    esc → cancel"
	if v.app.suggest.Enabled() {
		hints = "tab → next field    ctrl+g → suggest title    ctrl+s → create    esc → cancel"
	}
	sections = append(sections, hintStyle.Render(hints))
	return strings.Join(sections, "\n")
}

func (v *createView) fieldLabel(name string, target int) string {
	if v.focus == target {
		return titleStyle.Render("▸ " + name)
	}
	return faintStyle.Render("  " + name)
}

func (v *createView) renderTags() string {
	lines := []string{v.fieldLabel("Tags", focusTags)}
	for i, tag := range v.app.tags {
		marker := "[ ]"
		if v.selected[tag] {
			marker = "[x]"
		}
		row := fmt.Sprintf("%s %s", marker, tag)
		if v.focus == focusTags && i == v.tagCursor {
			row = titleStyle.Render(row)
		} else {
			row = faintStyle.Render(row)
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}
