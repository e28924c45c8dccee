package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/simchap123/Work-orders-for-PM/internal/ops"
	"github.com/simchap123/Work-orders-for-PM/internal/workorder"
)

// detailMode is what the detail screen is currently doing: plain viewing,
// or one of the inline forms.
type detailMode int

const (
	modeView detailMode = iota
	modeAssign
	modeNote
	modeComplete
	modeMedia
)

// detailView shows one work order with its activity feed and the actions
// the current user is allowed to take on it.
type detailView struct {
	app  *App
	id   int
	mode detailMode

	assignCursor int

	note textarea.Model

	// completion form: evidence note + photo URL, tab cycles focus.
	compNote  textarea.Model
	compURL   textinput.Model
	compFocus int

	mediaURL  textinput.Model
	mediaKind workorder.MediaKind
}

func newDetailView(app *App, id int) *detailView {
	note := textarea.New()
	note.Placeholder = "Add a note..."
	note.SetHeight(3)
	note.CharLimit = 500

	compNote := textarea.New()
	compNote.Placeholder = "What was done?"
	compNote.SetHeight(3)
	compNote.CharLimit = 500

	compURL := textinput.New()
	compURL.Placeholder = "https://... (photo of the finished work)"
	compURL.CharLimit = 200
	compURL.Width = 50

	mediaURL := textinput.New()
	mediaURL.Placeholder = "https://..."
	mediaURL.CharLimit = 200
	mediaURL.Width = 50

	return &detailView{
		app:       app,
		id:        id,
		note:      note,
		compNote:  compNote,
		compURL:   compURL,
		mediaURL:  mediaURL,
		mediaKind: workorder.MediaImage,
	}
}

func (v *detailView) order() (workorder.WorkOrder, bool) {
	return v.app.store.Find(v.id)
}

func (v *detailView) update(msg tea.Msg) tea.Cmd {
	wo, ok := v.order()
	if !ok {
		return v.app.openOrders()
	}
	switch v.mode {
	case modeAssign:
		return v.updateAssign(msg, wo)
	case modeNote:
		return v.updateNote(msg, wo)
	case modeComplete:
		return v.updateComplete(msg, wo)
	case modeMedia:
		return v.updateMedia(msg, wo)
	}
	return v.updateView(msg, wo)
}

func (v *detailView) updateView(msg tea.Msg, wo workorder.WorkOrder) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	user := v.app.user
	switch keyMsg.String() {
	case "esc", "q":
		return v.app.openOrders()
	case "a":
		if ops.CanAssign(user.Role, wo.Status) {
			v.mode = modeAssign
			v.assignCursor = 0
		}
	case "p":
		if ops.CanStartProgress(user, wo) {
			v.runOp(func() (workorder.WorkOrder, error) {
				return v.app.ops.ChangeStatus(wo.ID, workorder.StatusInProgress, user.ID)
			})
		}
	case "c":
		if ops.CanCompleteWithEvidence(user, wo) {
			v.mode = modeComplete
			v.compNote.Reset()
			v.compURL.Reset()
			v.compFocus = 0
			return v.compNote.Focus()
		}
		if ops.CanCompleteDirect(user, wo) {
			v.runOp(func() (workorder.WorkOrder, error) {
				return v.app.ops.ChangeStatus(wo.ID, workorder.StatusCompleted, user.ID)
			})
		}
	case "h":
		if ops.CanHold(user, wo) {
			v.runOp(func() (workorder.WorkOrder, error) {
				return v.app.ops.ChangeStatus(wo.ID, workorder.StatusOnHold, user.ID)
			})
		}
	case "x":
		if ops.CanClose(user, wo) {
			v.runOp(func() (workorder.WorkOrder, error) {
				return v.app.ops.ChangeStatus(wo.ID, workorder.StatusClosed, user.ID)
			})
		}
	case "m":
		v.mode = modeNote
		v.note.Reset()
		return v.note.Focus()
	case "u":
		v.mode = modeMedia
		v.mediaURL.Reset()
		v.mediaKind = workorder.MediaImage
		return v.mediaURL.Focus()
	}
	return nil
}

// runOp executes an operation and routes the outcome to the status line.
func (v *detailView) runOp(op func() (workorder.WorkOrder, error)) {
	if _, err := op(); err != nil {
		v.app.statusMsg = errorStyle.Render(err.Error())
		return
	}
	v.app.statusMsg = ""
}

func (v *detailView) updateAssign(msg tea.Msg, wo workorder.WorkOrder) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	candidates := v.app.dir.Assignable()
	switch keyMsg.String() {
	case "esc":
		v.mode = modeView
	case "up", "k":
		if v.assignCursor > 0 {
			v.assignCursor--
		}
	case "down", "j":
		if v.assignCursor < len(candidates)-1 {
			v.assignCursor++
		}
	case "enter":
		if v.assignCursor < len(candidates) {
			assignee := candidates[v.assignCursor]
			v.runOp(func() (workorder.WorkOrder, error) {
				return v.app.ops.Assign(wo.ID, assignee.ID, v.app.user.ID)
			})
			v.mode = modeView
		}
	}
	return nil
}

func (v *detailView) updateNote(msg tea.Msg, wo workorder.WorkOrder) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			v.mode = modeView
			v.note.Blur()
			return nil
		case "ctrl+s":
			v.runOp(func() (workorder.WorkOrder, error) {
				return v.app.ops.AddNote(wo.ID, v.app.user.ID, v.note.Value())
			})
			v.mode = modeView
			v.note.Blur()
			return nil
		}
	}
	var cmd tea.Cmd
	v.note, cmd = v.note.Update(msg)
	return cmd
}

func (v *detailView) updateComplete(msg tea.Msg, wo workorder.WorkOrder) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			v.mode = modeView
			v.compNote.Blur()
			v.compURL.Blur()
			return nil
		case "tab", "shift+tab":
			v.compFocus = 1 - v.compFocus
			if v.compFocus == 0 {
				v.compURL.Blur()
				return v.compNote.Focus()
			}
			v.compNote.Blur()
			return v.compURL.Focus()
		case "ctrl+s":
			v.runOp(func() (workorder.WorkOrder, error) {
				return v.app.ops.CompleteWithEvidence(wo.ID, v.app.user.ID, v.compNote.Value(), v.compURL.Value())
			})
			if v.app.statusMsg == "" {
				v.mode = modeView
				v.compNote.Blur()
				v.compURL.Blur()
			}
			return nil
		}
	}
	var cmd tea.Cmd
	if v.compFocus == 0 {
		v.compNote, cmd = v.compNote.Update(msg)
	} else {
		v.compURL, cmd = v.compURL.Update(msg)
	}
	return cmd
}

func (v *detailView) updateMedia(msg tea.Msg, wo workorder.WorkOrder) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			v.mode = modeView
			v.mediaURL.Blur()
			return nil
		case "ctrl+t":
			if v.mediaKind == workorder.MediaImage {
				v.mediaKind = workorder.MediaVideo
			} else {
				v.mediaKind = workorder.MediaImage
			}
			return nil
		case "enter":
			v.runOp(func() (workorder.WorkOrder, error) {
				return v.app.ops.AddMedia(wo.ID, v.app.user.ID, v.mediaURL.Value(), v.mediaKind)
			})
			if v.app.statusMsg == "" {
				v.mode = modeView
				v.mediaURL.Blur()
			}
			return nil
		}
	}
	var cmd tea.Cmd
	v.mediaURL, cmd = v.mediaURL.Update(msg)
	return cmd
}

func (v *detailView) view(width int) string {
	wo, ok := v.order()
	if !ok {
		return faintStyle.Render("Work order gone.")
	}

	sections := []string{
		titleStyle.Render(fmt.Sprintf("%s · %s", orderRef(wo.ID), wo.Title)),
		fmt.Sprintf("%s   %s", statusBadge(wo.Status), priorityLabel(wo.Priority)),
		"",
		wo.Description,
		"",
		v.renderFacts(wo),
	}
	if len(wo.Media) > 0 {
		sections = append(sections, "", v.renderMedia(wo))
	}
	sections = append(sections, "", v.renderActivity(wo))

	switch v.mode {
	case modeAssign:
		sections = append(sections, "", v.renderAssignPicker())
	case modeNote:
		sections = append(sections, "", titleStyle.Render("New Note"), v.note.View(),
			hintStyle.Render("ctrl+s → save    esc → cancel"))
	case modeComplete:
		sections = append(sections, "", titleStyle.Render("Complete Work Order"),
			faintStyle.Render("A completion note and a photo are both required."),
			v.compNote.View(), v.compURL.View(),
			hintStyle.Render("tab → switch field    ctrl+s → complete    esc → cancel"))
	case modeMedia:
		sections = append(sections, "", titleStyle.Render(fmt.Sprintf("Attach Media (%s)", v.mediaKind)),
			v.mediaURL.View(),
			hintStyle.Render("enter → attach    ctrl+t → toggle image/video    esc → cancel"))
	default:
		sections = append(sections, v.renderActions(wo))
	}
	return strings.Join(sections, "\n")
}

func (v *detailView) renderFacts(wo workorder.WorkOrder) string {
	var lines []string
	if p, ok := v.app.dir.PropertyByID(wo.PropertyID); ok {
		loc := p.Name
		if wo.UnitNumber != "" {
			loc += " · Unit " + wo.UnitNumber
		}
		lines = append(lines, "Property:  "+loc)
	}
	if id, ok := wo.Assignee(); ok {
		lines = append(lines, "Assigned:  "+v.app.dir.UserName(id))
	}
	if wo.Tenant != nil {
		tenant := wo.Tenant.Name
		if wo.Tenant.Phone != "" {
			tenant += " · " + wo.Tenant.Phone
		}
		lines = append(lines, "Tenant:    "+tenant)
	}
	if len(wo.Tags) > 0 {
		lines = append(lines, "Tags:      "+strings.Join(wo.Tags, ", "))
	}
	return faintStyle.Render(strings.Join(lines, "\n"))
}

func (v *detailView) renderMedia(wo workorder.WorkOrder) string {
	lines := []string{titleStyle.Render(fmt.Sprintf("Media (%d)", len(wo.Media)))}
	for _, m := range wo.Media {
		lines = append(lines, faintStyle.Render(fmt.Sprintf("[%s] %s · %s", m.Kind, m.URL, v.app.dir.UserName(m.UploadedBy))))
	}
	return strings.Join(lines, "\n")
}

func (v *detailView) renderActivity(wo workorder.WorkOrder) string {
	lines := []string{titleStyle.Render("Activity")}
	for _, act := range wo.Activity {
		when := act.Timestamp.Format("Jan 2 15:04")
		lines = append(lines, fmt.Sprintf("%s  %s %s",
			faintStyle.Render(when),
			v.app.dir.UserName(act.UserID),
			v.describeActivity(act)))
	}
	return strings.Join(lines, "\n")
}

func (v *detailView) describeActivity(act workorder.Activity) string {
	switch act.Type {
	case workorder.ActivityCreated:
		return "created this work order"
	case workorder.ActivityNote:
		return "commented: " + act.Details.Content
	case workorder.ActivityStatusChange:
		return fmt.Sprintf("changed status from %s to %s", act.Details.OldStatus, act.Details.NewStatus)
	case workorder.ActivityAssignment:
		if act.Details.AssignedToID != nil {
			return "assigned this to " + v.app.dir.UserName(*act.Details.AssignedToID)
		}
		return "updated the assignment"
	case workorder.ActivityMediaUpload:
		return "uploaded media: " + act.Details.MediaURL
	}
	return string(act.Type)
}

func (v *detailView) renderAssignPicker() string {
	lines := []string{titleStyle.Render("Assign To")}
	for i, u := range v.app.dir.Assignable() {
		row := fmt.Sprintf("%s (%s)", u.Name, u.Role)
		if i == v.assignCursor {
			row = selectedStyle.Render(row)
		}
		lines = append(lines, row)
	}
	lines = append(lines, hintStyle.Render("enter → assign    esc → cancel"))
	return strings.Join(lines, "\n")
}

// renderActions lists only the actions this user can take right now.
func (v *detailView) renderActions(wo workorder.WorkOrder) string {
	user := v.app.user
	var actions []string
	if ops.CanAssign(user.Role, wo.Status) {
		actions = append(actions, "a → assign")
	}
	if ops.CanStartProgress(user, wo) {
		actions = append(actions, "p → start progress")
	}
	if ops.CanCompleteWithEvidence(user, wo) || ops.CanCompleteDirect(user, wo) {
		actions = append(actions, "c → complete")
	}
	if ops.CanHold(user, wo) {
		actions = append(actions, "h → hold")
	}
	if ops.CanClose(user, wo) {
		actions = append(actions, "x → close")
	}
	actions = append(actions, "m → note", "u → media", "esc → back")
	return hintStyle.Render(strings.Join(actions, "    "))
}
