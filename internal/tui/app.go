// internal/tui/app.go
//
// The main TUI for the work order manager. It uses bubbletea, which
// follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen
//
// App owns the shared state (store, directory, current user) and the
// top-level navigation; each screen lives in its own file as a sub-model
// with update/view methods.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simchap123/Work-orders-for-PM/internal/config"
	"github.com/simchap123/Work-orders-for-PM/internal/directory"
	"github.com/simchap123/Work-orders-for-PM/internal/logbook"
	"github.com/simchap123/Work-orders-for-PM/internal/ops"
	"github.com/simchap123/Work-orders-for-PM/internal/seed"
	"github.com/simchap123/Work-orders-for-PM/internal/store"
	"github.com/simchap123/Work-orders-for-PM/internal/suggest"
	"github.com/simchap123/Work-orders-for-PM/internal/workorder"
)

// view represents which screen we're on
type view int

const (
	viewDashboard view = iota
	viewOrders
	viewDetail
	viewCreate
	viewSettings
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithSuggestClient overrides the AI suggestion client.
func WithSuggestClient(client *suggest.Client) AppOption {
	return func(a *App) {
		if client != nil {
			a.suggest = client
		}
	}
}

// WithDataset bypasses the configured seed file and starts from the given
// dataset instead.
func WithDataset(data seed.Data) AppOption {
	return func(a *App) {
		a.dataset = &data
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	config  *config.Config
	dir     *directory.Directory
	store   *store.Store
	ops     *ops.Service
	logbook *logbook.Logbook
	suggest *suggest.Client

	// tags is the vocabulary offered by the create form.
	tags []string

	// user is who the session currently acts as.
	user directory.User

	view     view
	orders   *ordersView
	detail   *detailView
	create   *createView
	settings *settingsView

	dataset    *seed.Data
	statusMsg  string
	dashCursor int

	width  int
	height int
}

// NewApp creates a new App instance rooted at baseDir.
func NewApp(baseDir string, opts ...AppOption) (*App, error) {
	if err := config.InitAppDir(baseDir); err != nil {
		return nil, err
	}
	cfg, err := config.New(baseDir)
	if err != nil {
		return nil, err
	}

	app := &App{config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}

	data := seed.Data{}
	if app.dataset != nil {
		data = *app.dataset
	} else {
		data, err = seed.Load(cfg.SeedPath())
		if err != nil {
			return nil, err
		}
	}

	app.dir = directory.New(data.Users, data.Properties)
	app.store = store.New(data.WorkOrders, app.dir.RoleOf)
	app.tags = data.AvailableTags

	lb, lbErr := logbook.New(cfg.LogPath())
	if lbErr == nil {
		app.logbook = lb
	}
	app.ops = ops.New(app.store, app.dir, app.logbook)

	if app.suggest == nil {
		app.suggest = suggest.NewClient(cfg.APIKey(), cfg.File.Suggestions.Model)
	}

	user, ok := app.dir.UserByID(cfg.File.DefaultUserID)
	if !ok {
		users := app.dir.Users()
		if len(users) == 0 {
			return nil, fmt.Errorf("tui: dataset has no users")
		}
		user = users[0]
	}
	app.user = user

	app.orders = newOrdersView(app)
	app.settings = newSettingsView(app)
	app.logInfo("Session opened as %s (%s)", user.Name, user.Role)
	return app, nil
}

// User returns who the session currently acts as.
func (a *App) User() directory.User { return a.user }

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Warn(format, args...)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	switch a.view {
	case viewDashboard:
		return a, a.updateDashboard(msg)
	case viewOrders:
		return a, a.orders.update(msg)
	case viewDetail:
		if a.detail == nil {
			a.view = viewOrders
			return a, nil
		}
		return a, a.detail.update(msg)
	case viewCreate:
		if a.create == nil {
			a.view = viewDashboard
			return a, nil
		}
		return a, a.create.update(msg)
	case viewSettings:
		return a, a.settings.update(msg)
	}
	return a, nil
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	contentWidth := width - 4

	var content string
	switch a.view {
	case viewDashboard:
		content = a.renderDashboard(contentWidth)
	case viewOrders:
		content = a.orders.view(contentWidth)
	case viewDetail:
		if a.detail != nil {
			content = a.detail.view(contentWidth)
		}
	case viewCreate:
		if a.create != nil {
			content = a.create.view(contentWidth)
		}
	case viewSettings:
		content = a.settings.view(contentWidth)
	}

	sections := []string{
		a.renderHeader(),
		panelStyle.Width(max(40, width-2)).Render(content),
	}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, footerStyle.Render(a.statusMsg))
	return strings.Join(sections, "\n")
}

func (a *App) renderHeader() string {
	title := headerStyle.Render("⬢ WORK ORDERS")
	who := faintStyle.Render(fmt.Sprintf("  %s · %s", a.user.Name, a.user.Role))
	return lipgloss.JoinHorizontal(lipgloss.Bottom, title, who)
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(5)
	if len(lines) == 0 {
		return ""
	}
	head := titleStyle.Render("LOG")
	body := faintStyle.Render(strings.Join(lines, "\n"))
	return panelStyle.Render(head + "\n" + body)
}

// switchUser changes who the session acts as.
func (a *App) switchUser(u directory.User) {
	a.user = u
	a.statusMsg = fmt.Sprintf("Now acting as %s (%s)", u.Name, u.Role)
	a.logInfo("Switched user to %s (%s)", u.Name, u.Role)
}

// openDetail navigates to a work order's detail screen.
func (a *App) openDetail(id int) tea.Cmd {
	wo, ok := a.store.Find(id)
	if !ok {
		a.statusMsg = fmt.Sprintf("%s no longer exists", orderRef(id))
		return nil
	}
	a.detail = newDetailView(a, wo.ID)
	a.view = viewDetail
	a.statusMsg = ""
	return nil
}

func (a *App) openOrders() tea.Cmd {
	a.view = viewOrders
	a.detail = nil
	a.statusMsg = ""
	return nil
}

func (a *App) openCreate() tea.Cmd {
	if !ops.CanCreate(a.user.Role) {
		a.statusMsg = fmt.Sprintf("%s cannot create work orders", a.user.Role)
		return nil
	}
	a.create = newCreateView(a)
	a.view = viewCreate
	a.statusMsg = ""
	return textinput.Blink
}

func (a *App) openDashboard() tea.Cmd {
	a.view = viewDashboard
	a.detail = nil
	a.create = nil
	a.statusMsg = ""
	return nil
}

func (a *App) openSettings() tea.Cmd {
	a.settings.reset()
	a.view = viewSettings
	a.statusMsg = ""
	return nil
}

// snapshot returns the current work order collection, newest first.
func (a *App) snapshot() []workorder.WorkOrder {
	return a.store.Snapshot()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
