package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gatherly/gatherly/internal/api"
	"github.com/gatherly/gatherly/internal/events"
	"github.com/gatherly/gatherly/internal/interactions"
	"github.com/gatherly/gatherly/internal/session"
)

// ViewType represents the current view being displayed
type ViewType int

// View type constants
const (
	// ViewGrid is the paginated event grid
	ViewGrid ViewType = iota
	// ViewDetail shows a single event
	ViewDetail
	// ViewLogin is the in-app login form
	ViewLogin
	// ViewHelp is the help screen
	ViewHelp
)

// Source selects which event listing the grid shows
type Source int

// Grid sources; all but SourceAll are guarded views
const (
	SourceAll Source = iota
	SourceLiked
	SourceSaved
	SourceMine
)

func (s Source) String() string {
	switch s {
	case SourceLiked:
		return "liked"
	case SourceSaved:
		return "saved"
	case SourceMine:
		return "my events"
	default:
		return "all events"
	}
}

// Model is the browse TUI state. All remote work happens in tea.Cmd
// closures; Update applies their results.
type Model struct {
	session *session.Manager
	toggler *interactions.Toggler

	// one collection per source, fetched lazily on first visit
	collections map[Source]*events.Collection
	fetched     map[Source]bool

	currentView ViewType
	source      Source
	// intended is the source to resume after a login forced by the guard
	intended Source

	filter   events.Filter
	page     int
	selected int

	width  int
	height int
	ready  bool

	quitting  bool
	statusMsg string

	detail *events.Detail

	spinner     spinner.Model
	queryInput  textinput.Model
	filtering   bool
	emailInput  textinput.Model
	passInput   textinput.Model
	loginFocus  int
	loggingIn   bool
	loginErr    string
	styles      Styles
}

// NewModel creates the browse TUI over an existing session and client
func NewModel(mgr *session.Manager, client *api.Client) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	query := textinput.New()
	query.Placeholder = "search title, description, location"
	query.CharLimit = 64

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.EchoMode = textinput.EchoPassword
	pass.CharLimit = 128

	return Model{
		session: mgr,
		toggler: interactions.NewToggler(client),
		collections: map[Source]*events.Collection{
			SourceAll:   events.NewCollection(client),
			SourceLiked: events.NewLikedCollection(client),
			SourceSaved: events.NewSavedCollection(client),
			SourceMine:  events.NewMyCollection(client),
		},
		fetched:    make(map[Source]bool),
		detail:     events.NewDetail(client),
		spinner:    sp,
		queryInput: query,
		emailInput: email,
		passInput:  pass,
		page:       1,
		styles:     DefaultStyles(),
	}
}

// Messages produced by background commands

type fetchDoneMsg struct {
	source Source
}

type toggleDoneMsg struct {
	err error
}

type loginDoneMsg struct {
	ok bool
}

type detailDoneMsg struct{}

// Init starts the spinner and loads the initial grid
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd(SourceAll))
}

func (m Model) fetchCmd(src Source) tea.Cmd {
	coll := m.collections[src]
	return func() tea.Msg {
		coll.Fetch(context.Background())
		return fetchDoneMsg{source: src}
	}
}

func (m Model) toggleLikeCmd(ev api.Event) tea.Cmd {
	coll := m.collections[m.source]
	liked := m.source == SourceLiked
	return func() tea.Msg {
		_, err := m.toggler.ToggleLike(context.Background(), ev, func(updated api.Event) {
			if liked && !updated.IsLiked {
				// untoggled from the liked listing: drop it locally
				coll.RemoveLocal(updated.ID)
				return
			}
			coll.ApplyUpdate(updated)
			m.detail.ApplyUpdate(updated)
		})
		return toggleDoneMsg{err: err}
	}
}

func (m Model) toggleSaveCmd(ev api.Event) tea.Cmd {
	coll := m.collections[m.source]
	saved := m.source == SourceSaved
	return func() tea.Msg {
		_, err := m.toggler.ToggleSave(context.Background(), ev, func(updated api.Event) {
			if saved && !updated.IsSaved {
				coll.RemoveLocal(updated.ID)
				return
			}
			coll.ApplyUpdate(updated)
			m.detail.ApplyUpdate(updated)
		})
		return toggleDoneMsg{err: err}
	}
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	mgr := m.session
	return func() tea.Msg {
		ok := mgr.Login(context.Background(), api.LoginCredentials{Email: email, Password: password})
		return loginDoneMsg{ok: ok}
	}
}

func (m Model) detailCmd(id int) tea.Cmd {
	d := m.detail
	return func() tea.Msg {
		d.Fetch(context.Background(), id)
		return detailDoneMsg{}
	}
}

// visible returns the filtered events of the current source
func (m Model) visible() []api.Event {
	return m.filter.Apply(m.collections[m.source].Events())
}

// pageSize derives the grid page size from the terminal width breakpoint
func (m Model) pageSize() int {
	return events.PageSize(m.width)
}

// currentPage returns the events on the current page
func (m Model) currentPage() []api.Event {
	return events.Paginate(m.visible(), m.page, m.pageSize())
}

// selectedEvent returns the highlighted event, if any
func (m Model) selectedEvent() (api.Event, bool) {
	page := m.currentPage()
	if m.selected < 0 || m.selected >= len(page) {
		return api.Event{}, false
	}
	return page[m.selected], true
}

// switchSource navigates to a grid source, routing through the guard for
// the authenticated listings
func (m Model) switchSource(src Source) (Model, tea.Cmd) {
	if src != SourceAll {
		result := session.Guard(m.session.Snapshot(), src.String())
		switch result.Decision {
		case session.DecisionWait:
			return m, nil
		case session.DecisionRedirect:
			m.intended = src
			m.currentView = ViewLogin
			m.loginErr = ""
			m.emailInput.Focus()
			m.loginFocus = 0
			return m, textinput.Blink
		}
	}

	m.source = src
	m.page = 1
	m.selected = 0
	m.currentView = ViewGrid
	if !m.fetched[src] {
		m.fetched[src] = true
		return m, m.fetchCmd(src)
	}
	return m, nil
}

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.clampSelection()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchDoneMsg:
		if msg.source == m.source {
			m.clampSelection()
		}
		if err := m.collections[msg.source].Err(); err != "" {
			m.statusMsg = err
		}
		return m, nil

	case toggleDoneMsg:
		if msg.err != nil {
			m.statusMsg = "failed to update: " + msg.err.Error()
		} else {
			m.statusMsg = ""
		}
		return m, nil

	case detailDoneMsg:
		return m, nil

	case loginDoneMsg:
		m.loggingIn = false
		if !msg.ok {
			m.loginErr = m.session.LastError()
			return m, nil
		}
		m.passInput.SetValue("")
		return m.switchSource(m.intended)
	}

	return m, nil
}
