package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gatherly/gatherly/internal/events"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Enter    key.Binding
	Back     key.Binding
	Like     key.Binding
	Save     key.Binding
	Search   key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PrevPage: key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/p", "prev page")),
	NextPage: key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/n", "next page")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Like:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "like")),
	Save:     key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "save")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (m *Model) clampSelection() {
	total := events.TotalPages(len(m.visible()), m.pageSize())
	if total == 0 {
		m.page = 1
		m.selected = 0
		return
	}
	if m.page > total {
		m.page = total
	}
	if n := len(m.currentPage()); m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.filtering {
		return m.handleSearchKeys(msg)
	}

	switch m.currentView {
	case ViewLogin:
		return m.handleLoginKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewHelp:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		m.currentView = ViewGrid
		return m, nil
	default:
		return m.handleGridKeys(msg)
	}
}

func (m Model) handleGridKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.currentView = ViewHelp
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.selected < len(m.currentPage())-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, keys.PrevPage):
		if m.page > 1 {
			m.page--
			m.selected = 0
		}
		return m, nil

	case key.Matches(msg, keys.NextPage):
		if m.page < events.TotalPages(len(m.visible()), m.pageSize()) {
			m.page++
			m.selected = 0
		}
		return m, nil

	case key.Matches(msg, keys.Enter):
		if ev, ok := m.selectedEvent(); ok {
			m.currentView = ViewDetail
			return m, m.detailCmd(ev.ID)
		}
		return m, nil

	case key.Matches(msg, keys.Like):
		return m.guardedToggle(true)

	case key.Matches(msg, keys.Save):
		return m.guardedToggle(false)

	case key.Matches(msg, keys.Search):
		m.filtering = true
		m.queryInput.SetValue(m.filter.Query)
		m.queryInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Refresh):
		m.fetched[m.source] = true
		return m, m.fetchCmd(m.source)
	}

	switch msg.String() {
	case "1":
		return m.switchSource(SourceAll)
	case "2":
		return m.switchSource(SourceLiked)
	case "3":
		return m.switchSource(SourceSaved)
	case "4":
		return m.switchSource(SourceMine)
	}

	return m, nil
}

// guardedToggle likes or saves the selected event after checking the
// session; anonymous users are routed to the login view instead.
func (m Model) guardedToggle(like bool) (Model, tea.Cmd) {
	ev, ok := m.selectedEvent()
	if !ok {
		return m, nil
	}
	if !m.session.IsAuthenticated() {
		m.intended = m.source
		m.currentView = ViewLogin
		m.loginErr = ""
		m.emailInput.Focus()
		m.loginFocus = 0
		return m, textinput.Blink
	}
	if like {
		return m, m.toggleLikeCmd(ev)
	}
	return m, m.toggleSaveCmd(ev)
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Back):
		m.toggler.Invalidate()
		m.currentView = ViewGrid
		return m, nil

	case key.Matches(msg, keys.Like), key.Matches(msg, keys.Save):
		ev := m.detail.Event()
		if ev == nil {
			return m, nil
		}
		if !m.session.IsAuthenticated() {
			m.intended = m.source
			m.currentView = ViewLogin
			m.emailInput.Focus()
			m.loginFocus = 0
			return m, textinput.Blink
		}
		if key.Matches(msg, keys.Like) {
			return m, m.toggleLikeCmd(*ev)
		}
		return m, m.toggleSaveCmd(*ev)
	}
	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filter.Query = m.queryInput.Value()
		m.filtering = false
		m.queryInput.Blur()
		m.page = 1
		m.selected = 0
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.queryInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.queryInput, cmd = m.queryInput.Update(msg)
	return m, cmd
}

func (m Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loggingIn {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.currentView = ViewGrid
		return m, nil

	case tea.KeyTab, tea.KeyShiftTab:
		m.loginFocus = 1 - m.loginFocus
		if m.loginFocus == 0 {
			m.emailInput.Focus()
			m.passInput.Blur()
		} else {
			m.passInput.Focus()
			m.emailInput.Blur()
		}
		return m, textinput.Blink

	case tea.KeyEnter:
		if m.loginFocus == 0 {
			m.loginFocus = 1
			m.passInput.Focus()
			m.emailInput.Blur()
			return m, textinput.Blink
		}
		email := m.emailInput.Value()
		password := m.passInput.Value()
		if email == "" || password == "" {
			m.loginErr = "email and password are required"
			return m, nil
		}
		m.loggingIn = true
		m.loginErr = ""
		return m, m.loginCmd(email, password)
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passInput, cmd = m.passInput.Update(msg)
	}
	return m, cmd
}
