package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/gatherly/internal/api"
	"github.com/gatherly/gatherly/internal/session"
	"github.com/gatherly/gatherly/internal/token"
)

func seedEvents(n int) []api.Event {
	out := make([]api.Event, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, api.Event{
			ID:       i,
			Title:    fmt.Sprintf("Event %d", i),
			Date:     "2026-05-01",
			Location: "Rotterdam",
			Pricing:  api.PricingFree,
		})
	}
	return out
}

func newTestModel(t *testing.T, handler http.Handler, tok string) (Model, *session.Manager) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := token.NewStore(filepath.Join(t.TempDir(), "token"))
	if tok != "" {
		require.NoError(t, tokens.Set(tok))
	}

	client := api.NewClient(server.URL, tokens)
	mgr := session.NewManager(client)
	mgr.Start(context.Background())
	return NewModel(mgr, client), mgr
}

func browseHandler(evs []api.Event) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/user/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.User{ID: 1, Email: "ada@example.com"})
	})
	mux.HandleFunc("GET /events/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(evs)
	})
	mux.HandleFunc("GET /events/liked/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(evs[:1])
	})
	return mux
}

// runCmd executes a command synchronously and feeds the result back
func runCmd(m Model, cmd tea.Cmd) Model {
	if cmd == nil {
		return m
	}
	msg := cmd()
	if msg == nil {
		return m
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestInitialFetchFillsGrid(t *testing.T) {
	m, _ := newTestModel(t, browseHandler(seedEvents(3)), "")

	m = runCmd(m, m.fetchCmd(SourceAll))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)

	assert.Len(t, m.visible(), 3)
	assert.Contains(t, m.View(), "Event 1")
}

func TestGuardedSourceRedirectsAnonymousToLogin(t *testing.T) {
	m, _ := newTestModel(t, browseHandler(nil), "")

	next, _ := m.switchSource(SourceLiked)

	assert.Equal(t, ViewLogin, next.currentView)
	assert.Equal(t, SourceLiked, next.intended)
	// the grid source must not change under the user
	assert.Equal(t, SourceAll, next.source)
}

func TestGuardedSourceAllowsAuthenticated(t *testing.T) {
	m, mgr := newTestModel(t, browseHandler(seedEvents(2)), "tok123")
	require.True(t, mgr.IsAuthenticated())

	next, cmd := m.switchSource(SourceLiked)
	require.NotNil(t, cmd)
	next = runCmd(next, cmd)

	assert.Equal(t, ViewGrid, next.currentView)
	assert.Equal(t, SourceLiked, next.source)
	assert.Len(t, next.visible(), 1)
}

func TestPagingKeysMovePages(t *testing.T) {
	m, _ := newTestModel(t, browseHandler(seedEvents(20)), "")
	m = runCmd(m, m.fetchCmd(SourceAll))

	// width 100 gives pages of 8
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(Model)
	assert.Equal(t, 2, m.page)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(Model)
	assert.Equal(t, 1, m.page)

	// selection stays within the page
	for i := 0; i < 12; i++ {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(Model)
	}
	assert.Equal(t, 7, m.selected)
}

func TestSearchNarrowsGrid(t *testing.T) {
	evs := seedEvents(3)
	evs[1].Title = "Jazz night"
	m, _ := newTestModel(t, browseHandler(evs), "")
	m = runCmd(m, m.fetchCmd(SourceAll))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = next.(Model)
	require.True(t, m.filtering)

	for _, r := range "jazz" {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	assert.False(t, m.filtering)
	require.Len(t, m.visible(), 1)
	assert.Equal(t, "Jazz night", m.visible()[0].Title)
}

func TestLikeWhileAnonymousOpensLogin(t *testing.T) {
	m, _ := newTestModel(t, browseHandler(seedEvents(1)), "")
	m = runCmd(m, m.fetchCmd(SourceAll))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'L'}})
	m = next.(Model)

	assert.Equal(t, ViewLogin, m.currentView)
}

func TestHelpViewListsBindings(t *testing.T) {
	m, _ := newTestModel(t, browseHandler(nil), "")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = next.(Model)
	assert.Equal(t, ViewHelp, m.currentView)
	assert.Contains(t, m.View(), "like the selected event")
}
