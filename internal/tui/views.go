package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gatherly/gatherly/internal/api"
	"github.com/gatherly/gatherly/internal/events"
)

// View renders the current view
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  " + m.spinner.View() + " starting..."
	}

	switch m.currentView {
	case ViewDetail:
		return m.detailView()
	case ViewLogin:
		return m.loginView()
	case ViewHelp:
		return m.helpView()
	default:
		return m.gridView()
	}
}

func (m Model) header() string {
	var tabs []string
	for src := SourceAll; src <= SourceMine; src++ {
		label := fmt.Sprintf("%d %s", int(src)+1, src)
		if src == m.source {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}

	who := "anonymous"
	if snap := m.session.Snapshot(); snap.User != nil {
		who = snap.User.Email
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Title.Render("Gatherly"),
		strings.Join(tabs, ""),
		m.styles.Meta.Render("  "+who),
	)
}

func (m Model) gridView() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	coll := m.collections[m.source]
	switch {
	case coll.Loading():
		b.WriteString("  " + m.spinner.View() + " loading " + m.source.String() + "...\n")
	case coll.Err() != "":
		b.WriteString("  " + m.styles.Error.Render(coll.Err()) + "\n")
	case len(m.visible()) == 0:
		b.WriteString("  " + m.styles.Meta.Render("no events to show") + "\n")
	default:
		for i, ev := range m.currentPage() {
			b.WriteString(m.renderCard(ev, i == m.selected))
			b.WriteString("\n")
		}
		b.WriteString(m.pager())
	}

	if m.filtering {
		b.WriteString("\n  search: " + m.queryInput.View() + "\n")
	} else if m.filter.Query != "" {
		b.WriteString("\n  " + m.styles.Meta.Render("search: "+m.filter.Query+" (press / to change)") + "\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n  " + m.styles.Status.Render(m.statusMsg) + "\n")
	}

	b.WriteString("\n" + m.styles.Help.Render("  ↑/↓ select • ←/→ page • enter open • L like • S save • / search • 1-4 lists • ? help • q quit"))
	return b.String()
}

func (m Model) renderCard(ev api.Event, selected bool) string {
	marks := ""
	if ev.IsLiked {
		marks += " ♥"
	}
	if ev.IsSaved {
		marks += " ★"
	}

	price := m.styles.Free.Render("free")
	if ev.Pricing == api.PricingPaid {
		price = m.styles.Paid.Render("paid")
	}

	line1 := m.styles.EventTitle.Render(ev.Title) + marks
	line2 := m.styles.Meta.Render(fmt.Sprintf("%s · %s · ", ev.Date, ev.Location)) + price
	if m.source == SourceMine && ev.ApprovalStatus != api.ApprovalApproved {
		line2 += "  " + m.styles.Badge.Render(ev.ApprovalStatus)
	}

	style := m.styles.Card
	if selected {
		style = m.styles.Selected
	}
	width := m.width - 6
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(line1 + "\n" + line2)
}

func (m Model) pager() string {
	total := events.TotalPages(len(m.visible()), m.pageSize())
	if total <= 1 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n ")
	for _, n := range events.PageNumbers(m.page, total) {
		label := fmt.Sprintf("%d", n)
		if n == m.page {
			b.WriteString(m.styles.PagerCur.Render(label))
		} else {
			b.WriteString(m.styles.Pager.Render(label))
		}
	}
	b.WriteString(m.styles.Meta.Render(fmt.Sprintf(" of %d", total)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) detailView() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	switch {
	case m.detail.Loading():
		b.WriteString("  " + m.spinner.View() + " loading event...\n")
	case m.detail.Err() != "":
		b.WriteString("  " + m.styles.Error.Render(m.detail.Err()) + "\n")
	case m.detail.Event() == nil:
		b.WriteString("  " + m.styles.Meta.Render("event not found") + "\n")
	default:
		ev := *m.detail.Event()
		row := func(label, value string) {
			if value == "" {
				return
			}
			b.WriteString("  " + m.styles.Label.Render(label) + " " + m.styles.Value.Render(value) + "\n")
		}

		marks := ""
		if ev.IsLiked {
			marks += " ♥"
		}
		if ev.IsSaved {
			marks += " ★"
		}
		b.WriteString("  " + m.styles.EventTitle.Render(ev.Title) + marks + "\n\n")
		row("when:", ev.Date)
		row("where:", ev.Location)
		row("category:", ev.Category)
		row("type:", ev.EventType)
		row("language:", ev.Language)
		row("ages:", ev.AgeGroup)
		row("price:", ev.Pricing)
		row("likes:", fmt.Sprintf("%d", ev.LikesCount))
		if ev.Description != "" {
			b.WriteString("\n  " + ev.Description + "\n")
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n  " + m.styles.Status.Render(m.statusMsg) + "\n")
	}
	b.WriteString("\n" + m.styles.Help.Render("  L like • S save • esc back • q quit"))
	return b.String()
}

func (m Model) loginView() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")
	b.WriteString("  " + m.styles.EventTitle.Render("Sign in to continue") + "\n")
	b.WriteString("  " + m.styles.Meta.Render("you need an account for "+m.intended.String()) + "\n\n")
	b.WriteString("  " + m.emailInput.View() + "\n")
	b.WriteString("  " + m.passInput.View() + "\n")

	if m.loggingIn {
		b.WriteString("\n  " + m.spinner.View() + " signing in...\n")
	}
	if m.loginErr != "" {
		b.WriteString("\n  " + m.styles.Error.Render(m.loginErr) + "\n")
	}

	b.WriteString("\n" + m.styles.Help.Render("  tab switch field • enter submit • esc back"))
	return b.String()
}

func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")
	rows := [][2]string{
		{"↑/k ↓/j", "move selection"},
		{"←/p →/n", "previous / next page"},
		{"enter", "open event details"},
		{"esc", "back to the grid"},
		{"L", "like the selected event"},
		{"S", "save the selected event"},
		{"/", "search title, description and location"},
		{"r", "refresh the current list"},
		{"1 2 3 4", "all / liked / saved / my events"},
		{"q", "quit"},
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n", m.styles.Label.Render(fmt.Sprintf("%-8s", r[0])), r[1]))
	}
	b.WriteString("\n" + m.styles.Help.Render("  press any key to go back"))
	return b.String()
}
