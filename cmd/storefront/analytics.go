package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"neighbor/internal/api"
)

type viewCountsMsg struct {
	Counts []api.ViewCount
}

// analyticsModel shows how often shoppers opened each of the store's
// products. View logging is best effort on the shopper side, so these are
// trends, not exact counts.
type analyticsModel struct {
	deps   deps
	styles dashStyles

	tbl    table.Model
	counts []api.ViewCount
	busy   bool
	status string

	width  int
	height int
}

func newAnalyticsModel(d deps, styles dashStyles) analyticsModel {
	columns := []table.Column{
		{Title: "Product", Width: 36},
		{Title: "Views", Width: 8},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true).Foreground(lipgloss.Color("#2E7D32"))
	ts.Selected = ts.Selected.Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#2E7D32"))
	tbl.SetStyles(ts)

	return analyticsModel{deps: d, styles: styles, tbl: tbl}
}

// SetSize updates the page dimensions.
func (m *analyticsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	if h > 10 {
		m.tbl.SetHeight(h - 10)
	}
}

// Refresh refetches the view counts.
func (m *analyticsModel) Refresh() tea.Cmd {
	m.busy = true
	m.status = ""
	d := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		counts, err := d.API.StoreViewCounts(ctx)
		if err != nil {
			return errMsg{Err: err}
		}
		return viewCountsMsg{Counts: counts}
	}
}

func (m analyticsModel) Update(msg tea.Msg) (analyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.Refresh()
		}

	case viewCountsMsg:
		m.busy = false
		m.counts = msg.Counts
		rows := make([]table.Row, 0, len(m.counts))
		for _, c := range m.counts {
			rows = append(rows, table.Row{c.ProductName, fmt.Sprintf("%d", c.ViewCount)})
		}
		m.tbl.SetRows(rows)
		return m, nil

	case errMsg:
		m.busy = false
		m.status = m.styles.Error.Render(msg.Err.Error())
		return m, nil
	}

	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

func (m analyticsModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Product views"))
	sb.WriteString("\n")

	switch {
	case m.busy:
		sb.WriteString(m.styles.Muted.Render("Loading..."))
		sb.WriteString("\n")
	case m.status != "":
		sb.WriteString(m.status)
		sb.WriteString("\n")
	case len(m.counts) == 0:
		sb.WriteString(m.styles.Muted.Render("No views recorded yet."))
		sb.WriteString("\n")
	default:
		sb.WriteString(m.tbl.View())
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("r refresh · F1 inventory"))
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}
