package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"neighbor/internal/api"
	"neighbor/internal/shoppinglist"
)

// listChangedMsg signals that the reconciler's cache moved; the page re-reads
// it on receipt. It carries no data because the cache is the single source.
type listChangedMsg struct{}

// ListPageModel is the shopping list screen.
type ListPageModel struct {
	deps   Deps
	styles Styles

	list    api.ShoppingList
	loaded  bool
	cursor  int
	busy    bool
	status  string
	confirm bool

	width  int
	height int
}

// NewListPageModel creates the shopping list page.
func NewListPageModel(deps Deps, styles Styles) ListPageModel {
	return ListPageModel{deps: deps, styles: styles}
}

// SetSize updates the page dimensions.
func (m *ListPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Refresh refetches the list. The app calls this on every focus; the list
// may have changed from another device since it was last shown.
func (m *ListPageModel) Refresh() tea.Cmd {
	m.busy = true
	m.status = ""
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := deps.List.Refresh(ctx); err != nil {
			return ErrMsg{Err: err}
		}
		return listChangedMsg{}
	}
}

func (m ListPageModel) mutate(itemID, quantity int) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := deps.List.SetQuantity(ctx, itemID, quantity); err != nil {
			return ErrMsg{Err: err}
		}
		return listChangedMsg{}
	}
}

// Update handles messages.
func (m ListPageModel) Update(msg tea.Msg) (ListPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirm {
			switch msg.String() {
			case "y", "enter":
				m.confirm = false
				if item, ok := m.selected(); ok {
					m.busy = true
					return m, m.mutate(item.ID, 0)
				}
			default:
				m.confirm = false
			}
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.list.Items)-1 {
				m.cursor++
			}
		case "+", "=", "right":
			if item, ok := m.selected(); ok && !m.busy {
				m.busy = true
				return m, m.mutate(item.ID, item.Quantity+1)
			}
		case "-", "left":
			// Decrementing the last unit removes the line; a zero-quantity
			// item never exists.
			if item, ok := m.selected(); ok && !m.busy {
				m.busy = true
				return m, m.mutate(item.ID, item.Quantity-1)
			}
		case "d", "delete":
			if _, ok := m.selected(); ok {
				m.confirm = true
			}
		case "r":
			return m, m.Refresh()
		}
		return m, nil

	case listChangedMsg:
		m.busy = false
		m.list, m.loaded = m.deps.List.List()
		if m.cursor >= len(m.list.Items) && m.cursor > 0 {
			m.cursor = len(m.list.Items) - 1
		}
		return m, nil

	case ErrMsg:
		m.busy = false
		if errors.Is(msg.Err, shoppinglist.ErrNoSession) {
			m.status = m.styles.Warning.Render("Sign in to use your shopping list.")
		} else {
			m.status = m.styles.Error.Render(humanError(msg.Err))
		}
		// The cache was not advanced; re-read it so the view shows the last
		// server-confirmed state.
		m.list, m.loaded = m.deps.List.List()
		return m, nil
	}
	return m, nil
}

func (m ListPageModel) selected() (api.ListItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.list.Items) {
		return api.ListItem{}, false
	}
	return m.list.Items[m.cursor], true
}

// View renders the page.
func (m ListPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Shopping List"))
	sb.WriteString("\n")

	switch {
	case !m.loaded && m.busy:
		sb.WriteString(m.styles.Muted.Render("Loading..."))
		sb.WriteString("\n")
	case len(m.list.Items) == 0:
		sb.WriteString(m.styles.Muted.Render("Your list is empty. Add products from search."))
		sb.WriteString("\n")
	default:
		for i, item := range m.list.Items {
			line := fmt.Sprintf("%2dx %-28s %s  %s",
				item.Quantity,
				truncate(item.ProductName, 28),
				m.styles.Price.Render(fmt.Sprintf("₦%.2f", item.PriceAtAddition*float64(item.Quantity))),
				m.styles.Muted.Render(item.StoreName))
			if i == m.cursor {
				line = m.styles.Selected.Render("> " + line)
			} else {
				line = "  " + line
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString(m.styles.RenderDivider(44))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%-33s %s\n",
			m.styles.Bold.Render("Total"),
			m.styles.Price.Render(fmt.Sprintf("₦%.2f", m.list.TotalPrice))))
	}

	if m.confirm {
		if item, ok := m.selected(); ok {
			sb.WriteString("\n")
			sb.WriteString(m.styles.Warning.Render(fmt.Sprintf("Remove %s? (y/n)", item.ProductName)))
			sb.WriteString("\n")
		}
	} else if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(m.status)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("+/- quantity · d remove · r refresh · F1 search"))
	return m.styles.Content.Render(sb.String())
}
