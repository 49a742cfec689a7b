package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"neighbor/internal/api"
)

// inventoryLoadedMsg replaces the inventory table contents.
type inventoryLoadedMsg struct {
	Entries []api.PriceEntry
}

type productsLoadedMsg struct {
	Products []api.Product
}

type inventorySavedMsg struct {
	Notice string
}

type invFormStep int

const (
	invFormNone invFormStep = iota
	invFormProduct
	invFormPrice
)

// inventoryModel is the price management screen: the store's inventory in a
// table, with an add/edit form layered on top.
type inventoryModel struct {
	deps   deps
	styles dashStyles

	tbl     table.Model
	entries []api.PriceEntry
	busy    bool
	status  string
	confirm bool

	// add/edit form
	step     invFormStep
	editing  *api.PriceEntry // nil when adding
	catalog  []api.Product
	filtered []api.Product
	filter   textinput.Model
	pickCur  int
	product  api.Product
	price    textinput.Model
	stock    int

	width  int
	height int
}

func newInventoryModel(d deps, styles dashStyles) inventoryModel {
	filter := textinput.New()
	filter.Placeholder = "Type to filter products"
	price := textinput.New()
	price.Placeholder = "Price, e.g. 1250.00"
	price.CharLimit = 12

	columns := []table.Column{
		{Title: "Product", Width: 32},
		{Title: "Price", Width: 12},
		{Title: "Stock", Width: 8},
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

	return inventoryModel{
		deps:   d,
		styles: styles,
		tbl:    tbl,
		filter: filter,
		price:  price,
		stock:  2,
	}
}

// SetSize updates the page dimensions.
func (m *inventoryModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	if h > 10 {
		m.tbl.SetHeight(h - 10)
	}
}

// Refresh refetches the inventory.
func (m *inventoryModel) Refresh() tea.Cmd {
	m.busy = true
	m.status = ""
	d := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		entries, err := d.API.Inventory(ctx)
		if err != nil {
			return errMsg{Err: err}
		}
		return inventoryLoadedMsg{Entries: entries}
	}
}

func (m inventoryModel) loadCatalog() tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		products, err := d.API.AllProducts(ctx)
		if err != nil {
			return errMsg{Err: err}
		}
		return productsLoadedMsg{Products: products}
	}
}

// parsePrice validates the price input. Decimal parsing keeps "12.99" exact
// instead of trusting float formatting of user input.
func parsePrice(raw string) (float64, error) {
	dec, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if dec.IsNegative() || dec.IsZero() {
		return 0, fmt.Errorf("price must be positive")
	}
	if dec.Exponent() < -2 {
		return 0, fmt.Errorf("at most two decimal places")
	}
	return dec.InexactFloat64(), nil
}

func (m inventoryModel) save() tea.Cmd {
	value, err := parsePrice(m.price.Value())
	if err != nil {
		return func() tea.Msg { return errMsg{Err: err} }
	}
	d := m.deps
	if m.editing != nil {
		id := m.editing.ID
		stock := m.stock
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			if _, err := d.API.UpdatePrice(ctx, id, api.PriceUpdate{Price: value, StockLevel: stock}); err != nil {
				return errMsg{Err: err}
			}
			return inventorySavedMsg{Notice: "Price updated."}
		}
	}
	create := api.PriceCreate{ProductID: m.product.ID, Price: value, StockLevel: m.stock}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if _, err := d.API.AddPrice(ctx, create); err != nil {
			return errMsg{Err: err}
		}
		return inventorySavedMsg{Notice: "Product added."}
	}
}

func (m inventoryModel) deleteSelected() tea.Cmd {
	idx := m.tbl.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return nil
	}
	id := m.entries[idx].ID
	d := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := d.API.DeletePrice(ctx, id); err != nil {
			return errMsg{Err: err}
		}
		return inventorySavedMsg{Notice: "Entry removed."}
	}
}

func (m *inventoryModel) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.filtered = m.filtered[:0]
	for _, p := range m.catalog {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) {
			m.filtered = append(m.filtered, p)
		}
	}
	if m.pickCur >= len(m.filtered) {
		m.pickCur = 0
	}
}

func (m *inventoryModel) setRows() {
	rows := make([]table.Row, 0, len(m.entries))
	for _, e := range m.entries {
		rows = append(rows, table.Row{
			e.Product.Name,
			fmt.Sprintf("₦%.2f", e.Price),
			stockLabel(e.StockLevel),
		})
	}
	m.tbl.SetRows(rows)
}

func (m inventoryModel) Update(msg tea.Msg) (inventoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.step != invFormNone {
			return m.updateForm(msg)
		}
		if m.confirm {
			switch msg.String() {
			case "y", "enter":
				m.confirm = false
				m.busy = true
				return m, m.deleteSelected()
			default:
				m.confirm = false
			}
			return m, nil
		}
		switch msg.String() {
		case "a":
			m.step = invFormProduct
			m.editing = nil
			m.filter.SetValue("")
			m.filter.Focus()
			m.pickCur = 0
			m.price.SetValue("")
			m.stock = 2
			m.status = ""
			m.busy = true
			return m, m.loadCatalog()
		case "e":
			idx := m.tbl.Cursor()
			if idx >= 0 && idx < len(m.entries) {
				entry := m.entries[idx]
				m.editing = &entry
				m.product = entry.Product
				m.price.SetValue(fmt.Sprintf("%.2f", entry.Price))
				m.price.Focus()
				m.stock = entry.StockLevel
				m.step = invFormPrice
				m.status = ""
			}
			return m, nil
		case "d":
			if len(m.entries) > 0 {
				m.confirm = true
			}
			return m, nil
		case "r":
			return m, m.Refresh()
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd

	case inventoryLoadedMsg:
		m.busy = false
		m.entries = msg.Entries
		m.setRows()
		return m, nil

	case productsLoadedMsg:
		m.busy = false
		m.catalog = msg.Products
		m.applyFilter()
		return m, nil

	case inventorySavedMsg:
		m.step = invFormNone
		m.editing = nil
		m.status = m.styles.Success.Render(msg.Notice)
		return m, m.Refresh()

	case errMsg:
		m.busy = false
		m.status = m.styles.Error.Render(msg.Err.Error())
		return m, nil
	}

	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

func (m inventoryModel) updateForm(msg tea.KeyMsg) (inventoryModel, tea.Cmd) {
	switch m.step {
	case invFormProduct:
		switch msg.String() {
		case "esc":
			m.step = invFormNone
			return m, nil
		case "up":
			if m.pickCur > 0 {
				m.pickCur--
			}
			return m, nil
		case "down":
			if m.pickCur < len(m.filtered)-1 {
				m.pickCur++
			}
			return m, nil
		case "enter":
			if m.pickCur < len(m.filtered) {
				m.product = m.filtered[m.pickCur]
				m.step = invFormPrice
				m.price.Focus()
				m.filter.Blur()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd

	case invFormPrice:
		switch msg.String() {
		case "esc":
			m.step = invFormNone
			m.editing = nil
			return m, nil
		case "1", "2", "3":
			m.stock = int(msg.String()[0] - '0')
			return m, nil
		case "enter":
			m.busy = true
			return m, m.save()
		}
		var cmd tea.Cmd
		m.price, cmd = m.price.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m inventoryModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Inventory"))
	sb.WriteString("\n")

	switch m.step {
	case invFormProduct:
		sb.WriteString(m.styles.Subtitle.Render("Pick a product to price"))
		sb.WriteString("\n")
		sb.WriteString(m.filter.View())
		sb.WriteString("\n\n")
		max := 10
		for i, p := range m.filtered {
			if i >= max {
				sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("  ... %d more", len(m.filtered)-max)))
				sb.WriteString("\n")
				break
			}
			line := fmt.Sprintf("%s %s", p.Name, m.styles.Muted.Render(p.Category))
			if i == m.pickCur {
				sb.WriteString(m.styles.Selected.Render("> " + line))
			} else {
				sb.WriteString("  " + line)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(m.styles.Footer.Render("enter pick · esc cancel"))

	case invFormPrice:
		verb := "Add"
		if m.editing != nil {
			verb = "Update"
		}
		sb.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%s %s", verb, m.product.Name)))
		sb.WriteString("\n\n")
		sb.WriteString(m.price.View())
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Stock: %s %s\n",
			m.styles.Bold.Render(stockLabel(m.stock)),
			m.styles.Muted.Render("(press 1 low, 2 medium, 3 high)")))
		if m.status != "" {
			sb.WriteString("\n")
			sb.WriteString(m.status)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(m.styles.Footer.Render("enter save · esc cancel"))

	default:
		if m.busy {
			sb.WriteString(m.styles.Muted.Render("Loading..."))
			sb.WriteString("\n")
		} else if len(m.entries) == 0 {
			sb.WriteString(m.styles.Muted.Render("No inventory yet. Press a to add your first product."))
			sb.WriteString("\n")
		} else {
			sb.WriteString(m.tbl.View())
			sb.WriteString("\n")
		}
		if m.confirm {
			idx := m.tbl.Cursor()
			if idx >= 0 && idx < len(m.entries) {
				sb.WriteString(m.styles.Warning.Render(
					fmt.Sprintf("Remove %s? (y/n)", m.entries[idx].Product.Name)))
				sb.WriteString("\n")
			}
		} else if m.status != "" {
			sb.WriteString(m.status)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(m.styles.Footer.Render("a add · e edit · d delete · r refresh · F2 analytics"))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}
