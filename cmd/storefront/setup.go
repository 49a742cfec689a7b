package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"neighbor/internal/api"
)

// storeCreatedMsg tells the root model the owner now has a store.
type storeCreatedMsg struct {
	Store api.StoreSimple
}

type setupStatesMsg struct{ States []api.State }
type setupCitiesMsg struct{ Cities []api.City }
type setupMarketsMsg struct{ Markets []api.Market }

type setupStep int

const (
	setupName setupStep = iota
	setupState
	setupCity
	setupMarket
)

// setupModel is the first-run store creation flow: name the store, then walk
// the state, city and market hierarchy to place it.
type setupModel struct {
	deps   deps
	styles dashStyles

	step    setupStep
	name    textinput.Model
	states  []api.State
	cities  []api.City
	markets []api.Market
	cursor  int
	busy    bool
	status  string

	width  int
	height int
}

func newSetupModel(d deps, styles dashStyles) setupModel {
	name := textinput.New()
	name.Placeholder = "Store name"
	name.CharLimit = 80
	name.Focus()
	return setupModel{deps: d, styles: styles, name: name}
}

// SetSize updates the page dimensions.
func (m *setupModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Start resets the flow.
func (m *setupModel) Start() tea.Cmd {
	m.step = setupName
	m.cursor = 0
	m.status = ""
	m.name.SetValue("")
	m.name.Focus()
	return textinput.Blink
}

func (m setupModel) loadStates() tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		states, err := d.API.States(ctx)
		if err != nil {
			return errMsg{Err: err}
		}
		return setupStatesMsg{States: states}
	}
}

func (m setupModel) loadCities(stateID int) tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		cities, err := d.API.CitiesForState(ctx, stateID)
		if err != nil {
			return errMsg{Err: err}
		}
		return setupCitiesMsg{Cities: cities}
	}
}

func (m setupModel) loadMarkets(cityID int) tea.Cmd {
	d := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		markets, err := d.API.MarketsForCity(ctx, cityID)
		if err != nil {
			return errMsg{Err: err}
		}
		return setupMarketsMsg{Markets: markets}
	}
}

func (m setupModel) create(marketID int) tea.Cmd {
	d := m.deps
	name := strings.TrimSpace(m.name.Value())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		store, err := d.API.CreateStore(ctx, api.StoreCreate{Name: name, MarketAreaID: marketID})
		if err != nil {
			return errMsg{Err: err}
		}
		return storeCreatedMsg{Store: store}
	}
}

func (m setupModel) Update(msg tea.Msg) (setupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.step == setupName {
			if msg.String() == "enter" {
				if strings.TrimSpace(m.name.Value()) == "" {
					m.status = m.styles.Warning.Render("Give your store a name first.")
					return m, nil
				}
				m.step = setupState
				m.busy = true
				m.status = ""
				return m, m.loadStates()
			}
			var cmd tea.Cmd
			m.name, cmd = m.name.Update(msg)
			return m, cmd
		}

		n := 0
		switch m.step {
		case setupState:
			n = len(m.states)
		case setupCity:
			n = len(m.cities)
		case setupMarket:
			n = len(m.markets)
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < n-1 {
				m.cursor++
			}
		case "esc":
			switch m.step {
			case setupState:
				m.step = setupName
			case setupCity:
				m.step = setupState
			case setupMarket:
				m.step = setupCity
			}
			m.cursor = 0
		case "enter":
			if n == 0 {
				return m, nil
			}
			m.busy = true
			switch m.step {
			case setupState:
				stateID := m.states[m.cursor].ID
				m.step = setupCity
				m.cursor = 0
				return m, m.loadCities(stateID)
			case setupCity:
				cityID := m.cities[m.cursor].ID
				m.step = setupMarket
				m.cursor = 0
				return m, m.loadMarkets(cityID)
			case setupMarket:
				return m, m.create(m.markets[m.cursor].ID)
			}
		}
		return m, nil

	case setupStatesMsg:
		m.busy = false
		m.states = msg.States
		m.cursor = 0
		return m, nil
	case setupCitiesMsg:
		m.busy = false
		m.cities = msg.Cities
		m.cursor = 0
		return m, nil
	case setupMarketsMsg:
		m.busy = false
		m.markets = msg.Markets
		m.cursor = 0
		return m, nil

	case errMsg:
		m.busy = false
		m.status = m.styles.Error.Render(msg.Err.Error())
		return m, nil
	}
	return m, nil
}

func (m setupModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Set up your store"))
	sb.WriteString("\n")

	switch m.step {
	case setupName:
		sb.WriteString(m.styles.Subtitle.Render("What is your store called?"))
		sb.WriteString("\n\n")
		sb.WriteString(m.name.View())
		sb.WriteString("\n")
	case setupState:
		sb.WriteString(m.styles.Subtitle.Render("Which state is it in?"))
		sb.WriteString("\n")
		m.renderList(&sb, len(m.states), func(i int) string { return m.states[i].Name })
	case setupCity:
		sb.WriteString(m.styles.Subtitle.Render("Which city?"))
		sb.WriteString("\n")
		m.renderList(&sb, len(m.cities), func(i int) string { return m.cities[i].Name })
	case setupMarket:
		sb.WriteString(m.styles.Subtitle.Render("Which market area?"))
		sb.WriteString("\n")
		m.renderList(&sb, len(m.markets), func(i int) string { return m.markets[i].Name })
	}

	if m.busy {
		sb.WriteString(m.styles.Muted.Render("Working..."))
		sb.WriteString("\n")
	}
	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(m.status)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("enter select · esc back"))
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

func (m setupModel) renderList(sb *strings.Builder, n int, name func(int) string) {
	if n == 0 && !m.busy {
		sb.WriteString(m.styles.Muted.Render("Nothing here yet."))
		sb.WriteString("\n")
		return
	}
	for i := 0; i < n; i++ {
		if i == m.cursor {
			sb.WriteString(m.styles.Selected.Render(fmt.Sprintf("> %s", name(i))))
		} else {
			sb.WriteString("  " + name(i))
		}
		sb.WriteString("\n")
	}
}
