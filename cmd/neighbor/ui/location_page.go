package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"neighbor/internal/api"
	"neighbor/internal/geo"
	"neighbor/internal/location"
)

// LocationChangedMsg tells the app the active location or radius moved so it
// can re-scope search and feed the radius advisor.
type LocationChangedMsg struct {
	Location location.ActiveLocation
	RadiusKm float64
	// Cause is non-nil when a GPS request fell back to the default city.
	Cause error
}

type statesLoadedMsg struct {
	States []api.State
}

type citiesLoadedMsg struct {
	StateID int
	Cities  []api.City
}

type nearbyMarketsMsg struct {
	Markets []api.MarketArea
}

type locationStep int

const (
	stepOverview locationStep = iota
	stepPickState
	stepPickCity
)

// LocationPageModel manages the active search location: GPS on/off, the
// manual state and city picker, and the search radius.
type LocationPageModel struct {
	deps   Deps
	styles Styles

	step     locationStep
	radiusKm float64

	states  []api.State
	cities  []api.City
	markets []api.MarketArea
	cursor  int
	busy    bool
	status  string

	width  int
	height int
}

// NewLocationPageModel creates the location page.
func NewLocationPageModel(deps Deps, styles Styles) LocationPageModel {
	return LocationPageModel{
		deps:     deps,
		styles:   styles,
		radiusKm: deps.Config.RadiusKm,
	}
}

// SetSize updates the page dimensions.
func (m *LocationPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// RadiusKm returns the chosen search radius.
func (m LocationPageModel) RadiusKm() float64 { return m.radiusKm }

func (m LocationPageModel) changed(cause error) tea.Cmd {
	loc := m.deps.Resolver.Active()
	radius := m.radiusKm
	return func() tea.Msg {
		return LocationChangedMsg{Location: loc, RadiusKm: radius, Cause: cause}
	}
}

func (m LocationPageModel) requestGPS() tea.Cmd {
	deps := m.deps
	radius := m.radiusKm
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		loc, err := deps.Resolver.RequestGPS(ctx)
		return LocationChangedMsg{Location: loc, RadiusKm: radius, Cause: err}
	}
}

func (m LocationPageModel) loadStates() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		states, err := deps.API.States(ctx)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return statesLoadedMsg{States: states}
	}
}

func (m LocationPageModel) loadCities(stateID int) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		cities, err := deps.API.CitiesForState(ctx, stateID)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return citiesLoadedMsg{StateID: stateID, Cities: cities}
	}
}

func (m LocationPageModel) loadNearbyMarkets() tea.Cmd {
	lat, lon, ok := m.deps.Resolver.Active().Coords()
	if !ok {
		return nil
	}
	deps := m.deps
	radius := m.radiusKm
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		markets, err := deps.API.NearbyMarkets(ctx, lat, lon, radius)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return nearbyMarketsMsg{Markets: markets}
	}
}

// Update handles messages.
func (m LocationPageModel) Update(msg tea.Msg) (LocationPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.step {
		case stepPickState:
			return m.updatePicker(msg, len(m.states), func(i int) (LocationPageModel, tea.Cmd) {
				m.step = stepPickCity
				m.busy = true
				return m, m.loadCities(m.states[i].ID)
			})
		case stepPickCity:
			return m.updatePicker(msg, len(m.cities), func(i int) (LocationPageModel, tea.Cmd) {
				city := m.cities[i]
				m.deps.Resolver.SelectManualCity(city.ID, city.Name)
				m.step = stepOverview
				m.markets = nil
				m.status = ""
				return m, m.changed(nil)
			})
		}

		switch msg.String() {
		case "g":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.status = ""
			return m, m.requestGPS()
		case "x":
			m.deps.Resolver.ClearGPS()
			m.markets = nil
			m.status = ""
			return m, m.changed(nil)
		case "c":
			m.step = stepPickState
			m.cursor = 0
			m.busy = true
			m.status = ""
			return m, m.loadStates()
		case "+", "=":
			if _, _, ok := m.deps.Resolver.Active().Coords(); ok {
				m.radiusKm++
				return m, m.changed(nil)
			}
		case "-":
			if _, _, ok := m.deps.Resolver.Active().Coords(); ok && m.radiusKm > 1 {
				m.radiusKm--
				return m, m.changed(nil)
			}
		case "m":
			if cmd := m.loadNearbyMarkets(); cmd != nil {
				m.busy = true
				return m, cmd
			}
		}
		return m, nil

	case statesLoadedMsg:
		m.busy = false
		m.states = msg.States
		m.cursor = 0
		return m, nil

	case citiesLoadedMsg:
		m.busy = false
		m.cities = msg.Cities
		m.cursor = 0
		return m, nil

	case nearbyMarketsMsg:
		m.busy = false
		m.markets = msg.Markets
		return m, nil

	case LocationChangedMsg:
		m.busy = false
		if msg.Cause != nil {
			m.status = m.styles.Warning.Render(
				fmt.Sprintf("Location unavailable, searching from %s instead.", m.deps.Config.DefaultCityName))
		}
		return m, nil

	case ErrMsg:
		m.busy = false
		m.step = stepOverview
		m.status = m.styles.Error.Render(humanError(msg.Err))
		return m, nil
	}
	return m, nil
}

func (m LocationPageModel) updatePicker(msg tea.KeyMsg, n int, pick func(int) (LocationPageModel, tea.Cmd)) (LocationPageModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "enter":
		if n > 0 {
			return pick(m.cursor)
		}
	case "esc":
		m.step = stepOverview
	}
	return m, nil
}

// View renders the page.
func (m LocationPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Location"))
	sb.WriteString("\n")

	switch m.step {
	case stepPickState:
		sb.WriteString(m.styles.Subtitle.Render("Choose your state"))
		sb.WriteString("\n")
		m.renderPicker(&sb, len(m.states), func(i int) string { return m.states[i].Name })
	case stepPickCity:
		sb.WriteString(m.styles.Subtitle.Render("Choose your city"))
		sb.WriteString("\n")
		m.renderPicker(&sb, len(m.cities), func(i int) string { return m.cities[i].Name })
	default:
		loc := m.deps.Resolver.Active()
		switch {
		case loc.IsNone():
			sb.WriteString(m.styles.Muted.Render("No location set."))
			sb.WriteString("\n")
		default:
			if lat, lon, ok := loc.Coords(); ok {
				sb.WriteString(fmt.Sprintf("Using current location %s\n",
					m.styles.Bold.Render(fmt.Sprintf("(%.4f, %.4f)", lat, lon))))
				sb.WriteString(fmt.Sprintf("Search radius: %s\n", m.styles.Bold.Render(fmt.Sprintf("%.0f km", m.radiusKm))))
				if name, ok := m.deps.Advisor.StateName(); ok {
					sb.WriteString(fmt.Sprintf("You appear to be in %s.\n", m.styles.Bold.Render(name)))
				}
				if m.deps.Advisor.LeavingRegion(m.radiusKm) {
					if max, ok := m.deps.Advisor.MaxSafeRadius(); ok {
						sb.WriteString(m.styles.Warning.Render(
							fmt.Sprintf("⚠ Radii above %.0f km may reach beyond your state.", max)))
						sb.WriteString("\n")
					}
				}
			} else if _, name, ok := loc.City(); ok {
				sb.WriteString(fmt.Sprintf("Searching in %s\n", m.styles.Bold.Render(name)))
			}
		}

		if len(m.markets) > 0 {
			sb.WriteString("\n")
			sb.WriteString(m.styles.Subtitle.Render("Markets nearby"))
			sb.WriteString("\n")
			lat, lon, haveFix := m.deps.Resolver.Active().Coords()
			for _, mk := range m.markets {
				where := fmt.Sprintf("%s, %s", mk.CityName, mk.StateName)
				if haveFix && (mk.Latitude != 0 || mk.Longitude != 0) {
					where = fmt.Sprintf("%.1f km · %s", geo.DistanceKm(lat, lon, mk.Latitude, mk.Longitude), where)
				}
				sb.WriteString(fmt.Sprintf("  %s %s\n", m.styles.Bold.Render(mk.Name),
					m.styles.Muted.Render(where)))
			}
		}
	}

	if m.busy {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Muted.Render("Working..."))
		sb.WriteString("\n")
	}
	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(m.status)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("g use GPS · x turn off GPS · c pick city · +/- radius · m nearby markets"))
	return m.styles.Content.Render(sb.String())
}

func (m LocationPageModel) renderPicker(sb *strings.Builder, n int, name func(int) string) {
	if n == 0 && !m.busy {
		sb.WriteString(m.styles.Muted.Render("Nothing here."))
		sb.WriteString("\n")
		return
	}
	for i := 0; i < n; i++ {
		line := name(i)
		if i == m.cursor {
			line = m.styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}
