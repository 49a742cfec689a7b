package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"neighbor/internal/api"
)

// BackMsg asks the app to return to the previous page.
type BackMsg struct{}

// productLoadedMsg carries the detail fetches for the open product.
type productLoadedMsg struct {
	ProductID int
	Prices    []api.PriceSearchResult
	Reviews   []api.Review
}

type productNoticeMsg struct {
	Text string
}

// ProductPageModel shows one product: its prices across stores, its reviews,
// and the add-to-list / favorite / review actions.
type ProductPageModel struct {
	deps   Deps
	styles Styles

	origin  api.PriceSearchResult
	prices  []api.PriceSearchResult
	reviews []api.Review
	cursor  int
	loading bool
	status  string

	reviewing bool
	rating    int
	comment   textinput.Model

	width  int
	height int
}

// NewProductPageModel creates the product page.
func NewProductPageModel(deps Deps, styles Styles) ProductPageModel {
	comment := textinput.New()
	comment.Placeholder = "Say something about this product"
	comment.CharLimit = 240
	return ProductPageModel{deps: deps, styles: styles, comment: comment}
}

// SetSize updates the page dimensions.
func (m *ProductPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.comment.Width = w - 8
}

// Open loads the page for a search result and returns the fetch command.
// The view is logged fire and forget; a failed log never surfaces to the
// shopper.
func (m *ProductPageModel) Open(res api.PriceSearchResult) tea.Cmd {
	m.origin = res
	m.prices = []api.PriceSearchResult{res}
	m.reviews = nil
	m.cursor = 0
	m.loading = true
	m.status = ""
	m.reviewing = false
	m.rating = 0
	m.comment.SetValue("")

	deps := m.deps
	cityID, _, haveCity := deps.Resolver.Active().City()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		go func() {
			logCtx, logCancel := context.WithTimeout(context.Background(), requestTimeout)
			defer logCancel()
			if err := deps.API.LogProductView(logCtx, res.ProductID); err != nil {
				deps.Log.Debug("view log failed", zap.Error(err))
			}
		}()

		var (
			g, gctx = errgroup.WithContext(ctx)
			prices  []api.PriceSearchResult
			reviews []api.Review
		)
		if haveCity {
			// The by-city price endpoint needs a city id, so under a GPS
			// scope the page keeps the listing it was opened with.
			g.Go(func() error {
				var err error
				prices, err = deps.API.PricesForProduct(gctx, res.ProductID, cityID)
				return err
			})
		}
		g.Go(func() error {
			var err error
			reviews, err = deps.API.ReviewsForProduct(gctx, res.ProductID)
			return err
		})
		if err := g.Wait(); err != nil {
			return ErrMsg{Err: err}
		}
		if !haveCity {
			prices = []api.PriceSearchResult{res}
		}
		return productLoadedMsg{ProductID: res.ProductID, Prices: prices, Reviews: reviews}
	}
}

func (m ProductPageModel) addToList() tea.Cmd {
	if len(m.prices) == 0 {
		return nil
	}
	row := m.prices[m.cursor]
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := deps.List.Add(ctx, api.ListItemCreate{
			ProductID:       row.ProductID,
			StoreID:         row.StoreID,
			PriceAtAddition: row.Price,
			Quantity:        1,
		})
		if err != nil {
			return ErrMsg{Err: err}
		}
		return productNoticeMsg{Text: fmt.Sprintf("Added %s to your list.", row.ProductName)}
	}
}

func (m ProductPageModel) toggleFavorite() tea.Cmd {
	if len(m.prices) == 0 {
		return nil
	}
	row := m.prices[m.cursor]
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := deps.Favorites.Toggle(ctx, row.StoreID); err != nil {
			return ErrMsg{Err: err}
		}
		if deps.Favorites.Contains(row.StoreID) {
			return productNoticeMsg{Text: fmt.Sprintf("%s added to favorites.", row.StoreName)}
		}
		return productNoticeMsg{Text: fmt.Sprintf("%s removed from favorites.", row.StoreName)}
	}
}

func (m ProductPageModel) submitReview() tea.Cmd {
	deps := m.deps
	review := api.ReviewCreate{
		ProductID: m.origin.ProductID,
		Rating:    m.rating,
		Comment:   strings.TrimSpace(m.comment.Value()),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := deps.API.SubmitReview(ctx, review); err != nil {
			return ErrMsg{Err: err}
		}
		reviews, err := deps.API.ReviewsForProduct(ctx, review.ProductID)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return productLoadedMsg{ProductID: review.ProductID, Prices: nil, Reviews: reviews}
	}
}

// Update handles messages.
func (m ProductPageModel) Update(msg tea.Msg) (ProductPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.reviewing {
			switch msg.String() {
			case "esc":
				m.reviewing = false
				return m, nil
			case "1", "2", "3", "4", "5":
				if !m.comment.Focused() {
					m.rating = int(msg.String()[0] - '0')
					return m, nil
				}
			case "tab":
				if m.comment.Focused() {
					m.comment.Blur()
				} else {
					m.comment.Focus()
				}
				return m, nil
			case "enter":
				if m.rating == 0 {
					m.status = m.styles.Warning.Render("Pick a rating first (1-5).")
					return m, nil
				}
				m.reviewing = false
				m.status = ""
				return m, m.submitReview()
			}
			var cmd tea.Cmd
			m.comment, cmd = m.comment.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return BackMsg{} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.prices)-1 {
				m.cursor++
			}
		case "a", "enter":
			return m, m.addToList()
		case "f":
			return m, m.toggleFavorite()
		case "r":
			m.reviewing = true
			m.rating = 0
			m.comment.SetValue("")
			m.comment.Blur()
			m.status = ""
		}
		return m, nil

	case productLoadedMsg:
		if msg.ProductID != m.origin.ProductID {
			return m, nil
		}
		m.loading = false
		if msg.Prices != nil {
			m.prices = msg.Prices
			if m.cursor >= len(m.prices) {
				m.cursor = 0
			}
		}
		m.reviews = msg.Reviews
		return m, nil

	case productNoticeMsg:
		m.status = m.styles.Success.Render(msg.Text)
		return m, nil

	case ErrMsg:
		m.loading = false
		m.status = m.styles.Error.Render(humanError(msg.Err))
		return m, nil
	}
	return m, nil
}

func stars(n int) string {
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// View renders the page.
func (m ProductPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(m.origin.ProductName))
	sb.WriteString("\n")

	if m.loading {
		sb.WriteString(m.styles.Muted.Render("Loading..."))
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.Subtitle.Render("Prices"))
	sb.WriteString("\n")
	for i, p := range m.prices {
		fav := "  "
		if m.deps.Favorites.Contains(p.StoreID) {
			fav = m.styles.Favorite.Render("★ ")
		}
		line := fmt.Sprintf("%s%s  %s  %s",
			fav,
			m.styles.Price.Render(fmt.Sprintf("₦%.2f", p.Price)),
			m.styles.Store.Render(p.StoreName),
			m.styles.Muted.Render(p.MarketArea))
		if i == m.cursor {
			line = m.styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Subtitle.Render("Reviews"))
	sb.WriteString("\n")
	if len(m.reviews) == 0 {
		sb.WriteString(m.styles.Muted.Render("No reviews yet."))
		sb.WriteString("\n")
	}
	for i, r := range m.reviews {
		if i >= 5 {
			sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("... %d more", len(m.reviews)-5)))
			sb.WriteString("\n")
			break
		}
		sb.WriteString(fmt.Sprintf("%s %s  %s\n",
			m.styles.Favorite.Render(stars(r.Rating)),
			m.styles.Bold.Render(r.UserName),
			r.Comment))
	}

	if m.reviewing {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Title.Render("Write a review"))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Rating: %s  %s\n",
			m.styles.Favorite.Render(stars(m.rating)),
			m.styles.Muted.Render("(press 1-5)")))
		sb.WriteString(m.comment.View())
		sb.WriteString("\n")
		sb.WriteString(m.styles.Footer.Render("tab comment · enter submit · esc cancel"))
	} else {
		if m.status != "" {
			sb.WriteString("\n")
			sb.WriteString(m.status)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(m.styles.Footer.Render("a add to list · f favorite store · r review · esc back"))
	}
	return m.styles.Content.Render(sb.String())
}
