// Command neighbor is the shopper-facing terminal client for the Neighbor
// local price comparison service. Run without arguments to start the
// interactive app; subcommands cover one-shot lookups and session management.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"neighbor/cmd/neighbor/ui"
	"neighbor/internal/api"
	"neighbor/internal/config"
	"neighbor/internal/favorites"
	"neighbor/internal/location"
	"neighbor/internal/logging"
	"neighbor/internal/search"
	"neighbor/internal/session"
	"neighbor/internal/shoppinglist"
)

var (
	// Global flags
	verbose bool
	apiURL  string

	logger *zap.Logger
	cfg    config.Config
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "neighbor",
	Short: "Neighbor - compare local market prices from your terminal",
	Long: `Neighbor finds the cheapest nearby price for everyday products.

Search by product name or barcode, scoped to your GPS position or a city you
pick. Keep a shopping list, favorite the stores you trust, and leave reviews.

Run without arguments to start the interactive app.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if apiURL != "" {
			cfg.APIBaseURL = apiURL
		}

		dir, err := config.Dir()
		if err != nil {
			return err
		}
		logger, err = logging.New(logging.Options{
			Dir:     dir,
			Name:    "neighbor",
			Verbose: verbose,
			// The interactive app owns the terminal; console output would
			// corrupt it. One-shot commands print their own results anyway.
			Console: false,
		})
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp()
	},
}

// newDeps wires the dependency graph shared by the app and the one-shot
// commands.
func newDeps() (ui.Deps, error) {
	dir, err := config.Dir()
	if err != nil {
		return ui.Deps{}, err
	}
	sess := session.NewStore(dir)
	client := api.New(cfg.APIBaseURL,
		api.WithTokenSource(sess),
		api.WithLogger(logger))
	resolver := location.NewResolver(location.EnvProvider{}, cfg.DefaultCityID, cfg.DefaultCityName, logger)
	return ui.Deps{
		API:       client,
		Session:   sess,
		Resolver:  resolver,
		Advisor:   location.NewAdvisor(client, logger),
		List:      shoppinglist.New(client, sess, logger),
		Favorites: favorites.New(client, sess, logger),
		Config:    cfg,
		Log:       logger,
	}, nil
}

func runApp() error {
	deps, err := newDeps()
	if err != nil {
		return err
	}

	p := tea.NewProgram(newAppModel(deps), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := config.Watch(ctx, logger, func(next config.Config) {
		p.Send(configReloadedMsg{Theme: next.Theme})
	}); err != nil {
		logger.Warn("config watch unavailable", zap.Error(err))
	}

	_, err = p.Run()
	return err
}

// loginCmd signs in from the command line.
var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in and store the session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := newDeps()
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}

		tok, err := deps.API.Login(cmd.Context(), args[0], string(raw))
		if err != nil {
			return err
		}
		if err := deps.Session.Save(tok.AccessToken); err != nil {
			return err
		}
		user, err := deps.API.Me(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s (%s)\n", user.Name, user.Role)
		return nil
	},
}

// logoutCmd forgets the stored session.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := newDeps()
		if err != nil {
			return err
		}
		if err := deps.Session.Clear(); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

var (
	searchCity   int
	searchSortBy string
)

// searchCmd runs a one-shot search and prints the results.
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search product prices without the interactive app",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := newDeps()
		if err != nil {
			return err
		}
		cityID := searchCity
		if cityID == 0 {
			cityID = cfg.DefaultCityID
		}
		q := api.SearchQuery{
			Q:      strings.Join(args, " "),
			SortBy: searchSortBy,
			CityID: &cityID,
		}
		results, err := deps.API.Search(cmd.Context(), q)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No results.")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%-30s ₦%-10.2f %s, %s\n", r.ProductName, r.Price, r.StoreName, r.MarketArea)
		}
		return nil
	},
}

// scanCmd looks a product up by barcode.
var scanCmd = &cobra.Command{
	Use:   "scan [barcode]",
	Short: "Look a product up by barcode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := newDeps()
		if err != nil {
			return err
		}
		product, err := deps.API.ProductByBarcode(cmd.Context(), args[0])
		if err != nil {
			if api.IsNotFound(err) {
				fmt.Printf("No product matches barcode %s.\n", args[0])
				return nil
			}
			return err
		}
		fmt.Printf("%s (%s)\n", product.Name, product.Category)
		fmt.Printf("Search it: neighbor search %q\n", product.Name)
		return nil
	},
}

const guideText = `# Neighbor

Compare local market prices from your terminal.

## Getting around

| Key | Page |
| --- | ---- |
| F1  | Search |
| F2  | Shopping list |
| F3  | Location |
| F4  | Profile |

## Location

Neighbor scopes every search to a location. Press ` + "`g`" + ` on the location
page to use your GPS position (set ` + "`NEIGHBOR_GPS=lat,lon`" + `), or
` + "`c`" + ` to pick a state and city by hand. If GPS is unavailable the app
falls back to the default city from your config file.

Under a GPS scope you control the search radius with ` + "`+`" + ` and
` + "`-`" + `. Neighbor warns when the radius likely reaches beyond your state,
because prices from another state are rarely actionable.

## Shopping list

Press ` + "`a`" + ` on any price to add it. The total updates from the server
after every change; quantities that reach zero remove the line.
`

// guideCmd renders the built-in user guide.
var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show the user guide",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err != nil {
			return err
		}
		out, err := r.Render(guideText)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "override the backend base URL")

	searchCmd.Flags().IntVar(&searchCity, "city", 0, "city id to search in (default: configured city)")
	searchCmd.Flags().StringVar(&searchSortBy, "sort", string(search.SortPriceAsc), "sort order")

	rootCmd.AddCommand(loginCmd, logoutCmd, searchCmd, scanCmd, guideCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
