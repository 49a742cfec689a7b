// Command storefront is the store-owner dashboard for the Neighbor service:
// manage the store's inventory prices and see which products shoppers view.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"neighbor/internal/api"
	"neighbor/internal/config"
	"neighbor/internal/logging"
	"neighbor/internal/session"
)

var (
	verbose bool
	apiURL  string

	logger *zap.Logger
	cfg    config.Config
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Neighbor dashboard for store owners",
	Long: `Storefront is the owner-side companion to the Neighbor shopper app.

Keep your store's prices current, set stock levels, and see how often
shoppers view your products. Requires a store owner account.

Run without arguments to start the interactive dashboard.`,
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
			Name:    "storefront",
			Verbose: verbose,
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
		deps, err := newDeps()
		if err != nil {
			return err
		}
		p := tea.NewProgram(newDashModel(deps), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

type deps struct {
	API     *api.Client
	Session *session.Store
	Log     *zap.Logger
}

func newDeps() (deps, error) {
	dir, err := config.Dir()
	if err != nil {
		return deps{}, err
	}
	sess := session.NewStore(dir)
	client := api.New(cfg.APIBaseURL,
		api.WithTokenSource(sess),
		api.WithLogger(logger))
	return deps{API: client, Session: sess, Log: logger}, nil
}

// inventoryCmd prints the store's inventory without the interactive app.
var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Print the store's current inventory",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		entries, err := d.API.Inventory(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No inventory yet.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%-30s ₦%-10.2f %s\n", e.Product.Name, e.Price, stockLabel(e.StockLevel))
		}
		return nil
	},
}

// analyticsCmd prints per-product view counts.
var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Print product view counts for the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		counts, err := d.API.StoreViewCounts(cmd.Context())
		if err != nil {
			return err
		}
		if len(counts) == 0 {
			fmt.Println("No views recorded yet.")
			return nil
		}
		for _, c := range counts {
			fmt.Printf("%-30s %d\n", c.ProductName, c.ViewCount)
		}
		return nil
	},
}

func stockLabel(level int) string {
	switch level {
	case 1:
		return "Low"
	case 2:
		return "Medium"
	case 3:
		return "High"
	default:
		return fmt.Sprintf("stock %d", level)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "override the backend base URL")
	rootCmd.AddCommand(inventoryCmd, analyticsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
