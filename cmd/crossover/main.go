package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/crossover/internal/api"
	"github.com/pders01/crossover/internal/cache"
	"github.com/pders01/crossover/internal/catalog"
	"github.com/pders01/crossover/internal/config"
	"github.com/pders01/crossover/internal/debuglog"
	"github.com/pders01/crossover/internal/media"
	"github.com/pders01/crossover/internal/tui"
	"github.com/pders01/crossover/internal/widget"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	configPath string
	apiURL     string
	modeFlag   string
	debug      bool
	quiet      bool

	searchType    string
	recommendMode string
)

var rootCmd = &cobra.Command{
	Use:   "crossover",
	Short: "Find books for the movies you like, and movies for the books",
	Long: `crossover searches for a movie or book you like and recommends titles
of the other kind. Run without arguments to start the interactive terminal UI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		out := stdout(cmd)
		fmt.Fprintf(out, "crossover %s\n", Version)
		fmt.Fprintln(out, "Book and movie recommendations")
		fmt.Fprintln(out, "github.com/pders01/crossover")
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configGenCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the default configuration to ~/.config/crossover/config.toml",
	Run: func(cmd *cobra.Command, _ []string) {
		home, _ := os.UserHomeDir()
		configFile := filepath.Join(home, ".config", "crossover", "config.toml")

		if err := config.GenerateDefaultConfig(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(stdout(cmd), "Generated default configuration at: %s\n", configFile)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Look up books or movies by title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := catalog.ParseMode(searchType)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer debuglog.Close()

		client, closeCache, err := newClient(cfg)
		if err != nil {
			return err
		}
		defer closeCache()

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.HTTPTimeout)
		defer cancel()
		items, err := client.Search(ctx, api.SearchQuery{Query: args[0], Type: kind, Filters: filtersFromConfig(cfg)})
		if err != nil {
			return err
		}
		printItems(stdout(cmd), items, true)
		return nil
	},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend <id>",
	Short: "Recommend titles for the book or movie with the given id",
	Long: `recommend prints recommendations for a search result id. With --mode book
the id is a movie id and books come back; with --mode movie it is a book id.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := catalog.ParseMode(recommendMode)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer debuglog.Close()

		client, closeCache, err := newClient(cfg)
		if err != nil {
			return err
		}
		defer closeCache()

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.HTTPTimeout)
		defer cancel()
		items, err := client.Recommend(ctx, api.RecommendQuery{Mode: mode, ID: args[0], Filters: filtersFromConfig(cfg)})
		if err != nil {
			return err
		}
		printItems(stdout(cmd), items, false)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write debug logs to the log file")
	rootCmd.Flags().StringVar(&modeFlag, "mode", "", "Start in book or movie mode (overrides config)")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "Skip startup banner")

	searchCmd.Flags().StringVar(&searchType, "type", "movie", "What to search for: book or movie")
	recommendCmd.Flags().StringVar(&recommendMode, "mode", "book", "What to recommend: book or movie")

	configCmd.AddCommand(configGenCmd)
	rootCmd.AddCommand(versionCmd, configCmd, searchCmd, recommendCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer debuglog.Close()

	tui.ApplyTheme(cfg.UI.Colors)
	if !quiet {
		tui.ShowBanner(Version)
	}

	name := cfg.UI.DefaultMode
	if modeFlag != "" {
		name = modeFlag
	}
	mode, err := catalog.ParseMode(name)
	if err != nil {
		return err
	}

	uiCopy, err := catalog.LoadCopy(cfg.UI.CopyFile)
	if err != nil {
		return err
	}

	client, closeCache, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	w := widget.New(client, widget.OptionsFromConfig(cfg, uiCopy), mode, filtersFromConfig(cfg))
	app := tui.NewApp(cfg, w, media.NewLauncher(cfg))

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}

// loadConfig reads the config file, applies flag overrides and sets up
// logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if debug {
		cfg.Log.Level = debuglog.LevelDebug.String()
	}

	if err := debuglog.Setup(debuglog.ParseLogLevel(cfg.Log.Level), cfg.Log.File); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	debuglog.Infof("crossover %s starting against %s", Version, cfg.API.BaseURL)
	return cfg, nil
}

// newClient builds the API client with the response cache from cfg. The
// returned func closes the cache.
func newClient(cfg *config.Config) (*api.Client, func(), error) {
	var opts []api.Option
	closeCache := func() {}

	if store := cache.Open(cfg.Cache); store != nil {
		opts = append(opts, api.WithCache(store))
		closeCache = func() {
			if err := store.Close(); err != nil {
				debuglog.Warnf("closing response cache: %v", err)
			}
		}
	}

	client, err := api.NewClient(cfg.API, opts...)
	if err != nil {
		closeCache()
		return nil, nil, err
	}
	return client, closeCache, nil
}

func filtersFromConfig(cfg *config.Config) catalog.Filters {
	return catalog.Filters{
		IncludeAdult:       cfg.UI.IncludeAdult,
		IncludeAdaptations: cfg.UI.IncludeAdaptations,
	}
}

// printItems writes items as card lines. Search output carries the ids the
// recommend command takes.
func printItems(out io.Writer, items []catalog.Item, withIDs bool) {
	if len(items) == 0 {
		fmt.Fprintln(out, "No results")
		return
	}
	for _, card := range catalog.NewCards(items) {
		if withIDs {
			fmt.Fprintf(out, "%-10s %s\n", card.ItemID, card.Title)
		} else {
			fmt.Fprintln(out, card.Title)
		}
		fmt.Fprintf(out, "%-10s %s\n", "", card.Description)
	}
}

func stdout(cmd *cobra.Command) io.Writer {
	if cmd == nil {
		return os.Stdout
	}
	return cmd.OutOrStdout()
}
