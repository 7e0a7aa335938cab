package cli

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"options-lab/internal/chain"
	"options-lab/internal/config"
	"options-lab/internal/logging"
	"options-lab/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Chains chain.Provider
	Store  store.WatchlistStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	instruments := make([]chain.Instrument, 0, len(cfg.Market.Instruments))
	for _, inst := range cfg.Market.Instruments {
		instruments = append(instruments, chain.Instrument{
			Symbol:     inst.Symbol,
			Name:       inst.Name,
			LotSize:    inst.LotSize,
			Spot:       inst.Spot,
			StrikeStep: inst.StrikeStep,
		})
	}
	app.Chains = chain.NewSyntheticProvider(instruments, time.Now())

	dbPath := filepath.Join(config.DefaultConfigDir(), "options-lab.db")
	watchlists, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, watchlist commands unavailable")
	} else {
		app.Store = watchlists
		logger.Debug().Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "options-lab",
		Short: "Options Lab - option strategy construction and payoff analytics",
		Long: `Options Lab builds multi-leg option strategies and analyzes their payoff
at expiry: P&L curve, breakevens, max profit/loss and margin estimate.

Chains are fabricated locally, so everything works offline.

Use 'options-lab help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/options-lab)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	addChainCommands(rootCmd, app)
	addStrategyCommands(rootCmd, app)
	addWatchlistCommands(rootCmd, app)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("Options Lab v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Market Configuration")
	output.Printf("  Default Symbol:  %s\n", cfg.Market.DefaultSymbol)
	output.Println()

	output.Bold("Instruments")
	table := NewTable(output, "SYMBOL", "NAME", "LOT SIZE", "SPOT", "STRIKE STEP")
	for _, inst := range cfg.Market.Instruments {
		table.AddRow(
			inst.Symbol,
			inst.Name,
			PadLeft(FormatPrice(float64(inst.LotSize)), 8),
			PadLeft(FormatPrice(inst.Spot), 10),
			PadLeft(FormatPrice(inst.StrikeStep), 8),
		)
	}
	table.Render()
	output.Println()

	output.Bold("UI")
	output.Printf("  Color Enabled:   %v\n", cfg.UI.ColorEnabled)
	output.Printf("  Date Format:     %s\n", cfg.UI.DateFormat)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  Console:         %v\n", cfg.Logging.Console)
	output.Printf("  File:            %v\n", cfg.Logging.File)
}
