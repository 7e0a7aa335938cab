package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"options-lab/internal/store"
)

// addWatchlistCommands adds watchlist management commands.
func addWatchlistCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage symbol watchlists",
		Long:  "Track underlyings of interest in named watchlists.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <symbol>",
		Short: "Add a symbol to a watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return storeUnavailable(output)
			}
			list, _ := cmd.Flags().GetString("list")
			symbol := strings.ToUpper(args[0])

			ctx, cancel := watchlistContext()
			defer cancel()
			if err := app.Store.AddToWatchlist(ctx, symbol, list); err != nil {
				output.Error("Failed to add %s: %v", symbol, err)
				return err
			}
			output.Success("✓ Added %s", symbol)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <symbol>",
		Short: "Remove a symbol from a watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return storeUnavailable(output)
			}
			list, _ := cmd.Flags().GetString("list")
			symbol := strings.ToUpper(args[0])

			ctx, cancel := watchlistContext()
			defer cancel()
			if err := app.Store.RemoveFromWatchlist(ctx, symbol, list); err != nil {
				output.Error("Failed to remove %s: %v", symbol, err)
				return err
			}
			output.Success("✓ Removed %s", symbol)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show a watchlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return storeUnavailable(output)
			}
			list, _ := cmd.Flags().GetString("list")
			if list == "" {
				list = store.DefaultListName
			}

			ctx, cancel := watchlistContext()
			defer cancel()
			symbols, err := app.Store.GetWatchlist(ctx, list)
			if err != nil {
				output.Error("Failed to read watchlist: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"list": list, "symbols": symbols})
			}
			output.Bold("Watchlist - %s", list)
			if len(symbols) == 0 {
				output.Dim("  (empty)")
				return nil
			}
			for _, s := range symbols {
				output.Printf("  %s\n", s)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "lists",
		Short: "Show all watchlists",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return storeUnavailable(output)
			}

			ctx, cancel := watchlistContext()
			defer cancel()
			all, err := app.Store.GetAllWatchlists(ctx)
			if err != nil {
				output.Error("Failed to read watchlists: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(all)
			}
			if len(all) == 0 {
				output.Dim("No watchlists yet")
				return nil
			}
			names := make([]string, 0, len(all))
			for name := range all {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				output.Bold(name)
				for _, s := range all[name] {
					output.Printf("  %s\n", s)
				}
			}
			return nil
		},
	})

	cmd.PersistentFlags().String("list", "", "watchlist name (default: "+store.DefaultListName+")")

	rootCmd.AddCommand(cmd)
}

func watchlistContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func storeUnavailable(output *Output) error {
	output.Error("Watchlist store unavailable")
	return fmt.Errorf("store not initialized")
}
