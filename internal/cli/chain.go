package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"options-lab/internal/engine"
	"options-lab/internal/logging"
	"options-lab/internal/models"
)

// addChainCommands adds chain data commands.
func addChainCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newInstrumentsCmd(app))
	rootCmd.AddCommand(newChainCmd(app))
	rootCmd.AddCommand(newExpiriesCmd(app))
}

func newInstrumentsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "instruments",
		Short: "List available underlyings",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			unds := app.Chains.Underlyings()
			if output.IsJSON() {
				output.JSON(unds)
				return
			}

			table := NewTable(output, "SYMBOL", "NAME", "LOT SIZE")
			for _, u := range unds {
				table.AddRow(u.Symbol, u.Name, PadLeft(FormatPrice(float64(u.LotSize)), 8))
			}
			table.Render()
		},
	}
}

func newExpiriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "expiries <symbol>",
		Short: "List available expiry dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])

			expiries, err := app.Chains.ExpiryDates(symbol)
			if err != nil {
				output.Error("Failed to get expiries: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"symbol": symbol, "expiries": expiries})
			}
			output.Bold("Expiries - %s", symbol)
			for _, e := range expiries {
				output.Printf("  %s\n", e)
			}
			return nil
		},
	}
}

func newChainCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain <symbol>",
		Short: "Display option chain",
		Long: `Display the option chain for a symbol.

Shows calls and puts with strike prices, LTP, OI and IV. The at-the-money
strike is marked with *.`,
		Example: `  options-lab chain NIFTY
  options-lab chain BANKNIFTY --expiry 2026-09-03
  options-lab chain NIFTY --strikes 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])
			expiry, _ := cmd.Flags().GetString("expiry")
			strikes, _ := cmd.Flags().GetInt("strikes")

			logger := logging.WithSymbol(app.Logger, symbol)

			snapshot, err := app.Chains.Chain(symbol, expiry)
			if err != nil {
				output.Error("Failed to get option chain: %v", err)
				return err
			}
			logging.LogChainServed(logger, symbol, snapshot.ExpiryDate, len(snapshot.Data))

			if output.IsJSON() {
				return output.JSON(snapshot)
			}
			displayChain(output, snapshot, strikes)
			return nil
		},
	}

	cmd.Flags().String("expiry", "", "Expiry date (YYYY-MM-DD, default: nearest)")
	cmd.Flags().Int("strikes", 10, "Number of strikes to show around ATM")
	return cmd
}

func displayChain(output *Output, snapshot *models.ExpiryChain, strikes int) {
	output.Bold("Option Chain - %s", snapshot.Symbol)
	spot := "-"
	if snapshot.UnderlyingValue != nil {
		spot = FormatPrice(*snapshot.UnderlyingValue)
	}
	output.Printf("  Spot: %s  Expiry: %s\n\n", spot, snapshot.ExpiryDate)

	atm := engine.FindATMIndex(snapshot)

	lo, hi := 0, len(snapshot.Data)
	if atm >= 0 && strikes > 0 {
		if atm-strikes > lo {
			lo = atm - strikes
		}
		if atm+strikes+1 < hi {
			hi = atm + strikes + 1
		}
	}

	table := NewTable(output, "CALL LTP", "CALL OI", "CALL IV", "STRIKE", "PUT IV", "PUT OI", "PUT LTP")
	for i := lo; i < hi; i++ {
		entry := snapshot.Data[i]

		strike := FormatPrice(entry.StrikePrice)
		if i == atm {
			strike = output.BoldText(strike + " *")
		}

		callLTP, callOI, callIV := "-", "-", "-"
		if entry.Call != nil {
			callLTP = FormatPrice(entry.Call.LTP)
			callOI = FormatVolume(entry.Call.OI)
			callIV = FormatPercent(entry.Call.IV)
		}
		putLTP, putOI, putIV := "-", "-", "-"
		if entry.Put != nil {
			putLTP = FormatPrice(entry.Put.LTP)
			putOI = FormatVolume(entry.Put.OI)
			putIV = FormatPercent(entry.Put.IV)
		}

		table.AddRow(
			PadLeft(callLTP, 9), PadLeft(callOI, 9), PadLeft(callIV, 8),
			PadLeft(strike, 10),
			PadLeft(putIV, 8), PadLeft(putOI, 9), PadLeft(putLTP, 9),
		)
	}
	table.Render()

	if atm < 0 {
		output.Println()
		output.Warning("Spot unavailable, ATM strike not marked")
	}
}
