package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"options-lab/internal/engine"
	apperrors "options-lab/internal/errors"
	"options-lab/internal/logging"
	"options-lab/internal/models"
	"options-lab/internal/presets"
)

// addStrategyCommands adds strategy construction and analytics commands.
func addStrategyCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "Option strategy builder and payoff analytics",
		Long: `Build multi-leg option strategies and analyze their expiry payoff.

Legs come from a named preset, from --leg flags, or both. Each --leg is
ACTION:TYPE:STRIKE:PREMIUM[:QTY], e.g. BUY:CE:19500:112.80:1.`,
	}

	cmd.AddCommand(newStrategyPresetsCmd())
	cmd.AddCommand(newStrategyAnalyzeCmd(app))

	rootCmd.AddCommand(cmd)
}

var presetDescriptions = map[string]string{
	presets.LongStraddle:   "Buy ATM Call + Put",
	presets.ShortStraddle:  "Sell ATM Call + Put",
	presets.LongStrangle:   "Buy OTM Call + Put",
	presets.ShortStrangle:  "Sell OTM Call + Put",
	presets.BullCallSpread: "Buy ATM Call, Sell higher strike Call",
	presets.BearPutSpread:  "Buy ATM Put, Sell lower strike Put",
	presets.IronCondor:     "Sell OTM Call + Put, Buy further OTM wings",
	presets.LongButterfly:  "Buy 1 ITM Call, Sell 2 ATM Calls, Buy 1 OTM Call",
}

func newStrategyPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List available strategy presets",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			names := presets.Names()
			if output.IsJSON() {
				output.JSON(names)
				return
			}

			output.Bold("Available Strategy Presets")
			output.Println()
			for _, name := range names {
				output.Printf("  %-18s %s\n", output.Cyan(name), presetDescriptions[name])
			}
		},
	}
}

func newStrategyAnalyzeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a strategy's expiry payoff",
		Long: `Analyze a strategy: payoff curve at expiry, breakevens, max profit/loss,
net premium and an estimated margin requirement.`,
		Example: `  options-lab strategy analyze --preset long-straddle
  options-lab strategy analyze --symbol BANKNIFTY --preset iron-condor
  options-lab strategy analyze --leg BUY:CE:19500:112.80 --leg BUY:PE:19500:78.60`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			symbol, _ := cmd.Flags().GetString("symbol")
			expiry, _ := cmd.Flags().GetString("expiry")
			preset, _ := cmd.Flags().GetString("preset")
			legSpecs, _ := cmd.Flags().GetStringArray("leg")

			if preset == "" && len(legSpecs) == 0 {
				output.Error("Nothing to analyze: pass --preset and/or --leg")
				return fmt.Errorf("no legs specified")
			}

			symbol = strings.ToUpper(symbol)
			if symbol == "" {
				symbol = app.Config.Market.DefaultSymbol
			}

			inst, ok := app.Config.Instrument(symbol)
			if !ok {
				output.Error("Unknown symbol: %s (see 'options-lab instruments')", symbol)
				return apperrors.Wrapf(apperrors.ErrSymbolNotFound, "%s", symbol)
			}

			snapshot, err := app.Chains.Chain(symbol, expiry)
			if err != nil {
				output.Error("Failed to get option chain: %v", err)
				return err
			}

			builder := engine.NewStrategyBuilder()

			if preset != "" {
				drafts, err := presets.Build(preset, snapshot)
				if err != nil {
					output.Error("Failed to build preset: %v", err)
					return err
				}
				for _, draft := range drafts {
					if _, err := builder.AddLeg(draft); err != nil {
						return err
					}
				}
			}

			for _, spec := range legSpecs {
				draft, err := parseLegSpec(spec, symbol, snapshot.ExpiryDate)
				if err != nil {
					output.Error("Invalid --leg %q: %v", spec, err)
					return err
				}
				if _, err := builder.AddLeg(draft); err != nil {
					output.Error("Invalid --leg %q: %v", spec, err)
					return err
				}
			}

			analytics := builder.Analytics(snapshot, inst.LotSize)

			logger := logging.WithSymbol(app.Logger, symbol)
			if preset != "" {
				logger = logging.WithPreset(logger, preset)
			}
			logging.LogStrategyAnalyzed(logger, symbol, builder.Len(), analytics.Metrics.NetPremium)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"symbol":    symbol,
					"expiry":    snapshot.ExpiryDate,
					"lot_size":  inst.LotSize,
					"legs":      builder.Legs(),
					"analytics": analytics,
				})
			}

			displayAnalysis(output, symbol, inst.LotSize, builder.Legs(), analytics)
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "Underlying symbol (default: configured default)")
	cmd.Flags().String("expiry", "", "Expiry date (YYYY-MM-DD, default: nearest)")
	cmd.Flags().String("preset", "", "Strategy preset (see 'strategy presets')")
	cmd.Flags().StringArray("leg", nil, "Leg as ACTION:TYPE:STRIKE:PREMIUM[:QTY], repeatable")
	return cmd
}

// parseLegSpec parses ACTION:TYPE:STRIKE:PREMIUM[:QTY] into a leg draft.
func parseLegSpec(spec, symbol, expiryDate string) (engine.LegDraft, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 4 && len(parts) != 5 {
		return engine.LegDraft{}, fmt.Errorf("want ACTION:TYPE:STRIKE:PREMIUM[:QTY]")
	}

	action := models.LegAction(strings.ToUpper(parts[0]))
	optType := models.OptionType(strings.ToUpper(parts[1]))

	strike, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return engine.LegDraft{}, fmt.Errorf("bad strike %q", parts[2])
	}
	ltp, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return engine.LegDraft{}, fmt.Errorf("bad premium %q", parts[3])
	}

	qty := 1
	if len(parts) == 5 {
		qty, err = strconv.Atoi(parts[4])
		if err != nil {
			return engine.LegDraft{}, fmt.Errorf("bad quantity %q", parts[4])
		}
	}

	return engine.LegDraft{
		Symbol:      symbol,
		ExpiryDate:  expiryDate,
		StrikePrice: strike,
		OptionType:  optType,
		Action:      action,
		LTP:         ltp,
		Quantity:    qty,
	}, nil
}

func displayAnalysis(output *Output, symbol string, lotSize int, legs []models.OptionLeg, analytics models.StrategyAnalytics) {
	output.Bold("Strategy - %s (lot size %d)", symbol, lotSize)
	output.Println()

	output.Bold("Legs")
	legTable := NewTable(output, "#", "ACTION", "TYPE", "STRIKE", "PREMIUM", "QTY")
	for i, leg := range legs {
		action := output.Green(string(leg.Action))
		if leg.Action == models.LegActionSell {
			action = output.Red(string(leg.Action))
		}
		legTable.AddRow(
			strconv.Itoa(i+1),
			action,
			string(leg.OptionType),
			PadLeft(FormatPrice(leg.StrikePrice), 9),
			PadLeft(FormatPrice(leg.LTP), 8),
			PadLeft(strconv.Itoa(leg.Quantity), 3),
		)
	}
	legTable.Render()
	output.Println()

	m := analytics.Metrics

	output.Bold("Analysis")
	maxProfit := output.Green(FormatIndianCurrency(m.MaxProfit))
	if m.MaxProfitUnbounded {
		maxProfit = output.Green("Unlimited")
	}
	maxLoss := output.Red(FormatIndianCurrency(m.MaxLoss))
	if m.MaxLossUnbounded {
		maxLoss = output.Red("Unlimited")
	}

	output.Printf("  Net Premium:  %s\n", output.PnL(m.NetPremium))
	output.Printf("  Max Profit:   %s\n", maxProfit)
	output.Printf("  Max Loss:     %s\n", maxLoss)
	if len(m.Breakevens) == 0 {
		output.Printf("  Breakevens:   -\n")
	} else {
		points := make([]string, len(m.Breakevens))
		for i, be := range m.Breakevens {
			points[i] = FormatPrice(be)
		}
		output.Printf("  Breakevens:   %s\n", strings.Join(points, ", "))
	}
	output.Printf("  Est. Margin:  %s\n", FormatIndianCurrency(m.EstimatedMargin))
	output.Println()

	if len(analytics.Curve) > 0 {
		output.Bold("Payoff at Expiry")
		renderPayoffDiagram(output, analytics.Curve)
		output.Println()

		payoffTable := NewTable(output, "PRICE", "P&L")
		for i := 0; i < len(analytics.Curve); i += 5 {
			p := analytics.Curve[i]
			payoffTable.AddRow(PadLeft(FormatPrice(p.Price), 10), PadLeft(output.PnL(p.PnL), 14))
		}
		payoffTable.Render()
	}
}

// renderPayoffDiagram draws a small ASCII chart of the payoff curve.
func renderPayoffDiagram(output *Output, curve []models.PayoffPoint) {
	const height = 11

	minPnL, maxPnL := curve[0].PnL, curve[0].PnL
	for _, p := range curve {
		if p.PnL < minPnL {
			minPnL = p.PnL
		}
		if p.PnL > maxPnL {
			maxPnL = p.PnL
		}
	}
	span := maxPnL - minPnL
	if span == 0 {
		span = 1
	}

	rowOf := func(pnl float64) int {
		// Row 0 is the top of the chart.
		return int((maxPnL - pnl) / span * float64(height-1))
	}
	zeroRow := -1
	if minPnL <= 0 && maxPnL >= 0 {
		zeroRow = rowOf(0)
	}

	grid := make([][]rune, height)
	for r := range grid {
		fill := ' '
		if r == zeroRow {
			fill = '─'
		}
		grid[r] = make([]rune, len(curve))
		for c := range grid[r] {
			grid[r][c] = fill
		}
	}
	for c, p := range curve {
		grid[rowOf(p.PnL)][c] = '•'
	}

	for r, row := range grid {
		label := strings.Repeat(" ", 12)
		switch r {
		case 0:
			label = PadLeft(FormatCompact(maxPnL), 12)
		case zeroRow:
			label = PadLeft("0", 12)
		case height - 1:
			label = PadLeft(FormatCompact(minPnL), 12)
		}
		output.Printf("  %s │%s\n", label, string(row))
	}
	output.Printf("  %s └%s\n", strings.Repeat(" ", 12), strings.Repeat("─", len(curve)))
	output.Printf("  %s  %s%s%s\n",
		strings.Repeat(" ", 12),
		FormatPrice(curve[0].Price),
		strings.Repeat(" ", maxInt(1, len(curve)-len(FormatPrice(curve[0].Price))-len(FormatPrice(curve[len(curve)-1].Price)))),
		FormatPrice(curve[len(curve)-1].Price))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
