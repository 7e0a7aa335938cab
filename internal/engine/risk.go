package engine

import "options-lab/internal/models"

// Margin coefficients are a placeholder heuristic, not a SPAN or regulatory
// computation: short legs are weighted at 25% of premium notional, long legs
// at 5%.
const (
	marginCoeffSell = 0.25
	marginCoeffBuy  = 0.05
)

// ComputeMetrics derives the risk snapshot for a strategy from its legs and
// its sampled payoff curve. An empty strategy yields zero metrics with no
// breakevens, never an error.
//
// Net premium is signed: positive means net credit received, negative means
// net debit paid.
//
// Max profit/loss come from scanning the curve; because the sampled range is
// finite, the slope at each curve boundary is inspected and a wing that is
// still rising (or falling) at the boundary is reported as unbounded rather
// than as the sampled extremum.
func ComputeMetrics(legs []models.OptionLeg, curve []models.PayoffPoint, lotSize int) models.RiskMetrics {
	metrics := models.RiskMetrics{Breakevens: []float64{}}

	for i := range legs {
		notional := legs[i].LTP * float64(legs[i].Quantity) * float64(lotSize)
		if legs[i].Action == models.LegActionSell {
			metrics.NetPremium += notional
			metrics.EstimatedMargin += notional * marginCoeffSell
		} else {
			metrics.NetPremium -= notional
			metrics.EstimatedMargin += notional * marginCoeffBuy
		}
	}

	if len(curve) == 0 {
		return metrics
	}

	metrics.MaxProfit = curve[0].PnL
	metrics.MaxLoss = curve[0].PnL
	for _, p := range curve[1:] {
		if p.PnL > metrics.MaxProfit {
			metrics.MaxProfit = p.PnL
		}
		if p.PnL < metrics.MaxLoss {
			metrics.MaxLoss = p.PnL
		}
	}

	if n := len(curve); n >= 2 {
		// Upper wing: still moving at the last sample.
		if curve[n-1].PnL > curve[n-2].PnL {
			metrics.MaxProfitUnbounded = true
		}
		if curve[n-1].PnL < curve[n-2].PnL {
			metrics.MaxLossUnbounded = true
		}
		// Lower wing: still moving toward the first sample.
		if curve[0].PnL > curve[1].PnL {
			metrics.MaxProfitUnbounded = true
		}
		if curve[0].PnL < curve[1].PnL {
			metrics.MaxLossUnbounded = true
		}
	}

	metrics.Breakevens = findBreakevens(curve)
	return metrics
}

// findBreakevens returns every price at which the sampled curve crosses
// zero, in ascending order. Crossings between samples are estimated with
// linear interpolation; samples landing exactly on zero are taken as-is.
func findBreakevens(curve []models.PayoffPoint) []float64 {
	breakevens := []float64{}
	if len(curve) == 0 {
		return breakevens
	}

	if curve[0].PnL == 0 {
		breakevens = append(breakevens, curve[0].Price)
	}
	for i := 1; i < len(curve); i++ {
		prev, curr := curve[i-1], curve[i]
		switch {
		case curr.PnL == 0:
			if prev.PnL != 0 {
				breakevens = append(breakevens, curr.Price)
			}
		case prev.PnL == 0:
			// Already recorded when it was the current sample.
		case (prev.PnL < 0) != (curr.PnL < 0):
			t := prev.Price + (0-prev.PnL)*(curr.Price-prev.Price)/(curr.PnL-prev.PnL)
			breakevens = append(breakevens, t)
		}
	}
	return breakevens
}
