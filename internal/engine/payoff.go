package engine

import (
	"math"

	"options-lab/internal/models"
)

// Payoff sampling grid: base ±10% divided into 2*payoffSteps equal steps,
// giving 2*payoffSteps+1 samples in ascending price order.
const (
	payoffSteps     = 20
	payoffRangeFrac = 0.10
)

// SamplePayoff generates the expiry P&L curve for the given legs over a
// sampled underlying-price range. The base price is the strike of the first
// leg; the range is base ±10% in 41 equally spaced samples. An empty leg set
// yields an empty curve ("no chart to draw"), not an error.
//
// The function is pure: identical inputs produce identical output, and the
// per-point sum is commutative, so leg order never affects the result.
func SamplePayoff(legs []models.OptionLeg, lotSize int) []models.PayoffPoint {
	if len(legs) == 0 {
		return nil
	}

	base := legs[0].StrikePrice
	step := base * payoffRangeFrac / payoffSteps

	points := make([]models.PayoffPoint, 0, 2*payoffSteps+1)
	for i := -payoffSteps; i <= payoffSteps; i++ {
		price := base + float64(i)*step
		points = append(points, models.PayoffPoint{
			Price: price,
			PnL:   PnLAt(legs, price, lotSize),
		})
	}
	return points
}

// PnLAt returns the aggregate strategy P&L at one underlying price.
func PnLAt(legs []models.OptionLeg, price float64, lotSize int) float64 {
	total := 0.0
	for i := range legs {
		total += legPnLAt(&legs[i], price) * float64(legs[i].Quantity) * float64(lotSize)
	}
	return total
}

// legPnLAt returns the per-unit expiry P&L of one leg at the given price.
func legPnLAt(leg *models.OptionLeg, price float64) float64 {
	intrinsic := intrinsicValue(leg.OptionType, leg.StrikePrice, price)
	if leg.Action == models.LegActionSell {
		return leg.LTP - intrinsic
	}
	return intrinsic - leg.LTP
}

// intrinsicValue is the in-the-money portion of the option's value at the
// given underlying price, ignoring time value.
func intrinsicValue(optType models.OptionType, strike, price float64) float64 {
	if optType == models.OptionTypePut {
		return math.Max(0, strike-price)
	}
	return math.Max(0, price-strike)
}
