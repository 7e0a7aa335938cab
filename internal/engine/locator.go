// Package engine implements the options strategy analytics engine: strike
// location, leg bookkeeping, payoff sampling and risk metrics.
//
// The engine is synchronous and performs no I/O and no logging of its own.
// Callers embedding it in a concurrent host are responsible for serializing
// access to a StrategyBuilder instance.
package engine

import (
	"math"

	"options-lab/internal/models"
)

// FindATMIndex returns the index of the strike closest to the chain's
// underlying value, or -1 when the chain has no underlying value or no
// strikes. "No ATM yet" is a normal transient state while a chain is still
// loading, so this degrades instead of returning an error.
//
// Ties resolve to the first index in ascending-strike order, i.e. the lower
// strike wins on an exact tie. UI scroll-to-ATM depends on this being
// deterministic.
func FindATMIndex(chain *models.ExpiryChain) int {
	if chain == nil || chain.UnderlyingValue == nil || len(chain.Data) == 0 {
		return -1
	}

	spot := *chain.UnderlyingValue
	atm := 0
	best := math.Abs(chain.Data[0].StrikePrice - spot)
	for i := 1; i < len(chain.Data); i++ {
		diff := math.Abs(chain.Data[i].StrikePrice - spot)
		if diff < best {
			best = diff
			atm = i
		}
	}
	return atm
}
