// Package chain supplies option chain snapshots to the rest of the
// application. The engine never fetches data itself; it consumes whatever
// snapshot a Provider hands it.
package chain

import "options-lab/internal/models"

// Provider is the external chain-data collaborator. Implementations are
// expected to return strikes in ascending order; the engine's ATM tie-break
// depends on it.
type Provider interface {
	// Underlyings lists the instruments this provider can serve chains for.
	Underlyings() []models.Underlying

	// ExpiryDates returns the available expiry dates for a symbol, nearest
	// first, formatted as YYYY-MM-DD.
	ExpiryDates(symbol string) ([]string, error)

	// Chain returns the snapshot for one underlying and expiry. An empty
	// expiry selects the nearest one.
	Chain(symbol, expiryDate string) (*models.ExpiryChain, error)
}
