package engine

import "options-lab/internal/models"

// StrategyBuilder is the single entry point callers use to assemble a
// strategy and read its analytics. It composes the leg book, the strike
// locator, the payoff sampler and the risk calculator.
//
// Analytics are recomputed in full on every call: given the small leg counts
// involved there is no incremental diffing, and every leg mutation is
// guaranteed a fully consistent, freshly computed snapshot.
type StrategyBuilder struct {
	book *LegBook
}

// NewStrategyBuilder creates a builder with an empty strategy.
func NewStrategyBuilder() *StrategyBuilder {
	return &StrategyBuilder{book: NewLegBook()}
}

// AddLeg validates and appends a leg, returning it with its assigned id.
func (s *StrategyBuilder) AddLeg(draft LegDraft) (models.OptionLeg, error) {
	return s.book.Add(draft)
}

// UpdateLeg patches quantity and/or ltp on an existing leg.
func (s *StrategyBuilder) UpdateLeg(id int64, patch LegPatch) (models.OptionLeg, error) {
	return s.book.Update(id, patch)
}

// RemoveLeg deletes a leg by id.
func (s *StrategyBuilder) RemoveLeg(id int64) error {
	return s.book.Remove(id)
}

// Legs returns the current legs in insertion order.
func (s *StrategyBuilder) Legs() []models.OptionLeg {
	return s.book.Legs()
}

// Len returns the number of legs in the strategy.
func (s *StrategyBuilder) Len() int {
	return s.book.Len()
}

// Clear discards the whole strategy.
func (s *StrategyBuilder) Clear() {
	s.book.Clear()
}

// Analytics computes the full derived view of the current strategy against
// the given chain snapshot. The chain feeds only the ATM index; payoff and
// metrics depend on the legs and lot size alone.
func (s *StrategyBuilder) Analytics(chain *models.ExpiryChain, lotSize int) models.StrategyAnalytics {
	legs := s.book.Legs()
	curve := SamplePayoff(legs, lotSize)
	return models.StrategyAnalytics{
		ATMIndex: FindATMIndex(chain),
		Curve:    curve,
		Metrics:  ComputeMetrics(legs, curve, lotSize),
	}
}
