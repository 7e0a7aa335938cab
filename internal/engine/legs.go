package engine

import (
	apperrors "options-lab/internal/errors"
	"options-lab/internal/models"
)

// LegDraft is the caller-supplied input for a new leg, before an id is
// assigned.
type LegDraft struct {
	Symbol      string            `json:"symbol"`
	ExpiryDate  string            `json:"expiry_date"`
	StrikePrice float64           `json:"strike_price"`
	OptionType  models.OptionType `json:"option_type"`
	Action      models.LegAction  `json:"action"`
	LTP         float64           `json:"ltp"`
	Quantity    int               `json:"quantity"`
}

// LegPatch carries the mutable fields of a leg. Nil fields are left
// untouched. Strike, option type, action, symbol and expiry are immutable
// after creation; changing them means removing and re-adding the leg.
type LegPatch struct {
	Quantity *int
	LTP      *float64
}

// LegBook is the ordered collection of legs making up a strategy. Legs keep
// insertion order, which matters only for display; payoff math is
// order-independent. Duplicate strike/type/action combinations are legal and
// kept as separate entries (scaling into a position in steps).
type LegBook struct {
	legs   []models.OptionLeg
	nextID int64
}

// NewLegBook creates an empty leg book.
func NewLegBook() *LegBook {
	return &LegBook{nextID: 1}
}

// Add validates the draft, assigns a fresh id and appends the leg. Ids are
// monotonic and unique for the lifetime of the book. There is no upper bound
// on leg count.
func (b *LegBook) Add(draft LegDraft) (models.OptionLeg, error) {
	if err := validateDraft(draft); err != nil {
		return models.OptionLeg{}, err
	}

	leg := models.OptionLeg{
		ID:          b.nextID,
		Symbol:      draft.Symbol,
		ExpiryDate:  draft.ExpiryDate,
		StrikePrice: draft.StrikePrice,
		OptionType:  draft.OptionType,
		Action:      draft.Action,
		LTP:         draft.LTP,
		Quantity:    draft.Quantity,
	}
	b.nextID++
	b.legs = append(b.legs, leg)
	return leg, nil
}

// Update patches quantity and/or ltp on the leg with the given id and
// returns the updated leg. It fails with ErrLegNotFound when no leg has
// that id.
func (b *LegBook) Update(id int64, patch LegPatch) (models.OptionLeg, error) {
	idx := b.indexOf(id)
	if idx < 0 {
		return models.OptionLeg{}, apperrors.NewLegError(id, "update", apperrors.ErrLegNotFound)
	}

	if patch.Quantity != nil && *patch.Quantity < 1 {
		return models.OptionLeg{}, apperrors.NewValidationError("quantity", *patch.Quantity, "must be at least 1")
	}
	if patch.LTP != nil && *patch.LTP < 0 {
		return models.OptionLeg{}, apperrors.NewValidationError("ltp", *patch.LTP, "must not be negative")
	}

	if patch.Quantity != nil {
		b.legs[idx].Quantity = *patch.Quantity
	}
	if patch.LTP != nil {
		b.legs[idx].LTP = *patch.LTP
	}
	return b.legs[idx], nil
}

// Remove deletes the leg with the given id. A second removal of the same id
// fails with ErrLegNotFound rather than silently succeeding, so callers can
// detect double-removal bugs.
func (b *LegBook) Remove(id int64) error {
	idx := b.indexOf(id)
	if idx < 0 {
		return apperrors.NewLegError(id, "remove", apperrors.ErrLegNotFound)
	}
	b.legs = append(b.legs[:idx], b.legs[idx+1:]...)
	return nil
}

// Legs returns a copy of the legs in insertion order.
func (b *LegBook) Legs() []models.OptionLeg {
	out := make([]models.OptionLeg, len(b.legs))
	copy(out, b.legs)
	return out
}

// Len returns the number of legs in the book.
func (b *LegBook) Len() int {
	return len(b.legs)
}

// Clear discards all legs. Id assignment continues from where it left off,
// keeping ids unique for the lifetime of the book.
func (b *LegBook) Clear() {
	b.legs = nil
}

func (b *LegBook) indexOf(id int64) int {
	for i := range b.legs {
		if b.legs[i].ID == id {
			return i
		}
	}
	return -1
}

func validateDraft(draft LegDraft) error {
	if draft.Quantity < 1 {
		return apperrors.NewValidationError("quantity", draft.Quantity, "must be at least 1")
	}
	if draft.StrikePrice <= 0 {
		return apperrors.NewValidationError("strike_price", draft.StrikePrice, "must be positive")
	}
	if draft.LTP < 0 {
		return apperrors.NewValidationError("ltp", draft.LTP, "must not be negative")
	}
	switch draft.OptionType {
	case models.OptionTypeCall, models.OptionTypePut:
	default:
		return apperrors.NewValidationError("option_type", draft.OptionType, "must be CE or PE")
	}
	switch draft.Action {
	case models.LegActionBuy, models.LegActionSell:
	default:
		return apperrors.NewValidationError("action", draft.Action, "must be BUY or SELL")
	}
	return nil
}
