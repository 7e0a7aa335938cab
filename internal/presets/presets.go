// Package presets builds well-known multi-leg strategies from a chain
// snapshot. A preset picks strikes relative to the ATM strike and captures
// the chain's current premiums into leg drafts; it never touches the leg
// book itself.
package presets

import (
	"sort"

	"options-lab/internal/engine"
	apperrors "options-lab/internal/errors"
	"options-lab/internal/models"
)

// Preset names accepted by Build.
const (
	LongStraddle   = "long-straddle"
	ShortStraddle  = "short-straddle"
	LongStrangle   = "long-strangle"
	ShortStrangle  = "short-strangle"
	BullCallSpread = "bull-call-spread"
	BearPutSpread  = "bear-put-spread"
	IronCondor     = "iron-condor"
	LongButterfly  = "long-butterfly"
)

// legSpec positions one leg relative to the ATM strike. Offset is in chain
// rows, not price, so presets adapt to any strike step.
type legSpec struct {
	offset  int
	optType models.OptionType
	action  models.LegAction
}

var presetSpecs = map[string][]legSpec{
	LongStraddle: {
		{0, models.OptionTypeCall, models.LegActionBuy},
		{0, models.OptionTypePut, models.LegActionBuy},
	},
	ShortStraddle: {
		{0, models.OptionTypeCall, models.LegActionSell},
		{0, models.OptionTypePut, models.LegActionSell},
	},
	LongStrangle: {
		{2, models.OptionTypeCall, models.LegActionBuy},
		{-2, models.OptionTypePut, models.LegActionBuy},
	},
	ShortStrangle: {
		{2, models.OptionTypeCall, models.LegActionSell},
		{-2, models.OptionTypePut, models.LegActionSell},
	},
	BullCallSpread: {
		{0, models.OptionTypeCall, models.LegActionBuy},
		{2, models.OptionTypeCall, models.LegActionSell},
	},
	BearPutSpread: {
		{0, models.OptionTypePut, models.LegActionBuy},
		{-2, models.OptionTypePut, models.LegActionSell},
	},
	IronCondor: {
		{-4, models.OptionTypePut, models.LegActionBuy},
		{-2, models.OptionTypePut, models.LegActionSell},
		{2, models.OptionTypeCall, models.LegActionSell},
		{4, models.OptionTypeCall, models.LegActionBuy},
	},
	LongButterfly: {
		{-2, models.OptionTypeCall, models.LegActionBuy},
		{0, models.OptionTypeCall, models.LegActionSell},
		{0, models.OptionTypeCall, models.LegActionSell},
		{2, models.OptionTypeCall, models.LegActionBuy},
	},
}

// Names lists the available preset names in alphabetical order.
func Names() []string {
	out := make([]string, 0, len(presetSpecs))
	for name := range presetSpecs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Build resolves a preset against a chain snapshot. Every leg gets quantity 1
// and the LTP the chain carries for its strike. It fails with
// ErrUnknownPreset for a name Names() does not list, and with
// ErrStrikeUnavailable when the chain is too narrow around the ATM strike or
// a required quote side is missing.
func Build(name string, chain *models.ExpiryChain) ([]engine.LegDraft, error) {
	specs, ok := presetSpecs[name]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrUnknownPreset, "preset %q", name)
	}
	if chain == nil || len(chain.Data) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrStrikeUnavailable, "empty chain")
	}

	atm := engine.FindATMIndex(chain)
	if atm < 0 {
		return nil, apperrors.Wrap(apperrors.ErrStrikeUnavailable, "chain has no underlying value")
	}

	drafts := make([]engine.LegDraft, 0, len(specs))
	for _, spec := range specs {
		idx := atm + spec.offset
		if idx < 0 || idx >= len(chain.Data) {
			return nil, apperrors.Wrapf(apperrors.ErrStrikeUnavailable,
				"preset %s needs a strike %d steps from ATM", name, spec.offset)
		}
		entry := chain.Data[idx]

		side := entry.Call
		if spec.optType == models.OptionTypePut {
			side = entry.Put
		}
		if side == nil {
			return nil, apperrors.Wrapf(apperrors.ErrStrikeUnavailable,
				"no %s quote at strike %.2f", spec.optType, entry.StrikePrice)
		}

		drafts = append(drafts, engine.LegDraft{
			Symbol:      chain.Symbol,
			ExpiryDate:  chain.ExpiryDate,
			StrikePrice: entry.StrikePrice,
			OptionType:  spec.optType,
			Action:      spec.action,
			LTP:         side.LTP,
			Quantity:    1,
		})
	}
	return drafts, nil
}
