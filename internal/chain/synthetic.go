package chain

import (
	"math"
	"sort"
	"strings"
	"time"

	apperrors "options-lab/internal/errors"
	"options-lab/internal/models"
)

// Instrument is the reference data the synthetic provider needs to fabricate
// a plausible chain for one underlying.
type Instrument struct {
	Symbol     string
	Name       string
	LotSize    int
	Spot       float64
	StrikeStep float64
}

// syntheticProvider fabricates deterministic option chains so the whole
// application works offline. Premiums, greeks and open interest are derived
// from the distance between strike and spot with fixed formulas: the same
// instrument table and base date always produce the same chain.
type syntheticProvider struct {
	instruments map[string]Instrument
	order       []string
	expiries    []string

	strikesPerSide int
}

// weeklyExpiryCount is how many weekly expiries the synthetic source offers.
const weeklyExpiryCount = 4

// NewSyntheticProvider creates a provider serving the given instruments.
// Expiry dates are the next weekly Thursdays from baseDate.
func NewSyntheticProvider(instruments []Instrument, baseDate time.Time) Provider {
	p := &syntheticProvider{
		instruments:    make(map[string]Instrument, len(instruments)),
		strikesPerSide: 10,
	}
	for _, inst := range instruments {
		sym := strings.ToUpper(inst.Symbol)
		if _, ok := p.instruments[sym]; !ok {
			p.order = append(p.order, sym)
		}
		inst.Symbol = sym
		p.instruments[sym] = inst
	}
	sort.Strings(p.order)

	expiry := nextThursday(baseDate)
	for i := 0; i < weeklyExpiryCount; i++ {
		p.expiries = append(p.expiries, expiry.Format("2006-01-02"))
		expiry = expiry.AddDate(0, 0, 7)
	}
	return p
}

func nextThursday(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(time.Thursday) - int(day.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return day.AddDate(0, 0, offset)
}

func (p *syntheticProvider) Underlyings() []models.Underlying {
	out := make([]models.Underlying, 0, len(p.order))
	for _, sym := range p.order {
		inst := p.instruments[sym]
		out = append(out, models.Underlying{
			Symbol:  inst.Symbol,
			Name:    inst.Name,
			LotSize: inst.LotSize,
		})
	}
	return out
}

func (p *syntheticProvider) ExpiryDates(symbol string) ([]string, error) {
	if _, ok := p.instruments[strings.ToUpper(symbol)]; !ok {
		return nil, apperrors.Wrapf(apperrors.ErrSymbolNotFound, "synthetic chain for %q", symbol)
	}
	out := make([]string, len(p.expiries))
	copy(out, p.expiries)
	return out, nil
}

func (p *syntheticProvider) Chain(symbol, expiryDate string) (*models.ExpiryChain, error) {
	inst, ok := p.instruments[strings.ToUpper(symbol)]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrSymbolNotFound, "synthetic chain for %q", symbol)
	}

	expiryIdx := 0
	if expiryDate != "" {
		expiryIdx = -1
		for i, e := range p.expiries {
			if e == expiryDate {
				expiryIdx = i
				break
			}
		}
		if expiryIdx < 0 {
			return nil, apperrors.Wrapf(apperrors.ErrExpiryNotFound, "expiry %q for %s", expiryDate, inst.Symbol)
		}
	}

	spot := inst.Spot
	atmStrike := math.Round(spot/inst.StrikeStep) * inst.StrikeStep

	chain := &models.ExpiryChain{
		Symbol:          inst.Symbol,
		ExpiryDate:      p.expiries[expiryIdx],
		UnderlyingValue: &spot,
	}
	for i := -p.strikesPerSide; i <= p.strikesPerSide; i++ {
		strike := atmStrike + float64(i)*inst.StrikeStep
		if strike <= 0 {
			continue
		}
		chain.Data = append(chain.Data, models.StrikeEntry{
			StrikePrice: strike,
			Call:        p.quote(inst, strike, spot, expiryIdx, models.OptionTypeCall),
			Put:         p.quote(inst, strike, spot, expiryIdx, models.OptionTypePut),
		})
	}
	return chain, nil
}

// quote fabricates one side of a strike row. Time value follows a Gaussian
// bump centered at the spot, scaled up for farther expiries; intrinsic value
// is exact.
func (p *syntheticProvider) quote(inst Instrument, strike, spot float64, expiryIdx int, optType models.OptionType) *models.QuoteSide {
	width := spot * 0.03
	dist := strike - spot
	bump := math.Exp(-(dist * dist) / (2 * width * width))

	timeValue := spot * 0.012 * bump * (1 + 0.35*float64(expiryIdx))

	intrinsic := 0.0
	callDelta := 1 / (1 + math.Exp(-(spot-strike)/width))
	delta := callDelta
	if optType == models.OptionTypeCall {
		intrinsic = math.Max(0, spot-strike)
	} else {
		intrinsic = math.Max(0, strike-spot)
		delta = callDelta - 1
	}

	ltp := round2(intrinsic + timeValue)
	spread := math.Max(0.05, ltp*0.004)

	// Liquidity tails off away from the money.
	oi := int64(1000 + 150000*bump)
	volume := int64(500 + 90000*bump)

	return &models.QuoteSide{
		LTP:      ltp,
		BidPrice: round2(math.Max(0, ltp-spread)),
		AskPrice: round2(ltp + spread),
		IV:       round2(11 + 6*(1-bump) + 1.5*float64(expiryIdx)),
		OI:       oi,
		Volume:   volume,
		Greeks: models.OptionGreeks{
			Delta: round4(delta),
			Gamma: round4(0.004 * bump / math.Max(1, inst.StrikeStep/10)),
			Theta: round2(-timeValue / 30),
			Vega:  round2(timeValue * 0.8),
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
