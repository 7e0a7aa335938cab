// Package models defines the domain types shared across the application.
package models

// OptionType identifies the option contract type.
type OptionType string

const (
	OptionTypeCall OptionType = "CE"
	OptionTypePut  OptionType = "PE"
)

// LegAction identifies the direction of a strategy leg.
type LegAction string

const (
	LegActionBuy  LegAction = "BUY"
	LegActionSell LegAction = "SELL"
)

// Underlying identifies a tradeable instrument. Reference data, created by
// the chain source and never mutated by the engine.
type Underlying struct {
	Symbol  string `json:"symbol"`
	Name    string `json:"name"`
	LotSize int    `json:"lot_size"`
}

// OptionGreeks represents option Greeks.
type OptionGreeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
}

// QuoteSide is the market snapshot for one option contract at one strike.
// It is supplied by the chain source; the engine treats it as read-only.
type QuoteSide struct {
	LTP      float64      `json:"ltp"`
	BidPrice float64      `json:"bid_price"`
	AskPrice float64      `json:"ask_price"`
	IV       float64      `json:"iv"`
	OI       int64        `json:"oi"`
	Volume   int64        `json:"volume"`
	Greeks   OptionGreeks `json:"greeks"`
}

// StrikeEntry is one strike row of an expiry chain. A strike may carry only
// a call, only a put, or both.
type StrikeEntry struct {
	StrikePrice float64    `json:"strike_price"`
	Call        *QuoteSide `json:"call,omitempty"`
	Put         *QuoteSide `json:"put,omitempty"`
}

// ExpiryChain is one expiry's worth of strike rows for one underlying.
// Strikes are ordered ascending by price. UnderlyingValue is nil while the
// chain source has not yet supplied a reference value.
type ExpiryChain struct {
	Symbol          string        `json:"symbol"`
	ExpiryDate      string        `json:"expiry_date"`
	UnderlyingValue *float64      `json:"underlying_value,omitempty"`
	Data            []StrikeEntry `json:"data"`
}

// OptionLeg is one line of a strategy. LTP is the premium captured when the
// leg was added; later chain moves never change it retroactively.
type OptionLeg struct {
	ID          int64      `json:"id"`
	Symbol      string     `json:"symbol"`
	ExpiryDate  string     `json:"expiry_date"`
	StrikePrice float64    `json:"strike_price"`
	OptionType  OptionType `json:"option_type"`
	Action      LegAction  `json:"action"`
	LTP         float64    `json:"ltp"`
	Quantity    int        `json:"quantity"`
}

// PayoffPoint is one sample of the strategy P&L curve.
type PayoffPoint struct {
	Price float64 `json:"price"`
	PnL   float64 `json:"pnl"`
}

// RiskMetrics is the derived risk snapshot for a strategy. MaxProfit and
// MaxLoss hold the sampled extrema; the Unbounded flags mark wings whose
// payoff is still rising or falling at the sampled boundary.
type RiskMetrics struct {
	MaxProfit          float64   `json:"max_profit"`
	MaxProfitUnbounded bool      `json:"max_profit_unbounded"`
	MaxLoss            float64   `json:"max_loss"`
	MaxLossUnbounded   bool      `json:"max_loss_unbounded"`
	Breakevens         []float64 `json:"breakevens"`
	NetPremium         float64   `json:"net_premium"`
	EstimatedMargin    float64   `json:"estimated_margin"`
}

// StrategyAnalytics is the full derived view of a strategy against a chain
// snapshot: the ATM strike index, the sampled payoff curve and the risk
// metrics. It is recomputed from scratch on every request.
type StrategyAnalytics struct {
	ATMIndex int           `json:"atm_index"`
	Curve    []PayoffPoint `json:"curve"`
	Metrics  RiskMetrics   `json:"metrics"`
}
