package chain

import (
	"testing"
	"time"

	apperrors "options-lab/internal/errors"
	"options-lab/internal/engine"
)

var testInstruments = []Instrument{
	{Symbol: "NIFTY", Name: "Nifty 50", LotSize: 50, Spot: 19525.50, StrikeStep: 50},
	{Symbol: "BANKNIFTY", Name: "Nifty Bank", LotSize: 15, Spot: 44310.25, StrikeStep: 100},
}

var testBase = time.Date(2026, time.August, 24, 10, 0, 0, 0, time.UTC)

func TestSyntheticChainShape(t *testing.T) {
	p := NewSyntheticProvider(testInstruments, testBase)

	chain, err := p.Chain("NIFTY", "")
	if err != nil {
		t.Fatalf("Chain() error = %v", err)
	}

	if chain.UnderlyingValue == nil || *chain.UnderlyingValue != 19525.50 {
		t.Fatalf("UnderlyingValue = %v, want 19525.50", chain.UnderlyingValue)
	}
	if len(chain.Data) != 21 {
		t.Errorf("strike count = %d, want 21", len(chain.Data))
	}

	// Ascending strikes is the invariant the ATM locator depends on.
	for i := 1; i < len(chain.Data); i++ {
		if chain.Data[i].StrikePrice <= chain.Data[i-1].StrikePrice {
			t.Fatalf("strikes not ascending at %d: %.2f after %.2f",
				i, chain.Data[i].StrikePrice, chain.Data[i-1].StrikePrice)
		}
	}

	for i, entry := range chain.Data {
		if entry.Call == nil || entry.Put == nil {
			t.Fatalf("entry %d missing a quote side", i)
		}
		if entry.Call.LTP < 0 || entry.Put.LTP < 0 {
			t.Errorf("entry %d has negative premium", i)
		}
		if entry.Call.BidPrice > entry.Call.AskPrice {
			t.Errorf("entry %d call bid %.2f above ask %.2f", i, entry.Call.BidPrice, entry.Call.AskPrice)
		}
	}

	if atm := engine.FindATMIndex(chain); atm < 0 {
		t.Error("FindATMIndex() = -1 on a populated synthetic chain")
	}
}

func TestSyntheticChainDeterminism(t *testing.T) {
	a := NewSyntheticProvider(testInstruments, testBase)
	b := NewSyntheticProvider(testInstruments, testBase)

	chainA, err := a.Chain("BANKNIFTY", "")
	if err != nil {
		t.Fatalf("Chain() error = %v", err)
	}
	chainB, err := b.Chain("BANKNIFTY", "")
	if err != nil {
		t.Fatalf("Chain() error = %v", err)
	}

	if chainA.ExpiryDate != chainB.ExpiryDate || len(chainA.Data) != len(chainB.Data) {
		t.Fatalf("chains differ in shape: %s/%d vs %s/%d",
			chainA.ExpiryDate, len(chainA.Data), chainB.ExpiryDate, len(chainB.Data))
	}
	for i := range chainA.Data {
		if *chainA.Data[i].Call != *chainB.Data[i].Call || *chainA.Data[i].Put != *chainB.Data[i].Put {
			t.Fatalf("entry %d differs between identically configured providers", i)
		}
	}
}

func TestSyntheticExpiryDates(t *testing.T) {
	p := NewSyntheticProvider(testInstruments, testBase)

	expiries, err := p.ExpiryDates("NIFTY")
	if err != nil {
		t.Fatalf("ExpiryDates() error = %v", err)
	}
	if len(expiries) != weeklyExpiryCount {
		t.Fatalf("expiry count = %d, want %d", len(expiries), weeklyExpiryCount)
	}

	// 2026-08-24 is a Monday; the first weekly expiry lands on Thursday the 27th.
	if expiries[0] != "2026-08-27" {
		t.Errorf("first expiry = %s, want 2026-08-27", expiries[0])
	}
	for i := 1; i < len(expiries); i++ {
		if expiries[i] <= expiries[i-1] {
			t.Errorf("expiries not ascending: %v", expiries)
		}
	}

	// A chain for a listed expiry resolves to that expiry.
	chain, err := p.Chain("NIFTY", expiries[2])
	if err != nil {
		t.Fatalf("Chain(expiry) error = %v", err)
	}
	if chain.ExpiryDate != expiries[2] {
		t.Errorf("ExpiryDate = %s, want %s", chain.ExpiryDate, expiries[2])
	}
}

func TestSyntheticUnknownSymbolAndExpiry(t *testing.T) {
	p := NewSyntheticProvider(testInstruments, testBase)

	if _, err := p.Chain("RELIANCE", ""); !apperrors.Is(err, apperrors.ErrSymbolNotFound) {
		t.Errorf("Chain(unknown symbol) error = %v, want ErrSymbolNotFound", err)
	}
	if _, err := p.ExpiryDates("RELIANCE"); !apperrors.Is(err, apperrors.ErrSymbolNotFound) {
		t.Errorf("ExpiryDates(unknown symbol) error = %v, want ErrSymbolNotFound", err)
	}
	if _, err := p.Chain("NIFTY", "2031-01-01"); !apperrors.Is(err, apperrors.ErrExpiryNotFound) {
		t.Errorf("Chain(unknown expiry) error = %v, want ErrExpiryNotFound", err)
	}
}

func TestSyntheticUnderlyings(t *testing.T) {
	p := NewSyntheticProvider(testInstruments, testBase)

	unds := p.Underlyings()
	if len(unds) != 2 {
		t.Fatalf("Underlyings() len = %d, want 2", len(unds))
	}
	// Sorted by symbol.
	if unds[0].Symbol != "BANKNIFTY" || unds[1].Symbol != "NIFTY" {
		t.Errorf("Underlyings() order = %s, %s", unds[0].Symbol, unds[1].Symbol)
	}
	if unds[1].LotSize != 50 || unds[0].LotSize != 15 {
		t.Errorf("lot sizes = %d, %d, want 15, 50", unds[0].LotSize, unds[1].LotSize)
	}
}
