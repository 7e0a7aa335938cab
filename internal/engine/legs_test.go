package engine

import (
	"testing"

	apperrors "options-lab/internal/errors"
	"options-lab/internal/models"
)

func longCallDraft() LegDraft {
	return LegDraft{
		Symbol:      "NIFTY",
		ExpiryDate:  "2026-09-24",
		StrikePrice: 100,
		OptionType:  models.OptionTypeCall,
		Action:      models.LegActionBuy,
		LTP:         5,
		Quantity:    1,
	}
}

func TestLegBookAddAssignsUniqueIDsInOrder(t *testing.T) {
	book := NewLegBook()

	first, err := book.Add(longCallDraft())
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	second, err := book.Add(longCallDraft())
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if first.ID == second.ID {
		t.Fatalf("Add() assigned duplicate id %d", first.ID)
	}

	legs := book.Legs()
	if len(legs) != 2 {
		t.Fatalf("Legs() len = %d, want 2", len(legs))
	}
	if legs[0].ID != first.ID || legs[1].ID != second.ID {
		t.Errorf("Legs() order = [%d %d], want [%d %d]", legs[0].ID, legs[1].ID, first.ID, second.ID)
	}
}

func TestLegBookKeepsDuplicateLegsSeparate(t *testing.T) {
	book := NewLegBook()

	// Scaling into the same position in two steps must produce two entries.
	if _, err := book.Add(longCallDraft()); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := book.Add(longCallDraft()); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if book.Len() != 2 {
		t.Errorf("Len() = %d, want 2 separate entries for identical drafts", book.Len())
	}
}

func TestLegBookAddValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LegDraft)
	}{
		{"zero quantity", func(d *LegDraft) { d.Quantity = 0 }},
		{"negative quantity", func(d *LegDraft) { d.Quantity = -2 }},
		{"zero strike", func(d *LegDraft) { d.StrikePrice = 0 }},
		{"negative ltp", func(d *LegDraft) { d.LTP = -0.05 }},
		{"bad option type", func(d *LegDraft) { d.OptionType = "XX" }},
		{"bad action", func(d *LegDraft) { d.Action = "HOLD" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := NewLegBook()
			draft := longCallDraft()
			tt.mutate(&draft)

			_, err := book.Add(draft)
			if err == nil {
				t.Fatal("Add() error = nil, want validation error")
			}
			if !apperrors.Is(err, apperrors.ErrInvalidLeg) {
				t.Errorf("Add() error = %v, want ErrInvalidLeg in chain", err)
			}
			if book.Len() != 0 {
				t.Errorf("Len() = %d after rejected add, want 0", book.Len())
			}
		})
	}
}

func TestLegBookUpdatePatchesMutableFieldsOnly(t *testing.T) {
	book := NewLegBook()
	leg, err := book.Add(longCallDraft())
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	qty := 3
	ltp := 7.25
	updated, err := book.Update(leg.ID, LegPatch{Quantity: &qty, LTP: &ltp})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Quantity != 3 || updated.LTP != 7.25 {
		t.Errorf("Update() = qty %d ltp %.2f, want qty 3 ltp 7.25", updated.Quantity, updated.LTP)
	}
	// Immutable fields must survive the patch untouched.
	if updated.StrikePrice != leg.StrikePrice || updated.OptionType != leg.OptionType ||
		updated.Action != leg.Action || updated.Symbol != leg.Symbol || updated.ExpiryDate != leg.ExpiryDate {
		t.Errorf("Update() changed immutable fields: %+v", updated)
	}

	// Partial patch leaves the other field alone.
	qty2 := 5
	updated, err = book.Update(leg.ID, LegPatch{Quantity: &qty2})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Quantity != 5 || updated.LTP != 7.25 {
		t.Errorf("partial Update() = qty %d ltp %.2f, want qty 5 ltp 7.25", updated.Quantity, updated.LTP)
	}
}

func TestLegBookUpdateValidation(t *testing.T) {
	book := NewLegBook()
	leg, err := book.Add(longCallDraft())
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	badQty := 0
	if _, err := book.Update(leg.ID, LegPatch{Quantity: &badQty}); !apperrors.Is(err, apperrors.ErrInvalidLeg) {
		t.Errorf("Update(qty=0) error = %v, want ErrInvalidLeg", err)
	}
	badLTP := -1.0
	if _, err := book.Update(leg.ID, LegPatch{LTP: &badLTP}); !apperrors.Is(err, apperrors.ErrInvalidLeg) {
		t.Errorf("Update(ltp=-1) error = %v, want ErrInvalidLeg", err)
	}
}

func TestLegBookUpdateUnknownID(t *testing.T) {
	book := NewLegBook()
	qty := 2
	_, err := book.Update(42, LegPatch{Quantity: &qty})
	if !apperrors.Is(err, apperrors.ErrLegNotFound) {
		t.Errorf("Update(unknown) error = %v, want ErrLegNotFound", err)
	}
}

func TestLegBookRemoveThenRemoveFails(t *testing.T) {
	book := NewLegBook()
	leg, err := book.Add(longCallDraft())
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := book.Remove(leg.ID); err != nil {
		t.Fatalf("first Remove() error = %v", err)
	}
	err = book.Remove(leg.ID)
	if !apperrors.Is(err, apperrors.ErrLegNotFound) {
		t.Errorf("second Remove() error = %v, want ErrLegNotFound", err)
	}
}

func TestLegBookRemoveKeepsOrder(t *testing.T) {
	book := NewLegBook()
	var ids []int64
	for i := 0; i < 4; i++ {
		leg, err := book.Add(longCallDraft())
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		ids = append(ids, leg.ID)
	}

	if err := book.Remove(ids[1]); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	legs := book.Legs()
	want := []int64{ids[0], ids[2], ids[3]}
	if len(legs) != len(want) {
		t.Fatalf("Legs() len = %d, want %d", len(legs), len(want))
	}
	for i := range want {
		if legs[i].ID != want[i] {
			t.Errorf("Legs()[%d].ID = %d, want %d", i, legs[i].ID, want[i])
		}
	}
}

func TestLegBookClear(t *testing.T) {
	book := NewLegBook()
	if _, err := book.Add(longCallDraft()); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	book.Clear()
	if book.Len() != 0 {
		t.Errorf("Len() = %d after Clear(), want 0", book.Len())
	}

	// Ids must stay unique across a clear.
	leg, err := book.Add(longCallDraft())
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if leg.ID != 2 {
		t.Errorf("Add() after Clear() id = %d, want 2", leg.ID)
	}
}

func TestLegBookLegsReturnsCopy(t *testing.T) {
	book := NewLegBook()
	if _, err := book.Add(longCallDraft()); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	legs := book.Legs()
	legs[0].Quantity = 99

	if book.Legs()[0].Quantity == 99 {
		t.Error("Legs() exposed internal storage, want a copy")
	}
}
