package payments

import (
	"testing"

	"github.com/arjunkrish/pharmapos-terminal/pkg/enums"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
)

func TestNewSplitStartsWithOneCashRow(t *testing.T) {
	s := NewSplit()
	entries := s.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry got %d", len(entries))
	}
	if entries[0].Mode != enums.PaymentModeCash || entries[0].Amount != 0 {
		t.Fatalf("expected default cash row, got %+v", entries[0])
	}
}

func TestRemoveRefusesLastRow(t *testing.T) {
	s := NewSplit()
	id := s.Entries()[0].ID
	if err := s.Remove(id); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error got %v", err)
	}

	added := s.Add()
	if err := s.Remove(added.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Entries()) != 1 {
		t.Fatalf("expected 1 entry after remove, got %d", len(s.Entries()))
	}
}

func TestUpdateClearsTenderedForNonCash(t *testing.T) {
	s := NewSplit()
	id := s.Entries()[0].ID

	entry, err := s.Update(id, enums.PaymentModeUPI, 250, "upi-ref-1", 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.CashTendered != 0 {
		t.Fatalf("tendered cash should clear on non-cash modes, got %v", entry.CashTendered)
	}
	if entry.Change() != 0 {
		t.Fatalf("non-cash change must be zero, got %v", entry.Change())
	}
}

func TestChangeNeverNegative(t *testing.T) {
	s := NewSplit()
	id := s.Entries()[0].ID

	entry, err := s.Update(id, enums.PaymentModeCash, 180.50, "", 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Change() != 19.50 {
		t.Fatalf("expected change 19.50 got %v", entry.Change())
	}

	entry, _ = s.Update(id, enums.PaymentModeCash, 180.50, "", 100)
	if entry.Change() != 0 {
		t.Fatalf("underpaid tender must yield zero change, got %v", entry.Change())
	}
}

func TestUpdateValidation(t *testing.T) {
	s := NewSplit()
	id := s.Entries()[0].ID

	if _, err := s.Update(id, enums.PaymentMode("CHEQUE"), 10, "", 0); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for mode, got %v", err)
	}
	if _, err := s.Update(id, enums.PaymentModeCash, -1, "", 0); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for amount, got %v", err)
	}
	if _, err := s.Update(99, enums.PaymentModeCash, 10, "", 0); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRequestsDropZeroRows(t *testing.T) {
	s := NewSplit()
	first := s.Entries()[0].ID
	s.Update(first, enums.PaymentModeCash, 100, "", 100)
	second := s.Add()
	s.Update(second.ID, enums.PaymentModeCard, 0, "", 0)

	reqs, err := s.Requests()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request got %d", len(reqs))
	}
	if reqs[0].Mode != enums.PaymentModeCash || reqs[0].Amount != 100 {
		t.Fatalf("unexpected request: %+v", reqs[0])
	}
}

func TestRequestsAllZeroIsError(t *testing.T) {
	s := NewSplit()
	if _, err := s.Requests(); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestCollected(t *testing.T) {
	s := NewSplit()
	first := s.Entries()[0].ID
	s.Update(first, enums.PaymentModeCash, 10.10, "", 0)
	second := s.Add()
	s.Update(second.ID, enums.PaymentModeUPI, 20.20, "ref", 0)

	if got := s.Collected(); got != 30.30 {
		t.Fatalf("expected 30.30 got %v", got)
	}
}

func TestResetReturnsToSingleCashRow(t *testing.T) {
	s := NewSplit()
	s.Add()
	s.Add()
	s.Reset()

	entries := s.Entries()
	if len(entries) != 1 || entries[0].Mode != enums.PaymentModeCash || entries[0].Amount != 0 {
		t.Fatalf("reset should leave one default cash row, got %+v", entries)
	}
}
