package payments

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/arjunkrish/pharmapos-terminal/internal/backend"
	"github.com/arjunkrish/pharmapos-terminal/pkg/enums"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
)

// Entry is one payment row on the billing screen. CashTendered is a change
// calculator for the operator only and never leaves the terminal.
type Entry struct {
	ID           int               `json:"id"`
	Mode         enums.PaymentMode `json:"mode"`
	Amount       float64           `json:"amount"`
	Reference    string            `json:"reference,omitempty"`
	CashTendered float64           `json:"cashTendered,omitempty"`
}

// Change returns what the operator owes the customer back, never negative.
// Only meaningful for cash entries.
func (e Entry) Change() float64 {
	if e.Mode != enums.PaymentModeCash {
		return 0
	}
	change := decimal.NewFromFloat(e.CashTendered).Sub(decimal.NewFromFloat(e.Amount))
	if change.IsNegative() {
		return 0
	}
	return change.Round(2).InexactFloat64()
}

// Split holds the payment rows of the bill in progress. At least one row is
// always present; removing the last row is refused rather than leaving the
// screen empty.
type Split struct {
	mu      sync.RWMutex
	entries []*Entry
	nextID  int
}

// NewSplit starts with one default cash row at zero, matching a fresh bill.
func NewSplit() *Split {
	s := &Split{}
	s.Reset()
	return s
}

// Add appends a default cash row and returns it.
func (s *Split) Add() Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.addLocked()
}

func (s *Split) addLocked() *Entry {
	entry := &Entry{ID: s.nextID, Mode: enums.PaymentModeCash}
	s.nextID++
	s.entries = append(s.entries, entry)
	return entry
}

// Update replaces the mutable fields of one row.
func (s *Split) Update(id int, mode enums.PaymentMode, amount float64, reference string, cashTendered float64) (Entry, error) {
	if !mode.IsValid() {
		return Entry{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment mode")
	}
	if amount < 0 {
		return Entry{}, pkgerrors.New(pkgerrors.CodeValidation, "payment amount cannot be negative")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries {
		if entry.ID == id {
			entry.Mode = mode
			entry.Amount = amount
			entry.Reference = reference
			entry.CashTendered = cashTendered
			if mode != enums.PaymentModeCash {
				entry.CashTendered = 0
			}
			return *entry, nil
		}
	}
	return Entry{}, entryNotFound(id)
}

// Remove deletes one row. The last remaining row cannot be removed.
func (s *Split) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) <= 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one payment entry is required")
	}
	for i, entry := range s.entries {
		if entry.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return entryNotFound(id)
}

// Reset returns the split to a single default cash row.
func (s *Split) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.addLocked()
}

// Entries returns the rows in display order.
func (s *Split) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, *entry)
	}
	return out
}

// Collected sums every row's amount, rounded to two decimals.
func (s *Split) Collected() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, entry := range s.entries {
		total = total.Add(decimal.NewFromFloat(entry.Amount))
	}
	return total.Round(2).InexactFloat64()
}

// Requests converts the rows with a positive amount into the wire payload.
// Zero rows are left off the request; an all-zero split yields an error since
// a bill needs at least one real payment.
func (s *Split) Requests() ([]backend.PaymentRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]backend.PaymentRequest, 0, len(s.entries))
	for _, entry := range s.entries {
		if entry.Amount <= 0 {
			continue
		}
		out = append(out, backend.PaymentRequest{
			Mode:             entry.Mode,
			Amount:           entry.Amount,
			PaymentReference: entry.Reference,
		})
	}
	if len(out) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one payment with a positive amount is required")
	}
	return out, nil
}

func entryNotFound(id int) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no payment entry %d", id))
}
