// Package billing orchestrates bill submission: it gates on the cart and
// payment state, posts the bill, and walks the operator through the receipt
// prompt. The backend owns all final figures; nothing computed here is
// authoritative.
package billing

import (
	"context"
	stdErrors "errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/arjunkrish/pharmapos-terminal/internal/backend"
	"github.com/arjunkrish/pharmapos-terminal/internal/cart"
	"github.com/arjunkrish/pharmapos-terminal/internal/payments"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
	"github.com/arjunkrish/pharmapos-terminal/pkg/metrics"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Customer is the optional buyer identity on a bill.
type Customer struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Result is the outcome of a successful submission.
type Result struct {
	Bill             *backend.Bill `json:"bill"`
	ReceiptAvailable bool          `json:"receiptAvailable"`
}

// BillSink receives the calls the billing flow makes against the backend.
type BillSink interface {
	CreateBill(ctx context.Context, req backend.CreateBillRequest) (*backend.Bill, error)
	BillPDF(ctx context.Context, id int64) ([]byte, error)
}

// Prompter is the operator-question surface the flow asks through.
type Prompter interface {
	Confirm(ctx context.Context, title, message string) (bool, error)
}

// Service is the bill-in-progress. One per terminal.
type Service struct {
	cart    *cart.Cart
	split   *payments.Split
	sink    BillSink
	prompts Prompter
	logg    *logger.Logger
	metrics *metrics.TerminalMetrics

	mu       sync.RWMutex
	customer Customer
	receipt  []byte
	lastBill string
}

func New(c *cart.Cart, split *payments.Split, sink BillSink, prompts Prompter, logg *logger.Logger, m *metrics.TerminalMetrics) (*Service, error) {
	if c == nil {
		return nil, stdErrors.New("cart is required")
	}
	if split == nil {
		return nil, stdErrors.New("payment split is required")
	}
	if sink == nil {
		return nil, stdErrors.New("bill sink is required")
	}
	if prompts == nil {
		return nil, stdErrors.New("prompter is required")
	}
	if logg == nil {
		return nil, stdErrors.New("logger is required")
	}
	return &Service{cart: c, split: split, sink: sink, prompts: prompts, logg: logg, metrics: m}, nil
}

// SetCustomer records the optional buyer identity. The phone, when given,
// must be exactly ten digits.
func (s *Service) SetCustomer(customer Customer) error {
	customer.Name = strings.TrimSpace(customer.Name)
	customer.Phone = strings.TrimSpace(customer.Phone)
	if customer.Phone != "" && !phonePattern.MatchString(customer.Phone) {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer phone must be 10 digits")
	}
	s.mu.Lock()
	s.customer = customer
	s.mu.Unlock()
	return nil
}

// Customer returns the recorded buyer identity.
func (s *Service) Customer() Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customer
}

// Submit posts the bill. The cart must be non-empty with every line priced
// and the split must carry at least one positive payment. On success the
// operator is offered the receipt and the bill in progress is cleared; on any
// failure everything stays exactly as it was so the operator can correct and
// retry.
func (s *Service) Submit(ctx context.Context) (*Result, error) {
	req, err := s.buildRequest()
	if err != nil {
		return nil, err
	}

	bill, err := s.sink.CreateBill(ctx, req)
	if err != nil {
		s.metrics.BillSubmitted("failure")
		s.logg.Error(ctx, "bill submission failed", err)
		return nil, err
	}
	s.metrics.BillSubmitted("success")
	s.logg.Info(s.logg.WithField(ctx, "bill_number", bill.BillNumber), "bill created")

	result := &Result{Bill: bill}
	result.ReceiptAvailable = s.offerReceipt(ctx, bill)

	s.reset()
	return result, nil
}

func (s *Service) buildRequest() (backend.CreateBillRequest, error) {
	if s.cart.Empty() {
		return backend.CreateBillRequest{}, pkgerrors.New(pkgerrors.CodeValidation, "the cart is empty")
	}
	if incomplete := s.cart.FirstIncomplete(); incomplete != nil {
		if incomplete.State == cart.ResolutionPending {
			return backend.CreateBillRequest{}, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("price for %s is still loading", incomplete.Name))
		}
		return backend.CreateBillRequest{}, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("%s cannot be billed: %s", incomplete.Name, incomplete.FailureNote))
	}

	paymentReqs, err := s.split.Requests()
	if err != nil {
		return backend.CreateBillRequest{}, err
	}

	lines := s.cart.Lines()
	items := make([]backend.BillItemRequest, 0, len(lines))
	for _, line := range lines {
		id := line.MedicineID
		items = append(items, backend.BillItemRequest{
			MedicineID: &id,
			Barcode:    line.Barcode,
			Quantity:   line.Quantity,
		})
	}

	customer := s.Customer()
	return backend.CreateBillRequest{
		Items:         items,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
		Payments:      paymentReqs,
	}, nil
}

// offerReceipt asks whether to print and, if so, fetches the PDF. A failed
// fetch or a declined prompt never fails the submission; the bill exists
// either way.
func (s *Service) offerReceipt(ctx context.Context, bill *backend.Bill) bool {
	wantReceipt, err := s.prompts.Confirm(ctx, "Bill created",
		fmt.Sprintf("Bill %s saved. Print the receipt?", bill.BillNumber))
	if err != nil || !wantReceipt {
		return false
	}

	pdf, err := s.sink.BillPDF(ctx, bill.ID)
	if err != nil {
		s.logg.Error(ctx, "fetching receipt failed", err)
		return false
	}
	s.mu.Lock()
	s.receipt = pdf
	s.lastBill = bill.BillNumber
	s.mu.Unlock()
	return true
}

// Receipt returns the last fetched receipt and its bill number.
func (s *Service) Receipt() ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.receipt) == 0 {
		return nil, "", pkgerrors.New(pkgerrors.CodeNotFound, "no receipt available")
	}
	return s.receipt, s.lastBill, nil
}

// Clear abandons the bill in progress.
func (s *Service) Clear() {
	s.reset()
}

func (s *Service) reset() {
	s.cart.Reset()
	s.split.Reset()
	s.mu.Lock()
	s.customer = Customer{}
	s.mu.Unlock()
}
