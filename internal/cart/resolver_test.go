package cart

import (
	"context"
	"testing"

	"github.com/arjunkrish/pharmapos-terminal/internal/backend"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
	"github.com/rs/zerolog"
)

type stubSource struct {
	medicines map[string]*backend.Medicine
	batches   map[int64][]backend.Batch
	batchErr  error
}

func (s *stubSource) FindMedicineByBarcode(ctx context.Context, barcode string) (*backend.Medicine, error) {
	med, ok := s.medicines[barcode]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "medicine not found")
	}
	return med, nil
}

func (s *stubSource) BatchesByMedicine(ctx context.Context, medicineID int64) ([]backend.Batch, error) {
	if s.batchErr != nil {
		return nil, s.batchErr
	}
	return s.batches[medicineID], nil
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

func newTestResolver(t *testing.T, c *Cart, source *stubSource) *Resolver {
	t.Helper()
	r, err := NewResolver(c, source, quietLogger())
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return r
}

func TestResolverPicksFirstSellableBatch(t *testing.T) {
	c := New()
	source := &stubSource{
		batches: map[int64][]backend.Batch{
			1: {
				{BatchNumber: "EXP", Expired: true, SellingPrice: 5, QuantityAvailable: 10},
				{BatchNumber: "EMPTY", SellingPrice: 6, QuantityAvailable: 0},
				{BatchNumber: "GOOD", SellingPrice: 7.5, QuantityAvailable: 3},
				{BatchNumber: "CHEAPER", SellingPrice: 2, QuantityAvailable: 8},
			},
		},
	}
	r := newTestResolver(t, c, source)

	r.AddMedicine(context.Background(), testMedicine(1, "Paracetamol", 12), "890")
	r.Wait()

	line := c.Lines()[0]
	if line.State != ResolutionResolved {
		t.Fatalf("expected resolved got %s (%s)", line.State, line.FailureNote)
	}
	if line.BatchNumber != "GOOD" || line.UnitPrice != 7.5 {
		t.Fatalf("expected first sellable batch, got %s at %v", line.BatchNumber, line.UnitPrice)
	}
}

func TestResolverNoSellableStock(t *testing.T) {
	c := New()
	source := &stubSource{
		batches: map[int64][]backend.Batch{
			1: {{BatchNumber: "EXP", Expired: true, QuantityAvailable: 4}},
		},
	}
	r := newTestResolver(t, c, source)

	r.AddMedicine(context.Background(), testMedicine(1, "Paracetamol", 12), "")
	r.Wait()

	line := c.Lines()[0]
	if line.State != ResolutionFailed {
		t.Fatalf("expected failed got %s", line.State)
	}
	if line.Retryable {
		t.Fatal("stock exhaustion is not retryable")
	}
	if line.FailureNote == "" {
		t.Fatal("expected a failure note")
	}
}

func TestResolverNetworkFailureIsRetryable(t *testing.T) {
	c := New()
	source := &stubSource{batchErr: pkgerrors.New(pkgerrors.CodeNetwork, "backend unreachable")}
	r := newTestResolver(t, c, source)

	r.AddMedicine(context.Background(), testMedicine(1, "Paracetamol", 12), "")
	r.Wait()

	line := c.Lines()[0]
	if line.State != ResolutionFailed || !line.Retryable {
		t.Fatalf("expected retryable failure, got %+v", line)
	}
}

func TestResolverRetryAfterFailure(t *testing.T) {
	c := New()
	source := &stubSource{batchErr: pkgerrors.New(pkgerrors.CodeNetwork, "backend unreachable")}
	r := newTestResolver(t, c, source)

	r.AddMedicine(context.Background(), testMedicine(1, "Paracetamol", 12), "")
	r.Wait()

	source.batchErr = nil
	source.batches = map[int64][]backend.Batch{
		1: {{BatchNumber: "B1", SellingPrice: 9, QuantityAvailable: 1}},
	}
	if err := r.Retry(context.Background(), 1); err != nil {
		t.Fatalf("retry: %v", err)
	}
	r.Wait()

	line := c.Lines()[0]
	if line.State != ResolutionResolved || line.UnitPrice != 9 {
		t.Fatalf("expected resolved at 9, got %+v", line)
	}
}

func TestAddByBarcodeUnknownCodeLeavesCartUntouched(t *testing.T) {
	c := New()
	source := &stubSource{medicines: map[string]*backend.Medicine{}}
	r := newTestResolver(t, c, source)

	_, err := r.AddByBarcode(context.Background(), "nope")
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found got %v", err)
	}
	if !c.Empty() {
		t.Fatal("cart should stay empty on unknown code")
	}
}

func TestAddByBarcodeSecondScanDoesNotReprice(t *testing.T) {
	c := New()
	med := testMedicine(1, "Paracetamol", 12)
	source := &stubSource{
		medicines: map[string]*backend.Medicine{"890": &med, "999": &med},
		batches: map[int64][]backend.Batch{
			1: {{BatchNumber: "B1", SellingPrice: 4, QuantityAvailable: 2}},
		},
	}
	r := newTestResolver(t, c, source)

	if _, err := r.AddByBarcode(context.Background(), "890"); err != nil {
		t.Fatalf("first scan: %v", err)
	}
	r.Wait()
	if _, err := r.AddByBarcode(context.Background(), "999"); err != nil {
		t.Fatalf("second scan: %v", err)
	}
	r.Wait()

	line := c.Lines()[0]
	if line.Quantity != 2 || line.Barcode != "890" || line.State != ResolutionResolved {
		t.Fatalf("unexpected merged line: %+v", line)
	}
}
