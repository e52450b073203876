package cart

import (
	"context"
	"strings"
	"sync"

	"github.com/arjunkrish/pharmapos-terminal/internal/backend"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
)

// MedicineSource is the slice of the backend the resolver needs.
type MedicineSource interface {
	FindMedicineByBarcode(ctx context.Context, barcode string) (*backend.Medicine, error)
	BatchesByMedicine(ctx context.Context, medicineID int64) ([]backend.Batch, error)
}

// Resolver adds medicines to a cart and prices them asynchronously. Pricing
// picks the first non-expired batch with stock, in backend order; a line with
// no such batch fails with a note instead of blocking the cart.
type Resolver struct {
	cart    *Cart
	source  MedicineSource
	logg    *logger.Logger
	pending sync.WaitGroup
}

func NewResolver(cart *Cart, source MedicineSource, logg *logger.Logger) (*Resolver, error) {
	if cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart is required")
	}
	if source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "medicine source is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger is required")
	}
	return &Resolver{cart: cart, source: source, logg: logg}, nil
}

// AddByBarcode resolves a scanned code to a medicine and merges it into the
// cart. The lookup is exact; an unknown code surfaces the backend's not-found
// error and the cart is untouched.
func (r *Resolver) AddByBarcode(ctx context.Context, barcode string) (Line, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "barcode is required")
	}
	med, err := r.source.FindMedicineByBarcode(ctx, barcode)
	if err != nil {
		return Line{}, err
	}
	return r.AddMedicine(ctx, *med, barcode), nil
}

// AddMedicine merges a medicine into the cart and kicks off pricing for new
// lines. Existing lines keep their price state; only their quantity moves.
func (r *Resolver) AddMedicine(ctx context.Context, med backend.Medicine, barcode string) Line {
	line, generation := r.cart.Add(med, barcode)
	if line.State == ResolutionPending && line.Quantity == 1 {
		r.resolveAsync(ctx, generation, med.ID)
	}
	return line
}

// Retry reruns pricing for a failed line.
func (r *Resolver) Retry(ctx context.Context, medicineID int64) error {
	generation, err := r.cart.markPending(medicineID)
	if err != nil {
		return err
	}
	r.resolveAsync(ctx, generation, medicineID)
	return nil
}

// Wait blocks until every in-flight resolution has settled. Tests use it; the
// serving path never does.
func (r *Resolver) Wait() {
	r.pending.Wait()
}

func (r *Resolver) resolveAsync(ctx context.Context, generation uint64, medicineID int64) {
	logCtx := r.logg.WithField(context.WithoutCancel(ctx), "medicine_id", medicineID)
	r.pending.Add(1)
	go func() {
		defer r.pending.Done()
		r.resolve(logCtx, generation, medicineID)
	}()
}

func (r *Resolver) resolve(ctx context.Context, generation uint64, medicineID int64) {
	batches, err := r.source.BatchesByMedicine(ctx, medicineID)
	if err != nil {
		retryable := pkgerrors.MetadataFor(pkgerrors.As(err).Code()).Retryable
		if r.cart.markFailed(generation, medicineID, "price lookup failed", retryable) {
			r.logg.Error(ctx, "price lookup failed", err)
		}
		return
	}

	for _, batch := range batches {
		if batch.Expired || batch.QuantityAvailable <= 0 {
			continue
		}
		if r.cart.markResolved(generation, medicineID, batch.SellingPrice, batch.BatchNumber) {
			r.logg.Info(ctx, "line priced")
		}
		return
	}

	if r.cart.markFailed(generation, medicineID, "no sellable stock", false) {
		r.logg.Warn(ctx, "no sellable stock for line")
	}
}
