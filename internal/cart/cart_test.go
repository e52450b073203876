package cart

import (
	"testing"

	"github.com/arjunkrish/pharmapos-terminal/internal/backend"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
)

func testMedicine(id int64, name string, gst float64) backend.Medicine {
	return backend.Medicine{ID: id, Name: name, GSTPercentage: gst}
}

func TestAddMergesByMedicineAndKeepsFirstBarcode(t *testing.T) {
	c := New()

	c.Add(testMedicine(1, "Paracetamol", 12), "8901234")
	line, _ := c.Add(testMedicine(1, "Paracetamol", 12), "9998887")

	if line.Quantity != 2 {
		t.Fatalf("expected quantity 2 got %d", line.Quantity)
	}
	if line.Barcode != "8901234" {
		t.Fatalf("expected original barcode kept, got %q", line.Barcode)
	}
	if c.Size() != 1 {
		t.Fatalf("expected one line got %d", c.Size())
	}
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	c := New()
	c.Add(testMedicine(3, "C", 0), "")
	c.Add(testMedicine(1, "A", 0), "")
	c.Add(testMedicine(2, "B", 0), "")

	lines := c.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines got %d", len(lines))
	}
	want := []int64{3, 1, 2}
	for i, id := range want {
		if lines[i].MedicineID != id {
			t.Fatalf("line %d: expected medicine %d got %d", i, id, lines[i].MedicineID)
		}
	}
}

func TestSetQuantityRejectsBelowOne(t *testing.T) {
	c := New()
	c.Add(testMedicine(1, "Paracetamol", 12), "")

	if err := c.SetQuantity(1, 0); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
	if err := c.SetQuantity(1, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Lines()[0].Quantity; got != 5 {
		t.Fatalf("expected quantity 5 got %d", got)
	}
}

func TestSetQuantityUnknownLine(t *testing.T) {
	c := New()
	if err := c.SetQuantity(42, 1); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found got %v", err)
	}
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add(testMedicine(1, "Paracetamol", 12), "")
	if err := c.Remove(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Empty() {
		t.Fatal("expected empty cart")
	}
	if err := c.Remove(1); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found got %v", err)
	}
}

func TestResetDiscardsStaleResolution(t *testing.T) {
	c := New()
	_, generation := c.Add(testMedicine(1, "Paracetamol", 12), "")

	c.Reset()
	c.Add(testMedicine(1, "Paracetamol", 12), "")

	if c.markResolved(generation, 1, 10, "B1") {
		t.Fatal("stale resolution applied after reset")
	}
	if got := c.Lines()[0].State; got != ResolutionPending {
		t.Fatalf("expected pending got %s", got)
	}
}

func TestTotalsSkipUnresolvedAndOutOfRangeGST(t *testing.T) {
	c := New()

	_, gen := c.Add(testMedicine(1, "Taxed", 12), "")
	c.markResolved(gen, 1, 100, "B1")

	c.Add(testMedicine(2, "ZeroGST", 0), "")
	c.markResolved(gen, 2, 50, "B2")

	c.Add(testMedicine(3, "BadGST", 150), "")
	c.markResolved(gen, 3, 10, "B3")

	// Still pending, contributes nothing.
	c.Add(testMedicine(4, "Pending", 18), "")

	totals := c.Totals()
	if totals.Subtotal != 160 {
		t.Fatalf("expected subtotal 160 got %v", totals.Subtotal)
	}
	if totals.GST != 12 {
		t.Fatalf("expected gst 12 got %v", totals.GST)
	}
	if totals.Total != 172 {
		t.Fatalf("expected total 172 got %v", totals.Total)
	}
}

func TestTotalsRoundToTwoDecimals(t *testing.T) {
	c := New()
	_, gen := c.Add(testMedicine(1, "Syrup", 5), "")
	c.markResolved(gen, 1, 33.335, "B1")
	c.SetQuantity(1, 3)

	totals := c.Totals()
	if totals.Subtotal != 100.01 {
		t.Fatalf("expected subtotal 100.01 got %v", totals.Subtotal)
	}
	if totals.GST != 5 {
		t.Fatalf("expected gst 5.00 got %v", totals.GST)
	}
}

func TestHasPendingAndFirstIncomplete(t *testing.T) {
	c := New()
	_, gen := c.Add(testMedicine(1, "Resolved", 0), "")
	c.markResolved(gen, 1, 10, "B1")

	if c.HasPending() {
		t.Fatal("no pending lines expected")
	}
	if got := c.FirstIncomplete(); got != nil {
		t.Fatalf("expected nil incomplete got %+v", got)
	}

	c.Add(testMedicine(2, "Stuck", 0), "")
	if !c.HasPending() {
		t.Fatal("expected a pending line")
	}
	incomplete := c.FirstIncomplete()
	if incomplete == nil || incomplete.MedicineID != 2 {
		t.Fatalf("expected line 2 incomplete, got %+v", incomplete)
	}

	c.markFailed(gen, 2, "no sellable stock", false)
	incomplete = c.FirstIncomplete()
	if incomplete == nil || incomplete.State != ResolutionFailed {
		t.Fatalf("expected failed line, got %+v", incomplete)
	}
	if c.HasPending() {
		t.Fatal("failed line should not count as pending")
	}
}
