package cart

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/arjunkrish/pharmapos-terminal/internal/backend"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
)

// ResolutionState tracks whether a line's unit price is known yet.
type ResolutionState string

const (
	// ResolutionPending means the batch lookup is still in flight. A cart with
	// any pending line cannot be submitted.
	ResolutionPending ResolutionState = "PENDING"
	// ResolutionResolved means a sellable batch was found and priced.
	ResolutionResolved ResolutionState = "RESOLVED"
	// ResolutionFailed means no sellable batch exists or the lookup errored.
	ResolutionFailed ResolutionState = "FAILED"
)

// Line is one cart entry. Lines merge by medicine id; the barcode recorded is
// the one that first introduced the medicine and later scans never replace it.
type Line struct {
	MedicineID    int64           `json:"medicineId"`
	Name          string          `json:"name"`
	Manufacturer  string          `json:"manufacturer"`
	Barcode       string          `json:"barcode,omitempty"`
	GSTPercentage float64         `json:"gstPercentage"`
	Quantity      int             `json:"quantity"`
	State         ResolutionState `json:"state"`
	UnitPrice     float64         `json:"unitPrice"`
	BatchNumber   string          `json:"batchNumber,omitempty"`
	FailureNote   string          `json:"failureNote,omitempty"`
	Retryable     bool            `json:"retryable,omitempty"`

	position int
}

// Totals is the terminal's display estimate. The backend recomputes everything
// on submission and its figures win.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	GST      float64 `json:"gst"`
	Total    float64 `json:"total"`
}

// Cart holds the in-progress bill. All methods are safe for concurrent use;
// Reset invalidates in-flight price resolutions via a generation counter.
type Cart struct {
	mu         sync.RWMutex
	lines      map[int64]*Line
	generation uint64
	nextPos    int
}

func New() *Cart {
	return &Cart{lines: map[int64]*Line{}}
}

// Add merges a medicine into the cart. An existing line has its quantity
// incremented and keeps its original barcode and price state; a new line
// starts at quantity 1 in the pending state. The returned generation lets the
// resolver detect a reset that happened while it was fetching.
func (c *Cart) Add(med backend.Medicine, barcode string) (Line, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.lines[med.ID]; ok {
		existing.Quantity++
		return *existing, c.generation
	}

	line := &Line{
		MedicineID:    med.ID,
		Name:          med.Name,
		Manufacturer:  med.Manufacturer,
		Barcode:       barcode,
		GSTPercentage: med.GSTPercentage,
		Quantity:      1,
		State:         ResolutionPending,
		position:      c.nextPos,
	}
	c.nextPos++
	c.lines[med.ID] = line
	return *line, c.generation
}

// SetQuantity replaces a line's quantity; it must stay at least 1.
func (c *Cart) SetQuantity(medicineID int64, quantity int) error {
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	line, ok := c.lines[medicineID]
	if !ok {
		return lineNotFound(medicineID)
	}
	line.Quantity = quantity
	return nil
}

// Remove deletes one line.
func (c *Cart) Remove(medicineID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.lines[medicineID]; !ok {
		return lineNotFound(medicineID)
	}
	delete(c.lines, medicineID)
	return nil
}

// Reset empties the cart and bumps the generation so that any in-flight
// resolution result is discarded on arrival.
func (c *Cart) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = map[int64]*Line{}
	c.generation++
	c.nextPos = 0
}

// Lines returns the cart in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].position < out[j].position })
	return out
}

// Size returns the number of distinct lines.
func (c *Cart) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines)
}

// Empty reports whether no lines are present.
func (c *Cart) Empty() bool {
	return c.Size() == 0
}

// HasPending reports whether any line is still awaiting its price.
func (c *Cart) HasPending() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, line := range c.lines {
		if line.State == ResolutionPending {
			return true
		}
	}
	return false
}

// FirstIncomplete returns the earliest line that is not resolved, or nil.
func (c *Cart) FirstIncomplete() *Line {
	lines := c.Lines()
	for i := range lines {
		if lines[i].State != ResolutionResolved {
			copied := lines[i]
			return &copied
		}
	}
	return nil
}

// Totals computes the display estimate. Only resolved lines contribute; GST
// applies only when the rate is in (0, 100]. Figures round half away from
// zero to two decimals, matching the backend's presentation.
func (c *Cart) Totals() Totals {
	c.mu.RLock()
	defer c.mu.RUnlock()

	subtotal := decimal.Zero
	gst := decimal.Zero
	for _, line := range c.lines {
		if line.State != ResolutionResolved {
			continue
		}
		price := decimal.NewFromFloat(line.UnitPrice)
		lineAmount := price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineAmount)
		if line.GSTPercentage > 0 && line.GSTPercentage <= 100 {
			rate := decimal.NewFromFloat(line.GSTPercentage).Div(decimal.NewFromInt(100))
			gst = gst.Add(lineAmount.Mul(rate))
		}
	}

	subtotal = subtotal.Round(2)
	gst = gst.Round(2)
	total := subtotal.Add(gst).Round(2)

	return Totals{
		Subtotal: subtotal.InexactFloat64(),
		GST:      gst.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}

// markResolved records a successful price lookup unless the cart was reset or
// the line removed while the lookup was in flight.
func (c *Cart) markResolved(generation uint64, medicineID int64, unitPrice float64, batchNumber string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return false
	}
	line, ok := c.lines[medicineID]
	if !ok {
		return false
	}
	line.State = ResolutionResolved
	line.UnitPrice = unitPrice
	line.BatchNumber = batchNumber
	line.FailureNote = ""
	line.Retryable = false
	return true
}

// markFailed records an unsuccessful lookup under the same staleness rules.
func (c *Cart) markFailed(generation uint64, medicineID int64, note string, retryable bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return false
	}
	line, ok := c.lines[medicineID]
	if !ok {
		return false
	}
	line.State = ResolutionFailed
	line.UnitPrice = 0
	line.BatchNumber = ""
	line.FailureNote = note
	line.Retryable = retryable
	return true
}

// markPending returns a line to the pending state ahead of a retry.
func (c *Cart) markPending(medicineID int64) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	line, ok := c.lines[medicineID]
	if !ok {
		return 0, lineNotFound(medicineID)
	}
	line.State = ResolutionPending
	line.FailureNote = ""
	return c.generation, nil
}

func lineNotFound(medicineID int64) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no cart line for medicine %d", medicineID))
}
