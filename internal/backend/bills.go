package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
)

const billsGroup = "bills"

// CreateBill submits a bill and returns the authoritative record, including
// server-computed totals and the issued bill number.
func (c *Client) CreateBill(ctx context.Context, req CreateBillRequest) (*Bill, error) {
	var out Bill
	if err := c.doJSON(ctx, billsGroup, http.MethodPost, "/cashier/bills", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBills returns all bills visible to the cashier.
func (c *Client) ListBills(ctx context.Context) ([]Bill, error) {
	var out []Bill
	if err := c.doJSON(ctx, billsGroup, http.MethodGet, "/cashier/bills", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBill returns one bill by id.
func (c *Client) GetBill(ctx context.Context, id int64) (*Bill, error) {
	var out Bill
	path := fmt.Sprintf("/cashier/bills/%d", id)
	if err := c.doJSON(ctx, billsGroup, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBillByNumber returns one bill by its server-issued number.
func (c *Client) GetBillByNumber(ctx context.Context, billNumber string) (*Bill, error) {
	billNumber = strings.TrimSpace(billNumber)
	if billNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bill number is required")
	}
	var out Bill
	path := "/cashier/bills/number/" + url.PathEscape(billNumber)
	if err := c.doJSON(ctx, billsGroup, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BillPDF fetches the rendered receipt for a bill.
func (c *Client) BillPDF(ctx context.Context, id int64) ([]byte, error) {
	path := fmt.Sprintf("/cashier/bills/%d/pdf", id)
	return c.doBlob(ctx, billsGroup, http.MethodGet, path)
}

// CancelBill voids a bill with a reason.
func (c *Client) CancelBill(ctx context.Context, id int64, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cancellation reason is required")
	}
	path := fmt.Sprintf("/cashier/bills/%d/cancel?%s", id, url.Values{"reason": {reason}}.Encode())
	return c.doJSON(ctx, billsGroup, http.MethodPost, path, nil, struct{}{}, nil)
}
