package backend

import (
	"context"
	"fmt"
	"net/http"
)

const returnsGroup = "returns"

// ProcessReturn reverses items of a paid bill and returns the updated bill.
func (c *Client) ProcessReturn(ctx context.Context, req ReturnRequest) (*Bill, error) {
	var out Bill
	if err := c.doJSON(ctx, returnsGroup, http.MethodPost, "/cashier/returns", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListReturns returns every processed return.
func (c *Client) ListReturns(ctx context.Context) ([]Bill, error) {
	var out []Bill
	if err := c.doJSON(ctx, returnsGroup, http.MethodGet, "/cashier/returns", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetReturn returns one processed return by id.
func (c *Client) GetReturn(ctx context.Context, id int64) (*Bill, error) {
	var out Bill
	path := fmt.Sprintf("/cashier/returns/%d", id)
	if err := c.doJSON(ctx, returnsGroup, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReturnsByBill returns the returns recorded against a bill.
func (c *Client) ReturnsByBill(ctx context.Context, billID int64) ([]Bill, error) {
	var out []Bill
	path := fmt.Sprintf("/cashier/returns/bill/%d", billID)
	if err := c.doJSON(ctx, returnsGroup, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
