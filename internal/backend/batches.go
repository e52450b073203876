package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const batchesGroup = "batches"

// ListBatches returns every batch.
func (c *Client) ListBatches(ctx context.Context) ([]Batch, error) {
	var out []Batch
	if err := c.doJSON(ctx, batchesGroup, http.MethodGet, "/pharmacist/batches", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBatch returns one batch by id.
func (c *Client) GetBatch(ctx context.Context, id int64) (*Batch, error) {
	var out Batch
	path := fmt.Sprintf("/pharmacist/batches/%d", id)
	if err := c.doJSON(ctx, batchesGroup, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BatchesByMedicine returns the batches of one medicine in backend order; the
// cart picks the first non-expired batch with stock, with no price preference.
func (c *Client) BatchesByMedicine(ctx context.Context, medicineID int64) ([]Batch, error) {
	var out []Batch
	path := fmt.Sprintf("/pharmacist/batches/medicine/%d", medicineID)
	if err := c.doJSON(ctx, batchesGroup, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBatch registers a new stock lot.
func (c *Client) CreateBatch(ctx context.Context, req CreateBatchRequest) (*Batch, error) {
	var out Batch
	if err := c.doJSON(ctx, batchesGroup, http.MethodPost, "/pharmacist/batches", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBatch replaces the mutable fields of a batch.
func (c *Client) UpdateBatch(ctx context.Context, id int64, req UpdateBatchRequest) (*Batch, error) {
	var out Batch
	path := fmt.Sprintf("/pharmacist/batches/%d", id)
	if err := c.doJSON(ctx, batchesGroup, http.MethodPut, path, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBatchStock adjusts the available quantity of a batch.
func (c *Client) UpdateBatchStock(ctx context.Context, id int64, req UpdateStockRequest) (*Batch, error) {
	var out Batch
	path := fmt.Sprintf("/pharmacist/batches/%d/stock", id)
	if err := c.doJSON(ctx, batchesGroup, http.MethodPut, path, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBatch removes a batch.
func (c *Client) DeleteBatch(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/pharmacist/batches/%d", id)
	return c.doJSON(ctx, batchesGroup, http.MethodDelete, path, nil, nil, nil)
}

// ExpiredBatches returns batches past their expiry date.
func (c *Client) ExpiredBatches(ctx context.Context) ([]Batch, error) {
	var out []Batch
	if err := c.doJSON(ctx, batchesGroup, http.MethodGet, "/pharmacist/batches/expired", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LowStockBatches returns batches under the given quantity threshold.
func (c *Client) LowStockBatches(ctx context.Context, threshold int) ([]Batch, error) {
	query := url.Values{"threshold": {strconv.Itoa(threshold)}}
	var out []Batch
	if err := c.doJSON(ctx, batchesGroup, http.MethodGet, "/pharmacist/batches/low-stock", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
