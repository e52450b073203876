package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/arjunkrish/pharmapos-terminal/pkg/enums"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
)

const medicinesGroup = "medicines"

// ListMedicines returns every medicine record.
func (c *Client) ListMedicines(ctx context.Context) ([]Medicine, error) {
	var out []Medicine
	if err := c.doJSON(ctx, medicinesGroup, http.MethodGet, "/pharmacist/medicines", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMedicine returns one medicine by id.
func (c *Client) GetMedicine(ctx context.Context, id int64) (*Medicine, error) {
	var out Medicine
	path := fmt.Sprintf("/pharmacist/medicines/%d", id)
	if err := c.doJSON(ctx, medicinesGroup, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchMedicines looks medicines up by name fragment; the term must be at
// least two characters.
func (c *Client) SearchMedicines(ctx context.Context, term string) ([]Medicine, error) {
	term = strings.TrimSpace(term)
	if len(term) < 2 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search term must be at least 2 characters")
	}
	query := url.Values{"name": {term}}
	var out []Medicine
	if err := c.doJSON(ctx, medicinesGroup, http.MethodGet, "/pharmacist/medicines/search", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindMedicineByBarcode resolves a scanned code to its medicine. The match is
// exact, never a prefix or substring.
func (c *Client) FindMedicineByBarcode(ctx context.Context, barcode string) (*Medicine, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "barcode is required")
	}
	var out Medicine
	path := "/pharmacist/medicines/barcode/" + url.PathEscape(barcode)
	if err := c.doJSON(ctx, medicinesGroup, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMedicine registers a new medicine.
func (c *Client) CreateMedicine(ctx context.Context, req CreateMedicineRequest) (*Medicine, error) {
	var out Medicine
	if err := c.doJSON(ctx, medicinesGroup, http.MethodPost, "/pharmacist/medicines", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMedicine replaces the mutable fields of a medicine.
func (c *Client) UpdateMedicine(ctx context.Context, id int64, req UpdateMedicineRequest) (*Medicine, error) {
	var out Medicine
	path := fmt.Sprintf("/pharmacist/medicines/%d", id)
	if err := c.doJSON(ctx, medicinesGroup, http.MethodPut, path, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMedicineStatus flips a medicine between active and discontinued.
func (c *Client) UpdateMedicineStatus(ctx context.Context, id int64, status enums.MedicineStatus) (*Medicine, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid medicine status")
	}
	var out Medicine
	path := fmt.Sprintf("/pharmacist/medicines/%d/status", id)
	query := url.Values{"status": {status.String()}}
	if err := c.doJSON(ctx, medicinesGroup, http.MethodPut, path, query, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
