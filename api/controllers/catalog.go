package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arjunkrish/pharmapos-terminal/api/responses"
	"github.com/arjunkrish/pharmapos-terminal/api/validators"
	"github.com/arjunkrish/pharmapos-terminal/internal/backend"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
)

// MedicineReader is the catalog slice the billing screens read from.
type MedicineReader interface {
	GetMedicine(ctx context.Context, id int64) (*backend.Medicine, error)
	SearchMedicines(ctx context.Context, term string) ([]backend.Medicine, error)
	FindMedicineByBarcode(ctx context.Context, barcode string) (*backend.Medicine, error)
}

// CatalogSearch finds medicines by name fragment for the billing search box.
func CatalogSearch(meds MedicineReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term, err := validators.QueryString(r, "name", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		results, err := meds.SearchMedicines(r.Context(), term)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, results)
	}
}

// CatalogByBarcode resolves a code without touching the cart; the inventory
// screens use it to inspect a product.
func CatalogByBarcode(meds MedicineReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		med, err := meds.FindMedicineByBarcode(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, med)
	}
}
