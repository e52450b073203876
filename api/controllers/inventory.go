package controllers

import (
	"context"
	"net/http"

	"github.com/arjunkrish/pharmapos-terminal/api/responses"
	"github.com/arjunkrish/pharmapos-terminal/api/validators"
	"github.com/arjunkrish/pharmapos-terminal/internal/backend"
	"github.com/arjunkrish/pharmapos-terminal/pkg/enums"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
)

// InventoryService is the stock-management slice of the backend.
type InventoryService interface {
	ListMedicines(ctx context.Context) ([]backend.Medicine, error)
	CreateMedicine(ctx context.Context, req backend.CreateMedicineRequest) (*backend.Medicine, error)
	UpdateMedicine(ctx context.Context, id int64, req backend.UpdateMedicineRequest) (*backend.Medicine, error)
	UpdateMedicineStatus(ctx context.Context, id int64, status enums.MedicineStatus) (*backend.Medicine, error)
	ListBatches(ctx context.Context) ([]backend.Batch, error)
	BatchesByMedicine(ctx context.Context, medicineID int64) ([]backend.Batch, error)
	CreateBatch(ctx context.Context, req backend.CreateBatchRequest) (*backend.Batch, error)
	UpdateBatch(ctx context.Context, id int64, req backend.UpdateBatchRequest) (*backend.Batch, error)
	UpdateBatchStock(ctx context.Context, id int64, req backend.UpdateStockRequest) (*backend.Batch, error)
	DeleteBatch(ctx context.Context, id int64) error
	ExpiredBatches(ctx context.Context) ([]backend.Batch, error)
	LowStockBatches(ctx context.Context, threshold int) ([]backend.Batch, error)
}

// InventoryMedicines lists the catalog for the stock screens.
func InventoryMedicines(svc InventoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListMedicines(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// InventoryCreateMedicine registers a medicine, optionally with opening stock.
func InventoryCreateMedicine(svc InventoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req backend.CreateMedicineRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out, err := svc.CreateMedicine(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, out)
	}
}

// InventoryUpdateMedicine replaces a medicine's mutable fields.
func InventoryUpdateMedicine(svc InventoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "medicineId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req backend.UpdateMedicineRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out, err := svc.UpdateMedicine(r.Context(), id, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// InventoryMedicineStatus flips a medicine between active and discontinued.
func InventoryMedicineStatus(svc InventoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "medicineId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		raw, err := validators.QueryString(r, "status", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseMedicineStatus(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}
		out, err := svc.UpdateMedicineStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// InventoryBatches lists batches, optionally for one medicine.
func InventoryBatches(svc InventoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		medicineID, err := validators.QueryInt(r, "medicineId", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var out []backend.Batch
		if medicineID > 0 {
			out, err = svc.BatchesByMedicine(r.Context(), int64(medicineID))
		} else {
			out, err = svc.ListBatches(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// InventoryCreateBatch registers a stock lot.
func InventoryCreateBatch(svc InventoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req backend.CreateBatchRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out, err := svc.CreateBatch(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, out)
	}
}

// InventoryUpdateBatch replaces a batch's mutable fields.
func InventoryUpdateBatch(svc InventoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "batchId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req backend.UpdateBatchRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out, err := svc.UpdateBatch(r.Context(), id, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// InventoryBatchStock adjusts the quantity of one batch.
func InventoryBatchStock(svc InventoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "batchId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req backend.UpdateStockRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out, err := svc.UpdateBatchStock(r.Context(), id, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// InventoryDeleteBatch removes one batch.
func InventoryDeleteBatch(svc InventoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "batchId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteBatch(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// InventoryExpired lists batches past their expiry date.
func InventoryExpired(svc InventoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ExpiredBatches(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// InventoryLowStock lists batches under the threshold, default 10.
func InventoryLowStock(svc InventoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		threshold, err := validators.QueryInt(r, "threshold", 10)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out, err := svc.LowStockBatches(r.Context(), threshold)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}
