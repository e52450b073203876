package controllers

import (
	"context"
	"net/http"

	"github.com/arjunkrish/pharmapos-terminal/api/responses"
	"github.com/arjunkrish/pharmapos-terminal/api/validators"
	"github.com/arjunkrish/pharmapos-terminal/internal/backend"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
)

// ReturnProcessor is the returns slice of the backend.
type ReturnProcessor interface {
	ProcessReturn(ctx context.Context, req backend.ReturnRequest) (*backend.Bill, error)
	ListReturns(ctx context.Context) ([]backend.Bill, error)
	GetReturn(ctx context.Context, id int64) (*backend.Bill, error)
	ReturnsByBill(ctx context.Context, billID int64) ([]backend.Bill, error)
}

type returnItemRequest struct {
	BillItemID int64 `json:"billItemId" validate:"required"`
	Quantity   int   `json:"quantity" validate:"required,min=1"`
}

type returnRequest struct {
	BillID int64               `json:"billId" validate:"required"`
	Reason string              `json:"reason" validate:"required"`
	Items  []returnItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ReturnCreate reverses items of a paid bill.
func ReturnCreate(svc ReturnProcessor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req returnRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]backend.ReturnItemRequest, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, backend.ReturnItemRequest{BillItemID: item.BillItemID, Quantity: item.Quantity})
		}
		bill, err := svc.ProcessReturn(r.Context(), backend.ReturnRequest{
			BillID: req.BillID,
			Reason: req.Reason,
			Items:  items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, bill)
	}
}

// ReturnList returns every processed return.
func ReturnList(svc ReturnProcessor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListReturns(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// ReturnDetail returns one processed return.
func ReturnDetail(svc ReturnProcessor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "returnId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out, err := svc.GetReturn(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// ReturnsForBill returns the returns recorded against one bill.
func ReturnsForBill(svc ReturnProcessor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "billId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out, err := svc.ReturnsByBill(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}
