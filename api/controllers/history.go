package controllers

import (
	"context"
	"net/http"

	"github.com/arjunkrish/pharmapos-terminal/api/responses"
	"github.com/arjunkrish/pharmapos-terminal/api/validators"
	"github.com/arjunkrish/pharmapos-terminal/internal/backend"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
)

// BillReader is the past-bills slice of the backend.
type BillReader interface {
	ListBills(ctx context.Context) ([]backend.Bill, error)
	GetBill(ctx context.Context, id int64) (*backend.Bill, error)
	GetBillByNumber(ctx context.Context, billNumber string) (*backend.Bill, error)
	BillPDF(ctx context.Context, id int64) ([]byte, error)
	CancelBill(ctx context.Context, id int64, reason string) error
}

// HistoryList returns past bills.
func HistoryList(bills BillReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := bills.ListBills(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// HistoryDetail returns one bill, located by id or by bill number via the
// number query parameter.
func HistoryDetail(bills BillReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if number, _ := validators.QueryString(r, "number", false); number != "" {
			bill, err := bills.GetBillByNumber(r.Context(), number)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, bill)
			return
		}

		id, err := pathID(r, "billId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bill, err := bills.GetBill(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bill)
	}
}

// HistoryPDF streams the stored receipt of a past bill.
func HistoryPDF(bills BillReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "billId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pdf, err := bills.BillPDF(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.WriteHeader(http.StatusOK)
		w.Write(pdf)
	}
}

type cancelBillRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// HistoryCancel voids a bill.
func HistoryCancel(bills BillReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "billId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req cancelBillRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := bills.CancelBill(r.Context(), id, req.Reason); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cancelled"})
	}
}
