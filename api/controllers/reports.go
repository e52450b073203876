package controllers

import (
	"context"
	"net/http"

	"github.com/arjunkrish/pharmapos-terminal/api/responses"
	"github.com/arjunkrish/pharmapos-terminal/api/validators"
	"github.com/arjunkrish/pharmapos-terminal/internal/backend"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
)

// ReportService is the reporting slice of the backend.
type ReportService interface {
	SalesReportRange(ctx context.Context, startDate, endDate string) (*backend.SalesReport, error)
	GSTReportRange(ctx context.Context, startDate, endDate string) (*backend.GSTReport, error)
	StockReportSnapshot(ctx context.Context) (*backend.StockReport, error)
	CashierSalesReport(ctx context.Context, cashierID int64, startDate, endDate string) (*backend.SalesReport, error)
}

func dateRange(r *http.Request) (string, string, error) {
	start, err := validators.QueryString(r, "startDate", true)
	if err != nil {
		return "", "", err
	}
	end, err := validators.QueryString(r, "endDate", true)
	if err != nil {
		return "", "", err
	}
	return start, end, nil
}

// ReportSales returns the sales aggregate for a date range.
func ReportSales(svc ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := dateRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out, err := svc.SalesReportRange(r.Context(), start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// ReportGST returns the tax breakup for a date range.
func ReportGST(svc ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := dateRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out, err := svc.GSTReportRange(r.Context(), start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// ReportStock returns the point-in-time stock snapshot.
func ReportStock(svc ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.StockReportSnapshot(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// ReportCashier returns one cashier's sales aggregate for a date range.
func ReportCashier(svc ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "cashierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		start, end, err := dateRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out, err := svc.CashierSalesReport(r.Context(), id, start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}
