package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const reportsGroup = "reports"

func rangeQuery(startDate, endDate string) url.Values {
	return url.Values{"startDate": {startDate}, "endDate": {endDate}}
}

// SalesReport aggregates billing over the given date range (yyyy-MM-dd).
func (c *Client) SalesReportRange(ctx context.Context, startDate, endDate string) (*SalesReport, error) {
	var out SalesReport
	if err := c.doJSON(ctx, reportsGroup, http.MethodGet, "/admin/reports/sales", rangeQuery(startDate, endDate), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GSTReportRange breaks tax down by HSN code over the given date range.
func (c *Client) GSTReportRange(ctx context.Context, startDate, endDate string) (*GSTReport, error) {
	var out GSTReport
	if err := c.doJSON(ctx, reportsGroup, http.MethodGet, "/admin/reports/gst", rangeQuery(startDate, endDate), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StockReportSnapshot returns the current stock position.
func (c *Client) StockReportSnapshot(ctx context.Context) (*StockReport, error) {
	var out StockReport
	if err := c.doJSON(ctx, reportsGroup, http.MethodGet, "/admin/reports/stock", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CashierSalesReport aggregates one cashier's billing over a date range.
func (c *Client) CashierSalesReport(ctx context.Context, cashierID int64, startDate, endDate string) (*SalesReport, error) {
	var out SalesReport
	path := fmt.Sprintf("/admin/reports/cashier/%d", cashierID)
	if err := c.doJSON(ctx, reportsGroup, http.MethodGet, path, rangeQuery(startDate, endDate), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
