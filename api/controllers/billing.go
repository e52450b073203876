package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/arjunkrish/pharmapos-terminal/api/responses"
	"github.com/arjunkrish/pharmapos-terminal/api/validators"
	"github.com/arjunkrish/pharmapos-terminal/internal/billing"
	"github.com/arjunkrish/pharmapos-terminal/internal/cart"
	"github.com/arjunkrish/pharmapos-terminal/internal/payments"
	"github.com/arjunkrish/pharmapos-terminal/pkg/enums"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
)

type cartResponse struct {
	Lines    []cart.Line      `json:"lines"`
	Totals   cart.Totals      `json:"totals"`
	Payments []payments.Entry `json:"payments"`
	Customer billing.Customer `json:"customer"`
}

func writeCart(w http.ResponseWriter, c *cart.Cart, split *payments.Split, bills *billing.Service) {
	responses.WriteSuccess(w, cartResponse{
		Lines:    c.Lines(),
		Totals:   c.Totals(),
		Payments: split.Entries(),
		Customer: bills.Customer(),
	})
}

// CartFetch returns the bill in progress.
func CartFetch(c *cart.Cart, split *payments.Split, bills *billing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeCart(w, c, split, bills)
	}
}

type addItemRequest struct {
	Barcode    string `json:"barcode,omitempty"`
	MedicineID int64  `json:"medicineId,omitempty"`
}

// CartAddItem merges a medicine into the cart, located either by scanned
// barcode or by the id picked from a name search.
func CartAddItem(resolver *cart.Resolver, meds MedicineReader, c *cart.Cart, split *payments.Split, bills *billing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		switch {
		case req.Barcode != "":
			if _, err := resolver.AddByBarcode(r.Context(), req.Barcode); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		case req.MedicineID > 0:
			med, err := meds.GetMedicine(r.Context(), req.MedicineID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			resolver.AddMedicine(r.Context(), *med, med.Barcode)
		default:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "barcode or medicineId is required"))
			return
		}
		writeCart(w, c, split, bills)
	}
}

type quantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CartSetQuantity replaces one line's quantity.
func CartSetQuantity(c *cart.Cart, split *payments.Split, bills *billing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		medicineID, err := pathID(r, "medicineId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req quantityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := c.SetQuantity(medicineID, req.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, c, split, bills)
	}
}

// CartRemoveItem deletes one line.
func CartRemoveItem(c *cart.Cart, split *payments.Split, bills *billing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		medicineID, err := pathID(r, "medicineId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := c.Remove(medicineID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, c, split, bills)
	}
}

// CartRetryItem reruns pricing for a failed line.
func CartRetryItem(resolver *cart.Resolver, c *cart.Cart, split *payments.Split, bills *billing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		medicineID, err := pathID(r, "medicineId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := resolver.Retry(r.Context(), medicineID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, c, split, bills)
	}
}

// CartClear abandons the bill in progress.
func CartClear(bills *billing.Service, c *cart.Cart, split *payments.Split, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bills.Clear()
		writeCart(w, c, split, bills)
	}
}

type customerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// BillingSetCustomer records the optional buyer identity.
func BillingSetCustomer(bills *billing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req customerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := bills.SetCustomer(billing.Customer{Name: req.Name, Phone: req.Phone}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bills.Customer())
	}
}

// PaymentAdd appends a payment row.
func PaymentAdd(split *payments.Split, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccessStatus(w, http.StatusCreated, split.Add())
	}
}

type paymentUpdateRequest struct {
	Mode         string  `json:"mode" validate:"required"`
	Amount       float64 `json:"amount" validate:"min=0"`
	Reference    string  `json:"reference"`
	CashTendered float64 `json:"cashTendered" validate:"min=0"`
}

// PaymentUpdate replaces one payment row.
func PaymentUpdate(split *payments.Split, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "entryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req paymentUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		mode, err := enums.ParsePaymentMode(req.Mode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment mode"))
			return
		}
		entry, err := split.Update(int(id), mode, req.Amount, req.Reference, req.CashTendered)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"entry": entry, "change": entry.Change()})
	}
}

// PaymentRemove deletes one payment row; the last row stays put.
func PaymentRemove(split *payments.Split, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "entryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := split.Remove(int(id)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, split.Entries())
	}
}

// BillingSubmit posts the bill to the backend.
func BillingSubmit(bills *billing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := bills.Submit(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// BillingReceipt streams the last fetched receipt PDF.
func BillingReceipt(bills *billing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pdf, billNumber, err := bills.Receipt()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="bill-`+billNumber+`.pdf"`)
		w.WriteHeader(http.StatusOK)
		w.Write(pdf)
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, name+" must be a number")
	}
	return id, nil
}
