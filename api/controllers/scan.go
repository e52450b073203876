package controllers

import (
	"net/http"

	"github.com/arjunkrish/pharmapos-terminal/api/responses"
	"github.com/arjunkrish/pharmapos-terminal/api/validators"
	"github.com/arjunkrish/pharmapos-terminal/internal/cart"
	"github.com/arjunkrish/pharmapos-terminal/internal/scanner"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
)

// ScanStart begins a camera scan session.
func ScanStart(ctrl *scanner.Controller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.Start(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusAccepted, ctrl.Status())
	}
}

// ScanStop ends the session and releases the camera. Stopping with nothing
// running is fine.
func ScanStop(ctrl *scanner.Controller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.Stop(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, scanner.AsDeviceError(err))
			return
		}
		responses.WriteSuccess(w, ctrl.Status())
	}
}

// ScanStatus returns the session snapshot for the screen to poll.
func ScanStatus(ctrl *scanner.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, ctrl.Status())
	}
}

type manualCodeRequest struct {
	Barcode string `json:"barcode" validate:"required"`
}

// ScanManual accepts a hand-typed code, the fallback when the camera cannot
// read a damaged label.
func ScanManual(resolver *cart.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req manualCodeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		line, err := resolver.AddByBarcode(r.Context(), req.Barcode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, line)
	}
}
