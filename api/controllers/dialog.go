package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arjunkrish/pharmapos-terminal/api/responses"
	"github.com/arjunkrish/pharmapos-terminal/api/validators"
	"github.com/arjunkrish/pharmapos-terminal/internal/dialog"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
)

// DialogActive returns the prompt awaiting the operator, or null.
func DialogActive(dialogs *dialog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, dialogs.Active())
	}
}

type dialogAnswerRequest struct {
	Accept bool `json:"accept"`
}

// DialogAnswer resolves the active prompt.
func DialogAnswer(dialogs *dialog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dialogAnswerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := dialogs.Answer(chi.URLParam(r, "promptId"), req.Accept); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "answered"})
	}
}

// DialogDismiss cancels the active prompt without a choice.
func DialogDismiss(dialogs *dialog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := dialogs.Dismiss(chi.URLParam(r, "promptId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "dismissed"})
	}
}
