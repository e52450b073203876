package controllers

import (
	"net/http"

	"github.com/arjunkrish/pharmapos-terminal/api/responses"
	"github.com/arjunkrish/pharmapos-terminal/api/validators"
	"github.com/arjunkrish/pharmapos-terminal/internal/theme"
	"github.com/arjunkrish/pharmapos-terminal/pkg/enums"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
)

type themeResponse struct {
	Mode      string `json:"mode"`
	Effective string `json:"effective"`
}

// ThemeFetch returns the station's display preference.
func ThemeFetch(themes *theme.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, themeResponse{
			Mode:      themes.Mode().String(),
			Effective: themes.Effective().String(),
		})
	}
}

type themeRequest struct {
	Mode string `json:"mode" validate:"required"`
}

// ThemeSet switches and persists the display preference.
func ThemeSet(themes *theme.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req themeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		mode, err := enums.ParseThemeMode(req.Mode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid theme mode"))
			return
		}
		if err := themes.Set(r.Context(), mode); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, themeResponse{
			Mode:      themes.Mode().String(),
			Effective: themes.Effective().String(),
		})
	}
}
