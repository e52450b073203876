package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
)

// QueryString returns a trimmed query parameter, failing when required and
// absent.
func QueryString(r *http.Request, name string, required bool) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" && required {
		return "", pkgerrors.New(pkgerrors.CodeValidation, name+" is required")
	}
	return value, nil
}

// QueryInt parses an integer query parameter with a fallback.
func QueryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, name+" must be an integer")
	}
	return value, nil
}
