package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
)

type samplePayload struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

func newJSONRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDecodeJSONBodyValid(t *testing.T) {
	var dest samplePayload
	if err := DecodeJSONBody(newJSONRequest(`{"name":"Paracetamol","quantity":2}`), &dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest.Name != "Paracetamol" || dest.Quantity != 2 {
		t.Fatalf("unexpected payload: %+v", dest)
	}
}

func TestDecodeJSONBodyMalformed(t *testing.T) {
	var dest samplePayload
	err := DecodeJSONBody(newJSONRequest(`{"name":`), &dest)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestDecodeJSONBodyUnknownField(t *testing.T) {
	var dest samplePayload
	err := DecodeJSONBody(newJSONRequest(`{"name":"x","quantity":1,"extra":true}`), &dest)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestDecodeJSONBodyFieldMessagesUseJSONNames(t *testing.T) {
	var dest samplePayload
	err := DecodeJSONBody(newJSONRequest(`{"quantity":0}`), &dest)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	if !ok {
		t.Fatalf("unexpected details: %#v", pkgerrors.As(err).Details())
	}
	if details["name"] != "is required" {
		t.Fatalf("expected json field name in details, got %v", details)
	}
	if details["quantity"] != "must be at least 1" {
		t.Fatalf("unexpected quantity message: %v", details)
	}
}

func TestQueryString(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/search?name=para", nil)
	got, err := QueryString(req, "name", true)
	if err != nil || got != "para" {
		t.Fatalf("unexpected result: %q %v", got, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/search", nil)
	if _, err := QueryString(req, "name", true); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
	if got, err := QueryString(req, "name", false); err != nil || got != "" {
		t.Fatalf("optional param should be empty: %q %v", got, err)
	}
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/stock?threshold=25", nil)
	if got, err := QueryInt(req, "threshold", 10); err != nil || got != 25 {
		t.Fatalf("expected 25 got %d (%v)", got, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/stock", nil)
	if got, err := QueryInt(req, "threshold", 10); err != nil || got != 10 {
		t.Fatalf("expected fallback got %d (%v)", got, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/stock?threshold=abc", nil)
	if _, err := QueryInt(req, "threshold", 10); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
}
