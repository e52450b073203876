package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/arjunkrish/pharmapos-terminal/pkg/config"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
	"github.com/arjunkrish/pharmapos-terminal/pkg/metrics"
)

// TokenSource yields the current bearer token, or "" when unauthenticated.
type TokenSource interface {
	Token() string
}

// TokenHolder is a TokenSource the session store writes through.
type TokenHolder struct {
	mu    sync.RWMutex
	token string
}

func (h *TokenHolder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *TokenHolder) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
}

// Client issues calls against the pharmacy REST backend. The backend is the
// authoritative source for prices, GST, stock and bill numbering; the terminal
// never recomputes any of those beyond display estimates.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logg    *logger.Logger
	metrics *metrics.TerminalMetrics
}

// New constructs a backend client with the configured call timeout.
func New(cfg config.BackendConfig, tokens TokenSource, logg *logger.Logger, m *metrics.TerminalMetrics) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("backend base url is required")
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout},
		tokens:  tokens,
		logg:    logg,
		metrics: m,
	}, nil
}

type errorEnvelope struct {
	Message     string       `json:"message"`
	Error       string       `json:"error"`
	FieldErrors []fieldError `json:"fieldErrors"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (c *Client) doJSON(ctx context.Context, group, method, path string, query url.Values, body, out any) error {
	resp, err := c.do(ctx, group, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "decoding backend response")
	}
	return nil
}

func (c *Client) doBlob(ctx context.Context, group, method, path string) ([]byte, error) {
	resp, err := c.do(ctx, group, method, path, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "reading backend response")
	}
	return data, nil
}

func (c *Client) do(ctx context.Context, group, method, path string, query url.Values, body any) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveBackendCall(group, time.Since(start))
	if err != nil {
		c.metrics.BackendError(group)
		return nil, pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "backend unreachable").
			WithDetails(map[string]any{"group": group})
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		c.metrics.BackendError(group)
		return nil, c.mapError(resp)
	}
	return resp, nil
}

// mapError converts a non-2xx response into a coded error. The backend speaks
// two envelopes: {message} or {error, fieldErrors:[{field,message}]}; field
// errors are concatenated into one human-readable block.
func (c *Client) mapError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if len(envelope.FieldErrors) > 0 {
			lines := make([]string, 0, len(envelope.FieldErrors))
			details := map[string]string{}
			for _, fe := range envelope.FieldErrors {
				lines = append(lines, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
				details[fe.Field] = fe.Message
			}
			message := envelope.Error
			if message == "" {
				message = "validation failed"
			}
			return pkgerrors.New(pkgerrors.CodeBackendValidation, message+"\n"+strings.Join(lines, "\n")).
				WithDetails(details)
		}
		if message := firstNonEmpty(envelope.Message, envelope.Error); message != "" {
			return pkgerrors.New(codeForStatus(resp.StatusCode), message)
		}
	}

	return pkgerrors.New(pkgerrors.CodeNetwork, fmt.Sprintf("backend error (status %d)", resp.StatusCode)).
		WithDetails(map[string]any{"status": resp.StatusCode})
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return pkgerrors.CodeBackendValidation
	default:
		return pkgerrors.CodeNetwork
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
