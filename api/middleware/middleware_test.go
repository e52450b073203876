package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/arjunkrish/pharmapos-terminal/internal/backend"
	"github.com/arjunkrish/pharmapos-terminal/internal/session"
	"github.com/arjunkrish/pharmapos-terminal/pkg/enums"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
	"github.com/arjunkrish/pharmapos-terminal/pkg/redis"
)

type stubAuth struct {
	resp *backend.AuthResponse
}

func (s *stubAuth) Login(ctx context.Context, req backend.LoginRequest) (*backend.AuthResponse, error) {
	return s.resp, nil
}

func (s *stubAuth) Logout(ctx context.Context) error { return nil }

type memoryKV struct {
	values map[string]string
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", redis.ErrNotFound
	}
	return value, nil
}

func (m *memoryKV) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.values[key] = value.(string)
	return nil
}

func (m *memoryKV) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *memoryKV) AuthTokenKey() string  { return "auth_token" }
func (m *memoryKV) UserRecordKey() string { return "current_user" }

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

func signedInStore(t *testing.T, role string) *session.Store {
	t.Helper()
	auth := &stubAuth{resp: &backend.AuthResponse{Token: "tok", UserID: 9, Username: "asha", Role: role}}
	store, err := session.New(auth, &backend.TokenHolder{}, &memoryKV{values: map[string]string{}}, quietLogger())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Login(context.Background(), "asha", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return store
}

func signedOutStore(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.New(&stubAuth{}, &backend.TokenHolder{}, &memoryKV{values: map[string]string{}}, quietLogger())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestAuthRejectsSignedOut(t *testing.T) {
	handler := Auth(signedOutStore(t), quietLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "UNAUTHORIZED" || body.Error.Message != "sign in required" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestAuthStampsActor(t *testing.T) {
	var gotID int64
	var gotRole enums.Role
	handler := Auth(signedInStore(t, "CASHIER"), quietLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = UserIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if gotID != 9 || gotRole != enums.RoleCashier {
		t.Fatalf("actor not stamped: id=%d role=%s", gotID, gotRole)
	}
}

func TestRequireAnyRoleForbidsOutsiders(t *testing.T) {
	handler := RequireAnyRole(quietLogger(), enums.RoleAnalyst, enums.RoleManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/sales", nil)
	req = req.WithContext(WithActor(req.Context(), 9, "asha", enums.RoleCashier))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestRequireAnyRoleAdmitsAdmin(t *testing.T) {
	ran := false
	handler := RequireAnyRole(quietLogger(), enums.RoleAnalyst)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/sales", nil)
	req = req.WithContext(WithActor(req.Context(), 1, "root", enums.RoleAdmin))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !ran {
		t.Fatalf("admin should pass, got %d ran=%v", rec.Code, ran)
	}
}

func TestRequireAnyRoleMatchingRole(t *testing.T) {
	ran := false
	handler := RequireAnyRole(quietLogger(), enums.RoleStockKeeper, enums.RoleStockMonitor)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/medicines", nil)
	req = req.WithContext(WithActor(req.Context(), 4, "kiran", enums.RoleStockMonitor))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !ran {
		t.Fatal("matching role should pass")
	}
}

func TestRequestIDAssignedWhenMissing(t *testing.T) {
	handler := RequestID(quietLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("request id should be assigned and echoed")
	}
}

func TestRequestIDPreserved(t *testing.T) {
	handler := RequestID(quietLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "caller-supplied")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-Id") != "caller-supplied" {
		t.Fatalf("caller request id lost, got %q", rec.Header().Get("X-Request-Id"))
	}
}
