package session

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/arjunkrish/pharmapos-terminal/internal/backend"
	"github.com/arjunkrish/pharmapos-terminal/pkg/enums"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
	"github.com/arjunkrish/pharmapos-terminal/pkg/redis"
)

// User is the authenticated operator as seen by the rest of the terminal.
type User struct {
	ID       int64      `json:"id"`
	Username string     `json:"username"`
	FullName string     `json:"fullName"`
	Email    string     `json:"email"`
	Role     enums.Role `json:"role"`
}

// Authenticator is the credential slice of the backend.
type Authenticator interface {
	Login(ctx context.Context, req backend.LoginRequest) (*backend.AuthResponse, error)
	Logout(ctx context.Context) error
}

// KV is the persisted slot the session survives restarts in.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	AuthTokenKey() string
	UserRecordKey() string
}

// Store owns the terminal's authentication state. The current user is
// observable: subscribers receive the new value on every login and logout.
// State survives process restarts through the key-value store, guarded by a
// token expiry check on restore.
type Store struct {
	backend Authenticator
	tokens  *backend.TokenHolder
	kv      KV
	logg    *logger.Logger

	mu      sync.RWMutex
	current *User
	subs    map[int]chan *User
	nextSub int
}

// New wires the session store. Restore is a separate step so callers control
// when the key-value store is consulted.
func New(client Authenticator, tokens *backend.TokenHolder, kv KV, logg *logger.Logger) (*Store, error) {
	if client == nil {
		return nil, stdErrors.New("backend client is required")
	}
	if tokens == nil {
		return nil, stdErrors.New("token holder is required")
	}
	if kv == nil {
		return nil, stdErrors.New("kv client is required")
	}
	if logg == nil {
		return nil, stdErrors.New("logger is required")
	}
	return &Store{
		backend: client,
		tokens:  tokens,
		kv:      kv,
		logg:    logg,
		subs:    map[int]chan *User{},
	}, nil
}

// Restore loads a persisted session if one exists and its token has not
// expired. An expired or unreadable session is cleared rather than surfaced.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.kv.Get(ctx, s.kv.AuthTokenKey())
	if err != nil {
		if stdErrors.Is(err, redis.ErrNotFound) {
			return nil
		}
		return err
	}
	raw, err := s.kv.Get(ctx, s.kv.UserRecordKey())
	if err != nil {
		if stdErrors.Is(err, redis.ErrNotFound) {
			return s.clearPersisted(ctx)
		}
		return err
	}

	if expired, err := tokenExpired(token, time.Now()); err != nil || expired {
		s.logg.Info(ctx, "discarding stale session")
		return s.clearPersisted(ctx)
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || !user.Role.IsValid() {
		s.logg.Warn(ctx, "persisted user record unreadable, clearing session")
		return s.clearPersisted(ctx)
	}

	s.tokens.SetToken(token)
	s.publish(&user)
	s.logg.Info(s.logg.WithUserID(ctx, user.Username), "session restored")
	return nil
}

// Login authenticates against the backend and persists the resulting session.
func (s *Store) Login(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}

	resp, err := s.backend.Login(ctx, backend.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	role, err := enums.ParseRole(resp.Role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "backend returned unknown role")
	}

	user := &User{
		ID:       resp.UserID,
		Username: resp.Username,
		FullName: resp.FullName,
		Email:    resp.Email,
		Role:     role,
	}

	s.tokens.SetToken(resp.Token)
	if err := s.persist(ctx, resp.Token, user); err != nil {
		s.logg.Error(ctx, "persisting session", err)
	}
	s.publish(user)
	s.logg.Info(s.logg.WithUserID(ctx, user.Username), "login succeeded")
	return user, nil
}

// Logout tears the session down. The backend call is best-effort: a failure is
// logged and the local session is cleared regardless.
func (s *Store) Logout(ctx context.Context) {
	if err := s.backend.Logout(ctx); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "backend logout failed, clearing local session anyway")
	}
	s.tokens.SetToken("")
	if err := s.clearPersisted(ctx); err != nil {
		s.logg.Error(ctx, "clearing persisted session", err)
	}
	s.publish(nil)
	s.logg.Info(ctx, "logged out")
}

// Current returns the signed-in user, or nil.
func (s *Store) Current() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// Authenticated reports whether an operator is signed in.
func (s *Store) Authenticated() bool {
	return s.Current() != nil
}

// HasRole reports whether the signed-in user holds exactly the given role.
func (s *Store) HasRole(role enums.Role) bool {
	user := s.Current()
	return user != nil && user.Role == role
}

// HasAnyRole reports whether the signed-in user may enter a section requiring
// any of the given roles. ADMIN passes every check; an empty requirement
// admits any signed-in user.
func (s *Store) HasAnyRole(required ...enums.Role) bool {
	user := s.Current()
	if user == nil {
		return false
	}
	return enums.RoleSatisfies(user.Role, required)
}

// Subscribe returns a channel receiving the user on every session change and a
// cancel func. The channel is buffered; a slow consumer drops updates rather
// than blocking logins.
func (s *Store) Subscribe() (<-chan *User, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan *User, 4)
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if existing, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(existing)
		}
	}
}

func (s *Store) publish(user *User) {
	s.mu.Lock()
	s.current = user
	targets := make([]chan *User, 0, len(s.subs))
	for _, ch := range s.subs {
		targets = append(targets, ch)
	}
	s.mu.Unlock()

	for _, ch := range targets {
		var copied *User
		if user != nil {
			value := *user
			copied = &value
		}
		select {
		case ch <- copied:
		default:
		}
	}
}

func (s *Store) persist(ctx context.Context, token string, user *User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.kv.AuthTokenKey(), token, 0); err != nil {
		return err
	}
	return s.kv.Set(ctx, s.kv.UserRecordKey(), string(raw), 0)
}

func (s *Store) clearPersisted(ctx context.Context) error {
	return s.kv.Del(ctx, s.kv.AuthTokenKey(), s.kv.UserRecordKey())
}

// tokenExpired inspects the token's exp claim without verifying the signature;
// the backend is the verifier, this check only avoids restoring a session the
// backend would reject on first use. A token with no exp claim is kept.
func tokenExpired(token string, now time.Time) (bool, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true, err
	}
	if exp == nil {
		return false, nil
	}
	return exp.Before(now), nil
}
