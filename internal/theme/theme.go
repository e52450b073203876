// Package theme stores the station's display preference. The preference
// survives restarts; an unreadable stored value falls back to the configured
// default instead of failing startup.
package theme

import (
	"context"
	stdErrors "errors"
	"sync"
	"time"

	"github.com/arjunkrish/pharmapos-terminal/pkg/config"
	"github.com/arjunkrish/pharmapos-terminal/pkg/enums"
	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
	"github.com/arjunkrish/pharmapos-terminal/pkg/redis"
)

// KV is the persisted slot the preference lives in.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	ThemeKey() string
}

// Service holds the current theme mode and persists changes.
type Service struct {
	kv       KV
	logg     *logger.Logger
	fallback enums.ThemeMode

	mu      sync.RWMutex
	current enums.ThemeMode
}

func New(kv KV, cfg config.ThemeConfig, logg *logger.Logger) (*Service, error) {
	if kv == nil {
		return nil, stdErrors.New("kv client is required")
	}
	if logg == nil {
		return nil, stdErrors.New("logger is required")
	}
	fallback, err := enums.ParseThemeMode(cfg.Default)
	if err != nil {
		fallback = enums.ThemeModeSystem
	}
	return &Service{kv: kv, logg: logg, fallback: fallback, current: fallback}, nil
}

// Restore loads the persisted preference if present and readable.
func (s *Service) Restore(ctx context.Context) {
	raw, err := s.kv.Get(ctx, s.kv.ThemeKey())
	if err != nil {
		if !stdErrors.Is(err, redis.ErrNotFound) {
			s.logg.Warn(ctx, "reading stored theme failed, using default")
		}
		return
	}
	mode, err := enums.ParseThemeMode(raw)
	if err != nil {
		s.logg.Warn(ctx, "stored theme unreadable, using default")
		return
	}
	s.mu.Lock()
	s.current = mode
	s.mu.Unlock()
}

// Mode returns the selected preference.
func (s *Service) Mode() enums.ThemeMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Effective resolves "system" against the station's ambient setting. The
// terminal has no OS hook, so system resolves to light.
func (s *Service) Effective() enums.ThemeMode {
	mode := s.Mode()
	if mode == enums.ThemeModeSystem {
		return enums.ThemeModeLight
	}
	return mode
}

// Set switches the preference and persists it. A persistence failure keeps
// the in-memory switch; the preference just will not survive a restart.
func (s *Service) Set(ctx context.Context, mode enums.ThemeMode) error {
	if !mode.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid theme mode")
	}
	s.mu.Lock()
	s.current = mode
	s.mu.Unlock()

	if err := s.kv.Set(ctx, s.kv.ThemeKey(), mode.String(), 0); err != nil {
		s.logg.Warn(ctx, "persisting theme failed")
	}
	return nil
}
