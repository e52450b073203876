package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/arjunkrish/pharmapos-terminal/api/responses"
	"github.com/arjunkrish/pharmapos-terminal/pkg/config"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
	"github.com/arjunkrish/pharmapos-terminal/pkg/redis"
)

// HealthLive answers as soon as the process serves requests.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status":   "ok",
			"env":      cfg.App.Env,
			"terminal": cfg.App.TerminalID,
		})
	}
}

// HealthReady verifies the terminal's local store is reachable.
func HealthReady(cfg *config.Config, logg *logger.Logger, kv redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"redis": "ok"}
		status := http.StatusOK
		if err := kv.Ping(ctx); err != nil {
			checks["redis"] = "down"
			status = http.StatusServiceUnavailable
			if logg != nil {
				logg.Error(r.Context(), "readiness check failed", err)
			}
		}
		responses.WriteSuccessStatus(w, status, map[string]any{
			"status":   checks["redis"],
			"checks":   checks,
			"terminal": cfg.App.TerminalID,
		})
	}
}
