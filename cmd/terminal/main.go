package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arjunkrish/pharmapos-terminal/api/routes"
	"github.com/arjunkrish/pharmapos-terminal/internal/backend"
	"github.com/arjunkrish/pharmapos-terminal/internal/billing"
	"github.com/arjunkrish/pharmapos-terminal/internal/cart"
	"github.com/arjunkrish/pharmapos-terminal/internal/dialog"
	"github.com/arjunkrish/pharmapos-terminal/internal/payments"
	"github.com/arjunkrish/pharmapos-terminal/internal/scanner"
	"github.com/arjunkrish/pharmapos-terminal/internal/session"
	"github.com/arjunkrish/pharmapos-terminal/internal/theme"
	"github.com/arjunkrish/pharmapos-terminal/pkg/config"
	"github.com/arjunkrish/pharmapos-terminal/pkg/logger"
	"github.com/arjunkrish/pharmapos-terminal/pkg/metrics"
	"github.com/arjunkrish/pharmapos-terminal/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "terminal"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "terminal",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	kv, err := redis.New(context.Background(), cfg.Redis, cfg.App.TerminalID)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	terminalMetrics := metrics.NewTerminalMetrics(registry)

	tokens := &backend.TokenHolder{}
	client, err := backend.New(cfg.Backend, tokens, logg, terminalMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create backend client", err)
		os.Exit(1)
	}

	sessions, err := session.New(client, tokens, kv, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create session store", err)
		os.Exit(1)
	}
	if err := sessions.Restore(context.Background()); err != nil {
		logg.Warn(context.Background(), "could not restore previous session")
	}

	billCart := cart.New()
	resolver, err := cart.NewResolver(billCart, client, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart resolver", err)
		os.Exit(1)
	}

	split := payments.NewSplit()
	dialogs := dialog.New()

	billingService, err := billing.New(billCart, split, client, dialogs, logg, terminalMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create billing service", err)
		os.Exit(1)
	}

	camera := &scanner.WedgeCamera{Path: cfg.Scanner.DevicePath}
	surface := scanner.NewPanelSurface(true)
	scanCtrl, err := scanner.NewController(camera, scanner.LineDecoder{}, surface, cfg.Scanner, logg, terminalMetrics,
		func(ctx context.Context, code string) {
			if _, err := resolver.AddByBarcode(ctx, code); err != nil {
				logg.Error(ctx, "scanned code could not be added", err)
			}
		})
	if err != nil {
		logg.Error(context.Background(), "failed to create scan controller", err)
		os.Exit(1)
	}

	themes, err := theme.New(kv, cfg.Theme, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create theme service", err)
		os.Exit(1)
	}
	themes.Restore(context.Background())

	addr := ":" + cfg.App.Port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"terminal": cfg.App.TerminalID,
	})
	logg.Info(ctx, "starting billing terminal")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			KV:       kv,
			Backend:  client,
			Sessions: sessions,
			Cart:     billCart,
			Resolver: resolver,
			Split:    split,
			Billing:  billingService,
			Scanner:  scanCtrl,
			Dialogs:  dialogs,
			Themes:   themes,
			Registry: registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "terminal server stopped unexpectedly", err)
		os.Exit(1)
	}
}
