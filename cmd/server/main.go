package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"pigmento/internal/config"
	"pigmento/internal/db"
	"pigmento/internal/db/mock"
	applog "pigmento/internal/log"
	"pigmento/internal/server"
	"pigmento/internal/sheets"
	"pigmento/internal/store"
	"pigmento/internal/workbook"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

// Seams for the run loop, swapped out in tests.
var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	newWorkbookFunc     = newWorkbookStore
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	// Missing .env files are fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}

	var database *gorm.DB
	if cfg.Database.UseMock {
		applog.Info(ctx, "using in-memory mock database")
		database, err = newMockDatabaseFunc(ctx)
	} else {
		database, err = configureDatabase(cfg.Database)
	}
	if err != nil {
		applog.Error(ctx, "failed to initialise account database", "error", err)
		return 1
	}

	repository, err := buildRepository(ctx, cfg)
	if err != nil {
		applog.Error(ctx, "failed to initialise worksheet store", "error", err)
		return 1
	}

	srv, err := newServerFunc(server.Config{
		Addr:       cfg.Server.Addr,
		Database:   database,
		Repository: repository,
		Session: server.SessionConfig{
			Lifetime:     cfg.Auth.Session.Lifetime,
			CookieName:   cfg.Auth.Session.CookieName,
			CookieDomain: cfg.Auth.Session.CookieDomain,
			CookieSecure: cfg.Auth.Session.CookieSecure,
		},
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	shutdownCh, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
	case sig := <-shutdownCh:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
		if err := srv.Stop(); err != nil {
			applog.Error(ctx, "graceful shutdown failed", "error", err)
			return 1
		}
	}
	return 0
}

func buildRepository(ctx context.Context, cfg config.Config) (*store.Repository, error) {
	if cfg.Database.UseMock {
		applog.Info(ctx, "using seeded in-memory workbook")
		return store.New(mock.Workbook(ctx)), nil
	}
	sheetsStore, err := newWorkbookFunc(cfg.Workbook)
	if err != nil {
		return nil, err
	}
	return store.New(sheetsStore), nil
}

// newWorkbookStore selects the worksheet backend: a remote worksheet service
// when SHEETS_API_URL is set, optionally wrapped with the read-only CSV cache
// fallback for the recipe and order sheets, and a local .xlsx workbook
// otherwise.
func newWorkbookStore(cfg config.WorkbookConfig) (workbook.Store, error) {
	if cfg.RemoteURL != "" {
		client, err := sheets.NewClient(sheets.Config{
			BaseURL: cfg.RemoteURL,
			Token:   cfg.RemoteToken,
			Timeout: cfg.RemoteTimeout,
		})
		if err != nil {
			return nil, err
		}
		if cfg.CSVCacheDir != "" {
			cache := workbook.NewCSVCache(cfg.CSVCacheDir)
			return workbook.NewFallbackStore(client, cache, workbook.SheetRecipes, workbook.SheetOrders), nil
		}
		return client, nil
	}
	return workbook.NewXLSXStore(cfg.Path), nil
}
