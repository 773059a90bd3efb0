// Package server initializes and runs the main application server.
// It selects the document store backend, wires the registries together,
// handles graceful shutdown and starts the HTTP listeners.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/upcheck/internal/filex"
	"github.com/dmitrijs2005/upcheck/internal/keylock"
	"github.com/dmitrijs2005/upcheck/internal/logging"
	"github.com/dmitrijs2005/upcheck/internal/server/archive"
	"github.com/dmitrijs2005/upcheck/internal/server/config"
	"github.com/dmitrijs2005/upcheck/internal/server/httpapi"
	"github.com/dmitrijs2005/upcheck/internal/server/services"
	"github.com/dmitrijs2005/upcheck/internal/server/store"
	"github.com/dmitrijs2005/upcheck/internal/server/store/filestore"
	"github.com/dmitrijs2005/upcheck/internal/server/store/memstore"
	"github.com/dmitrijs2005/upcheck/internal/server/store/postgres"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	store     store.Store
	srv       *httpapi.Server
	rotator   *archive.Rotator
	accessLog *os.File
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout)

	st, err := newStore(context.Background(), c)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	locks := keylock.New()
	tokens := services.NewTokenService(st, c.HashingSecret, c.TokenValidity)
	users := services.NewUserService(st, tokens, locks, c.HashingSecret)
	checks := services.NewCheckService(st, tokens, locks, c.MaxChecks)

	httpLogger := logger
	var accessLog *os.File
	var rotator *archive.Rotator
	if c.AccessLogPath != "" {
		if err := filex.EnsureDir(filepath.Dir(c.AccessLogPath)); err != nil {
			return nil, fmt.Errorf("access log dir error: %w", err)
		}
		f, err := os.OpenFile(c.AccessLogPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o640)
		if err != nil {
			return nil, fmt.Errorf("access log open error: %w", err)
		}
		accessLog = f
		httpLogger = logging.New(io.MultiWriter(os.Stdout, f)).With("component", "http")

		if c.ArchiveInterval > 0 {
			uploader := archive.NewUploader(archive.UploaderConfig{
				RootUser:     c.S3RootUser,
				RootPassword: c.S3RootPassword,
				Bucket:       c.S3Bucket,
				Region:       c.S3Region,
				BaseEndpoint: c.S3BaseEndpoint,
			})
			rotator = archive.NewRotator(c.AccessLogPath, c.ArchiveInterval, uploader, logger.With("component", "archive"))
		}
	}

	srv := httpapi.New(httpLogger, users, tokens, checks, httpapi.Options{
		HTTPAddr:     c.HTTPAddr,
		HTTPSAddr:    c.HTTPSAddr,
		TLSCertFile:  c.TLSCertFile,
		TLSKeyFile:   c.TLSKeyFile,
		RateLimitRPS: c.RateLimitRPS,
	})

	return &App{
		config:    c,
		logger:    logger,
		store:     st,
		srv:       srv,
		rotator:   rotator,
		accessLog: accessLog,
	}, nil
}

func newStore(ctx context.Context, c *config.Config) (store.Store, error) {
	switch c.StoreBackend {
	case "memory":
		return memstore.New(), nil
	case "file":
		return filestore.New(c.DataDir)
	case "postgres":
		return postgres.New(ctx, c.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.srv.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	if app.rotator != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.rotator.Run(ctx)
		}()
	}

	wg.Wait()

	if app.accessLog != nil {
		if err := app.accessLog.Close(); err != nil {
			app.logger.Warn(ctx, "closing access log", "error", err)
		}
	}
}
