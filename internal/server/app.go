// Package server initializes and runs the application: it selects the
// storage backend, wires services to the HTTP API, and handles graceful
// shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/avolkov/pdfchat/internal/filex"
	"github.com/avolkov/pdfchat/internal/logging"
	"github.com/avolkov/pdfchat/internal/server/blob"
	"github.com/avolkov/pdfchat/internal/server/config"
	"github.com/avolkov/pdfchat/internal/server/db"
	"github.com/avolkov/pdfchat/internal/server/httpapi"
	"github.com/avolkov/pdfchat/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  db.RepositoryManager
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	repos, err := selectRepositoryManager(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	blobs, err := selectBlobStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("blob init error: %w", err)
	}

	us := services.NewUserService(repos.Users(), logger, cfg)
	fs := services.NewFileService(repos.Files(), blobs, logger, cfg.MaxFileSize)
	cs := services.NewChatService(fs, logger)

	srv := httpapi.NewServer(cfg, logger, us, fs, cs)

	return &App{config: cfg, logger: logger, repos: repos, server: srv}, nil
}

// selectRepositoryManager returns the postgres backend when a DSN is
// configured and the in-memory reference backend otherwise.
func selectRepositoryManager(ctx context.Context, cfg *config.Config) (db.RepositoryManager, error) {
	if cfg.DatabaseDSN == "" {
		return db.NewInMemoryRepositoryManager(), nil
	}

	m, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := m.RunMigrations(ctx); err != nil {
		m.Close()
		return nil, err
	}

	return m, nil
}

// selectBlobStore returns the S3 store when an endpoint is configured
// and the local upload directory otherwise.
func selectBlobStore(ctx context.Context, cfg *config.Config) (blob.Store, error) {
	if cfg.S3BaseEndpoint != "" {
		return blob.NewS3Store(ctx, blob.S3Config{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	}

	dir, err := filex.EnsureDir(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	return blob.NewLocalStore(dir)
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

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "error closing storage", "error", err.Error())
	}
}
