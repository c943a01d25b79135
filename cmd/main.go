package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/weiawesome/contact-service/internal/config"
	"github.com/weiawesome/contact-service/internal/handler"
	"github.com/weiawesome/contact-service/internal/metrics"
	"github.com/weiawesome/contact-service/internal/repository"
	"github.com/weiawesome/contact-service/internal/service"
	"github.com/weiawesome/contact-service/pkg/database"
	pkglog "github.com/weiawesome/contact-service/pkg/log"
	"github.com/weiawesome/contact-service/pkg/pubsub"
)

const serviceName = "contact-service"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty || cfg.Log.Level == "debug",
		ServiceName: serviceName,
	})
	logger := pkglog.L()

	// A store that cannot be reached at startup is fatal. Store failures
	// after startup are reported per request.
	repo, err := newMessageRepository(cfg)
	if err != nil {
		logger.Fatal().Err(err).Str(pkglog.FieldDriver, cfg.Store.Driver).Msg("failed to initialize message store")
	}
	logger.Info().Str(pkglog.FieldDriver, cfg.Store.Driver).Msg("message store connected")

	publisher, err := pubsub.NewPublisher(cfg.PubSub)
	if err != nil {
		logger.Fatal().Err(err).Str(pkglog.FieldDriver, cfg.PubSub.Driver).Msg("failed to create publisher")
	}

	// Initialize service and HTTP handler
	contactService := service.NewContactService(repo, publisher, cfg.Store.PublishTimeout)
	httpHandler := handler.NewHandler(contactService, cfg.Server.FormPage)

	// Setup Gin router
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(pkglog.GinMiddleware(logger))
	r.Use(pkglog.GinRecovery(httpHandler.Recover))
	if cfg.Metrics.Enabled {
		r.Use(metrics.GinMiddleware())
		r.GET("/metrics", metrics.Handler())
	}

	httpHandler.RegisterRoutes(r)

	if cfg.Server.StaticDir != "" {
		serveStatic(r, cfg.Server.StaticDir)
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().
			Str("addr", srv.Addr).
			Str(pkglog.FieldDriver, cfg.Store.Driver).
			Str("pubsub", cfg.PubSub.Driver).
			Msg("contact-service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	runErr := g.Wait()

	if err := publisher.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close publisher")
	}
	if err := repo.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close message store")
	}

	if runErr != nil {
		logger.Error().Err(runErr).Msg("server exited with error")
		os.Exit(1)
	}
	logger.Info().Msg("server exited")
}

// newMessageRepository connects the configured store driver.
func newMessageRepository(cfg *config.Config) (repository.MessageRepository, error) {
	switch cfg.Store.Driver {
	case repository.DriverCassandra:
		repo, err := repository.NewCassandraMessageRepository(cfg.Cassandra, nil)
		if err != nil {
			return nil, err
		}
		return repo, nil

	case repository.DriverGorm, "":
		db, err := database.New(cfg.Database.ToDatabaseConfig())
		if err != nil {
			return nil, err
		}
		repo := repository.NewGormMessageRepository(db, nil)
		if err := repo.Migrate(); err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("failed to migrate messages table: %w", err)
		}
		return repo, nil

	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// serveStatic serves files from dir for any GET that no route matched.
func serveStatic(r *gin.Engine, dir string) {
	fs := gin.Dir(dir, false)
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.FileFromFS(c.Request.URL.Path, fs)
	})
}
