package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "portfolio_api/docs"
	"portfolio_api/internal/config"
	"portfolio_api/internal/handlers"
	"portfolio_api/internal/logger"
	"portfolio_api/internal/metrics"
	"portfolio_api/internal/models"
	"portfolio_api/internal/repository"
	"portfolio_api/internal/repository/db"
	"portfolio_api/internal/server"
	"portfolio_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

const (
	startupTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title Portfolio API
// @version 1.0
// @description Portfolio backend: projects, categories and moderated comments.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// load config (.env, configs/config.yml, environment)
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.ErrorLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	format := logger.FormatConsole
	if cfg.IsProduction() {
		format = logger.FormatJSON
		gin.SetMode(gin.ReleaseMode)
	}
	log := logger.GetWithFormat(cfg.Log.Level, format)
	defer func() { _ = log.Sync() }()

	// open DB
	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to open database", "driver", cfg.DB.Driver, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()

	// wire dependencies
	m := metrics.New()
	feed := service.NewModerationFeed(service.WithPublishHook(m.ObserveModeration))
	repos := repository.NewRepository(conn)
	services, auth := service.NewService(repos, service.Options{
		JWTSecret:  cfg.Auth.JWTSecret,
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
		Admin:      models.AdminCredentials{Email: cfg.Admin.Email, Password: cfg.Admin.Password},
		Feed:       feed,
	})

	bootstrap(cfg, auth, repos, log)

	apiHandler := handlers.NewHandler(services, log,
		handlers.WithUploads(cfg.Uploads.Dir, cfg.Uploads.URLPrefix, cfg.Uploads.MaxBytes),
		handlers.WithAllowedOrigins(cfg.CORS.AllowedOrigins),
		handlers.WithResetToken(cfg.Auth.ResetToken),
		handlers.WithMetrics(m),
	)

	// start HTTP server
	srv := server.New(server.Timeouts{
		ReadHeader: cfg.Server.ReadHeaderTimeout,
		Write:      cfg.Server.WriteTimeout,
		Idle:       cfg.Server.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

// openDB connects to the configured store and ensures the schema.
func openDB(cfg *config.Config, log *logger.Logger) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	conn, err := db.Open(ctx, db.Options{
		Driver:          cfg.DB.Driver,
		DSN:             cfg.DB.DSN,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	log.Infow("database ready", "driver", cfg.DB.Driver)
	return conn, nil
}

// bootstrap creates the admin account and default categories on first start.
func bootstrap(cfg *config.Config, auth *service.AuthService, repos *repository.Repository, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	rep, err := service.Bootstrap(ctx, auth, repos.Categories)
	if err != nil {
		log.Fatalw("bootstrap failed", "err", err)
	}
	if rep.AdminCreated {
		log.Infow("admin account created", "email", cfg.Admin.Email)
		if cfg.UsesDefaultAdminPassword() && !cfg.IsProduction() {
			log.Warnw("admin uses the default password; change it with cmd/resetadmin", "email", cfg.Admin.Email)
		}
	}
	if rep.CategoriesSeeded > 0 {
		log.Infow("default categories seeded", "count", rep.CategoriesSeeded)
	}
	if cfg.IsProduction() && cfg.UsesDefaultAdminPassword() {
		log.Warnw("ADMIN_PASSWORD is unset in production; the default admin password is in effect")
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
