// Command resetadmin recreates the admin account with fresh credentials.
//
//	go run ./cmd/resetadmin --email admin@example.com --password 's3cret'
//
// Flags default to ADMIN_EMAIL / ADMIN_PASSWORD from the usual configuration.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"portfolio_api/internal/config"
	"portfolio_api/internal/logger"
	"portfolio_api/internal/models"
	"portfolio_api/internal/repository"
	"portfolio_api/internal/repository/db"
	"portfolio_api/internal/service"

	flag "github.com/spf13/pflag"
)

const runTimeout = 30 * time.Second

func main() {
	email := flag.StringP("email", "e", "", "admin email (default: configured admin.email)")
	password := flag.StringP("password", "p", "", "new password (default: configured admin.password)")
	configDir := flag.String("config-dir", "configs", "directory holding config.yml")
	flag.Parse()

	log := logger.Get(logger.InfoLevel)
	defer func() { _ = log.Sync() }()

	if err := run(*configDir, *email, *password, log); err != nil {
		log.Errorw("admin reset failed", "err", err)
		os.Exit(1)
	}
}

func run(configDir, email, password string, log *logger.Logger) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	conn, err := db.Open(ctx, db.Options{Driver: cfg.DB.Driver, DSN: cfg.DB.DSN})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = conn.Close() }()

	_, auth := service.NewService(repository.NewRepository(conn), service.Options{
		JWTSecret:  cfg.Auth.JWTSecret,
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
		Admin:      models.AdminCredentials{Email: cfg.Admin.Email, Password: cfg.Admin.Password},
	})

	creds, err := auth.ResetAdmin(ctx, email, password)
	if err != nil {
		return err
	}
	log.Infow("admin credentials reset", "email", creds.Email)
	if password == "" && cfg.UsesDefaultAdminPassword() {
		log.Warnw("the default admin password is in effect; pass --password to choose another")
	}
	return nil
}
