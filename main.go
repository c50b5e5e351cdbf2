package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/diva1520/task-tracker/config"
	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
	"github.com/diva1520/task-tracker/routes"
	"github.com/diva1520/task-tracker/services"
	"github.com/diva1520/task-tracker/utils"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:          "tasktracker",
		Short:        "Task tracking and time ledger server",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Create the default supervisor and worker accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(configPath)
		},
	}

	root.AddCommand(serve, seed)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.JWT.Secret != "" {
		utils.Configure(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)
	}

	db, err := config.ConnectDB(cfg.Database.DSN)
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return err
	}

	var mailer services.Mailer
	if cfg.SMTP.Enabled {
		mailer = &services.SMTPMailer{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}
	}

	r := routes.SetupRouter(db, mailer)
	slog.Info("server listening", "addr", cfg.Addr)
	return r.Run(cfg.Addr)
}

// runSeed inserts a supervisor and a worker account when the users
// table does not already contain them.
func runSeed(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	db, err := config.ConnectDB(cfg.Database.DSN)
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return err
	}

	accounts := []struct {
		username string
		email    string
		password string
		role     constants.Role
	}{
		{"admin", "admin@example.com", "admin123", constants.RoleSupervisor},
		{"worker", "worker@example.com", "worker123", constants.RoleWorker},
	}

	for _, a := range accounts {
		var count int64
		if err := db.Model(&models.User{}).Where("username = ?", a.username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			slog.Info("seed account already exists", "username", a.username)
			continue
		}
		hash, err := utils.HashPassword(a.password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", a.username, err)
		}
		user := models.User{
			Username: a.username,
			Email:    a.email,
			Password: hash,
			Role:     a.role,
			Active:   true,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("create %s: %w", a.username, err)
		}
		slog.Info("seeded account", "username", a.username, "role", a.role)
	}
	return nil
}
