// Command tickdesk runs the ticket dashboard API server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/tickdesk/tickdesk/internal/api"
	"github.com/tickdesk/tickdesk/internal/config"
	"github.com/tickdesk/tickdesk/internal/database"
	"github.com/tickdesk/tickdesk/internal/models"
	"github.com/tickdesk/tickdesk/internal/repository"
	"github.com/tickdesk/tickdesk/internal/service"
	"github.com/tickdesk/tickdesk/pkg/logger"
)

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:          "tickdesk",
		Short:        "Internal ticket-tracking dashboard API",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")
	root.AddCommand(serveCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			log := logger.New(cfg.Env)

			db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := database.Migrate(db); err != nil {
				return err
			}

			ticketRepo := repository.NewTicketRepository(db)
			userRepo := repository.NewUserRepository(db)
			companyRepo := repository.NewCompanyRepository(db)

			handlers := &api.Handlers{
				Auth:      service.NewAuthService(userRepo, []byte(cfg.JWTSecret), cfg.TokenTTL),
				Tickets:   service.NewTicketService(ticketRepo),
				Companies: service.NewCompanyService(companyRepo),
				Users:     service.NewUserService(userRepo),
				Reports:   service.NewReportService(ticketRepo),
				Log:       log,
				LoginRate: cfg.LoginRate,
			}

			if cfg.Env != "dev" {
				gin.SetMode(gin.ReleaseMode)
			}
			engine := gin.New()
			engine.Use(gin.Recovery())
			handlers.Register(engine)

			sweeper := service.NewOverdueSweeper(ticketRepo, log)
			scheduler := cron.New()
			if _, err := scheduler.AddFunc(cfg.SweepCron, func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				sweeper.Run(ctx)
			}); err != nil {
				return fmt.Errorf("schedule overdue sweep: %w", err)
			}
			scheduler.Start()
			defer scheduler.Stop()

			log.Info().Str("addr", cfg.ListenAddr).Str("driver", cfg.DBDriver).Msg("starting server")
			return engine.Run(cfg.ListenAddr)
		},
	}
}

func seedCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the initial admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := database.Migrate(db); err != nil {
				return err
			}

			// Seeding runs as a synthetic admin identity; the service
			// enforces the same rules either way.
			users := service.NewUserService(repository.NewUserRepository(db))
			admin := models.Identity{Username: "system", Role: models.RoleAdmin}
			user, err := users.Create(cmd.Context(), admin, username, password, models.RoleAdmin)
			if err != nil {
				return err
			}
			fmt.Printf("created admin user %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "admin", "admin username")
	cmd.Flags().StringVar(&password, "password", "", "admin password (required)")
	cmd.MarkFlagRequired("password")
	return cmd
}
