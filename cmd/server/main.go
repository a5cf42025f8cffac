package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-management-backend/internal/cache"
	"clinic-management-backend/internal/config"
	"clinic-management-backend/internal/database"
	"clinic-management-backend/internal/jobs"
	"clinic-management-backend/internal/router"
	"clinic-management-backend/internal/service"
	"clinic-management-backend/pkg/logger"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadConfig()
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	root := &cobra.Command{
		Use:          "clinic-server",
		Short:        "Clinic management backend",
		SilenceUsage: true,
	}
	root.AddCommand(
		serveCmd(cfg, log),
		migrateCmd(cfg, log),
		seedCmd(cfg, log),
	)

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func serveCmd(cfg *config.Config, log zerolog.Logger) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and background jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg, log, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run schema migrations before serving")
	return cmd
}

func migrateCmd(cfg *config.Config, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Connect(cfg)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			log.Info().Str("driver", cfg.Database.Driver).Msg("schema migrated")
			return nil
		},
	}
}

func seedCmd(cfg *config.Config, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the service catalog, medications and the admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Connect(cfg)
			if err != nil {
				return err
			}
			result, err := database.Seed(cmd.Context(), db, cfg.Seed)
			if err != nil {
				return err
			}
			log.Info().
				Int("services", result.Services).
				Int("medications", result.Medications).
				Bool("admin_created", result.AdminCreated).
				Msg("database seeded")
			return nil
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger, migrate bool) error {
	// Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("connected to database")

	if migrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	var limiter service.LoginLimiter = service.NewMemoryLoginLimiter(cfg.Auth.MaxLoginAttempts, cfg.Auth.LockoutWindow)
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		limiter = cache.NewRedisLoginLimiter(client, cfg.Auth.MaxLoginAttempts, cfg.Auth.LockoutWindow)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttling backed by redis")
	}

	svc := service.NewServices(db, limiter, service.NewLogNotifier(log))

	gin.SetMode(cfg.Server.GinMode)
	engine, err := router.New(cfg, svc, log)
	if err != nil {
		return err
	}

	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log, svc.Reminders, svc.Auth)
		if err := scheduler.Register(cfg.Jobs); err != nil {
			return err
		}
		scheduler.Start()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server exited")
	return nil
}
