package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"tutortribe/internal/api"
	"tutortribe/internal/app"
	"tutortribe/internal/auth"
	"tutortribe/internal/config"
	"tutortribe/internal/repository"
	"tutortribe/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()
	sugar := logger.Sugar()

	conn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		sugar.Fatalf("Failed to open DB: %v", err)
	}
	if err := conn.Ping(); err != nil {
		sugar.Fatalf("Failed to connect to DB: %v", err)
	}

	migrator, err := app.NewMigrator(conn, cfg.MigrationsDir)
	if err != nil {
		sugar.Fatalf("Failed to set up migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		sugar.Fatalf("Failed to apply migrations: %v", err)
	}

	if cfg.SeedDemoUsers {
		if err := app.SeedDemoUsers(conn, cfg.AllowedEmailDomain, sugar); err != nil {
			sugar.Fatalf("Failed to seed demo users: %v", err)
		}
	}

	userRepo := repository.NewUserRepository(conn)
	slotRepo := repository.NewSlotRepository(conn)
	bookingRepo := repository.NewBookingRepository(conn)

	notifier := service.NewNotifyService(cfg.SendGridAPIKey, cfg.SendGridFromEmail, cfg.SendGridFromName, sugar)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.AccessTokenTTL(), cfg.AllowedEmailDomain)
	slotSvc := service.NewSlotService(slotRepo, bookingRepo, notifier, sugar)
	jobSvc := service.NewJobService(slotRepo, sugar)

	authHandler := api.NewAuthHandler(authSvc, cfg.Environment)
	slotHandler := api.NewSlotHandler(slotSvc, cfg.Environment)
	adminHandler := api.NewAdminHandler(userRepo, bookingRepo, cfg.Environment)

	router := api.NewRouter(authHandler, slotHandler, adminHandler, auth.Middleware(cfg.JWTSecret))

	c := cron.New()
	if _, err := c.AddFunc("@every 15m", func() {
		if err := jobSvc.CancelExpiredSlots(); err != nil {
			sugar.Errorw("expired slot job failed", "error", err)
		}
	}); err != nil {
		sugar.Fatalf("Failed to schedule expired slot job: %v", err)
	}
	c.Start()
	defer c.Stop()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
	)

	sugar.Infow("server running", "port", cfg.Port, "env", cfg.Environment)
	sugar.Fatal(http.ListenAndServe(":"+cfg.Port, cors(router)))
}
