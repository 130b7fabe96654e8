package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chancebackend/config"
	_ "chancebackend/docs"
	"chancebackend/internal/adapters/auth"
	"chancebackend/internal/adapters/email"
	"chancebackend/internal/adapters/eventsource"
	deliveryhttp "chancebackend/internal/delivery/http"
	"chancebackend/internal/delivery/http/controllers"
	"chancebackend/internal/delivery/http/middleware"
	"chancebackend/internal/repository/postgres"
	"chancebackend/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title Chance Backend API
// @version 1.0
// @description Event management backend: accounts, profiles, events and participant rosters.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := postgres.Open(cfg.DBUrl)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.RunMigrations(cfg.DBUrl, cfg.MigrationsPath); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database ready")

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	membershipRepo := postgres.NewMembershipRepository(db)

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	policy := auth.NewStrengthPolicy(0)
	issuer, verifier := auth.NewJWT(cfg.JWTSecret)
	fetcher := eventsource.NewHTTPFetcher(&http.Client{Timeout: 10 * time.Second})

	mailer, err := email.NewMailer(cfg.Email)
	if err != nil {
		logger.Error("mailer setup failed", "error", err)
		os.Exit(1)
	}
	renderer := email.NewTemplateRenderer()

	authService := services.NewAuthService(userRepo, hasher, policy, issuer, cfg.JWTExpiry)
	profileService := services.NewProfileService(userRepo, hasher, policy)
	eventService := services.NewEventService(eventRepo, fetcher, serviceTimeout)
	emailService := services.NewEmailService(mailer, renderer)
	membershipService := services.NewMembershipService(
		userRepo, eventRepo, membershipRepo, hasher, policy, emailService, serviceTimeout,
	)

	authController := controllers.NewAuthController(logger, authService)
	profileController := controllers.NewProfileController(logger, profileService)
	eventController := controllers.NewEventController(logger, eventService)
	participantController := controllers.NewParticipantController(logger, membershipService)

	mux := deliveryhttp.NewRouter(verifier, authController, profileController, eventController, participantController)

	var handler http.Handler = mux
	handler = middleware.Logging(logger, handler)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
