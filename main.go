package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rcsmith8/starter-restaurant-reservation/config"
	"github.com/rcsmith8/starter-restaurant-reservation/dashboard"
	"github.com/rcsmith8/starter-restaurant-reservation/database"
	"github.com/rcsmith8/starter-restaurant-reservation/mq"
	"github.com/rcsmith8/starter-restaurant-reservation/repository"
	"github.com/rcsmith8/starter-restaurant-reservation/router"
	"github.com/rcsmith8/starter-restaurant-reservation/services"
	"github.com/rcsmith8/starter-restaurant-reservation/utils"
	"github.com/rcsmith8/starter-restaurant-reservation/validation"
)

const (
	authRateLimit   = 5
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Info("No .env file found, using the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	if err := utils.InitLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
		utils.ErrorLogger.Fatalf("Failed to init logger: %v", err)
	}
	utils.ConfigureJWT(cfg.JWTSecret, cfg.JWTTTL)
	loc, _ := cfg.Location()

	db, err := config.InitDB(cfg.DB, utils.InfoLogger)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db, utils.InfoLogger); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}
	if cfg.SeedDatabase {
		if err := database.Seed(db, utils.InfoLogger); err != nil {
			utils.ErrorLogger.Fatalf("Failed to seed: %v", err)
		}
	}

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	hub := dashboard.NewHub(utils.InfoLogger)
	monitor := services.NewChangeMonitor(
		repository.NewChangeRepository(db),
		repository.NewReservationRepository(db),
		repository.NewTableRepository(db),
		utils.InfoLogger,
	)
	monitor.Hub = hub
	monitor.Interval = cfg.ChangePollInterval

	if cfg.AMQPURL != "" {
		publisher, err := mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			utils.ErrorLogger.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		monitor.Publisher = publisher
		utils.InfoLogger.WithField("exchange", cfg.AMQPExchange).Info("Publishing changes to RabbitMQ")
	}
	monitor.Start()

	r := router.SetupRouter(db, router.Options{
		Clock:          validation.SystemClock{Location: loc},
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit:      cfg.RateLimit,
		RateWindow:     cfg.RateLimitWindow,
		AuthRateLimit:  authRateLimit,
		Hub:            hub,
	})
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Infof("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Errorf("Server shutdown: %v", err)
	}
	monitor.Stop()
	hub.Close()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
