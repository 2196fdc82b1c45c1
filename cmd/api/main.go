package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"acservice/internal/config"
	"acservice/internal/database"
	"acservice/internal/repository"
	"acservice/internal/repository/memory"
	"acservice/internal/server"
	"acservice/internal/service"
	"acservice/internal/websocket"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"
)

// @title           AC Service Desk API
// @version         1.0
// @description     Users, service complaints, technician assignment and payments for an AC repair business.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.RequireJWTSecret(); err != nil {
		log.Fatal(err)
	}
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run(ctx)

	router, services := server.New(repos, server.Options{
		Tokens:      service.NewTokenIssuer([]byte(cfg.JWT.Secret), cfg.JWT.TTL),
		Hub:         wsHub,
		CORSOrigins: cfg.CORS.Origins,
	})

	if cfg.Admin.Phone != "" && cfg.Admin.Password != "" {
		created, err := services.Users.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Phone, cfg.Admin.Password)
		if err != nil {
			log.Fatalf("Seeding admin failed: %v", err)
		}
		if created {
			log.Printf("Seeded admin account %s", cfg.Admin.Phone)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}

func openStorage(cfg config.Config) (server.Repositories, error) {
	if cfg.Storage == "memory" {
		log.Println("Using in-memory storage; data is lost on restart.")
		store := memory.NewStore()
		return server.Repositories{
			Users:      store.Users(),
			Complaints: store.Complaints(),
			Audit:      store.Audit(),
			Statistics: store.Statistics(),
			Tx:         store.TxManager(),
		}, nil
	}

	opts := database.Options{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	}
	if cfg.Logging.Level == "debug" {
		opts.LogLevel = logger.Info
	}
	db, err := database.NewConnection(cfg.DSN(), opts)
	if err != nil {
		return server.Repositories{}, err
	}
	log.Println("Connected to PostgreSQL successfully.")

	return server.Repositories{
		Users:      repository.NewUserRepository(db),
		Complaints: repository.NewComplaintRepository(db),
		Audit:      repository.NewAuditRepository(db),
		Statistics: repository.NewStatisticsRepository(db),
		Tx:         repository.NewTransactionManager(db),
	}, nil
}
