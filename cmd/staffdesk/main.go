// Package main is the entry point for the staffdesk application.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"staffdesk/internal/app"
	"staffdesk/internal/domain/job"
	"staffdesk/internal/domain/organization"
	"staffdesk/internal/domain/user"
	v1 "staffdesk/internal/infrastructure/http/v1"
	"staffdesk/internal/infrastructure/storage/sqlite"
	"staffdesk/internal/state"
	"staffdesk/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("starting staffdesk")

	// --- Store ---
	dbPath := getEnv("STAFFDESK_DB_PATH", "./data/staffdesk.db")
	db, err := sqlite.Open(dbPath)
	if err != nil {
		log.Fatalw("failed to open database", "path", dbPath, "error", err)
	}
	defer db.Close()

	if err := sqlite.Migrate(ctx, db); err != nil {
		log.Fatalw("failed to migrate database", "error", err)
	}
	log.Infow("database ready", "path", dbPath)

	// --- Repositories & services ---
	txManager := sqlite.NewTxManager(db)

	userRepo := sqlite.NewUserRepo(txManager)
	jobRepo := sqlite.NewJobRepo(txManager)
	orgRepo := sqlite.NewOrganizationRepo(txManager)

	userService := user.NewService(userRepo, jobRepo, orgRepo, txManager)
	jobService := job.NewService(jobRepo, txManager)
	orgService := organization.NewService(orgRepo, txManager)

	// --- State managers & session ---
	users := state.NewManager("user", userService, user.New)
	jobs := state.NewManager("job", jobService, job.New)
	organizations := state.NewManager("organization", orgService, organization.New)

	session := app.NewSession(log, users, jobs, organizations)
	go session.Run(ctx)

	if err := session.Hydrate(ctx); err != nil {
		log.Fatalw("failed to hydrate session", "error", err)
	}

	// --- HTTP intent adapter ---
	router := v1.NewRouter(v1.RouterConfig{
		Session: session,
		Logger:  log,
	})

	addr := getEnv("HTTP_ADDR", "127.0.0.1:8080")
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infow("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("http server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnw("http shutdown failed", "error", err)
	}
	cancel()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
