// @title Todo List API
// @version 1.0
// @description Multi-user todo API with users, lists and tasks

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /
// @schemes http https

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	_ "TODOLIST_BACK-END/docs" // This is required for swagger
	"TODOLIST_BACK-END/internal/cache"
	"TODOLIST_BACK-END/internal/config"
	"TODOLIST_BACK-END/internal/database"
	"TODOLIST_BACK-END/internal/handlers"
	"TODOLIST_BACK-END/internal/routes"
	"TODOLIST_BACK-END/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	setupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	store := database.New(pool)
	if cfg.Database.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Info("Database schema is up to date")
	}

	var repo database.Repository = store
	if cfg.IsCacheConfigured() {
		rc, err := cache.NewClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer rc.Close()
		repo = cache.New(store, rc, cfg.Cache.TTL, log.StandardLogger())
		log.WithField("ttl", cfg.Cache.TTL).Info("Redis cache enabled")
	}

	hasher, err := utils.NewPasswordHasher(cfg.Security.PasswordHashAlgorithm, cfg.Security.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to create password hasher: %v", err)
	}

	// Initialize handlers
	handler := routes.NewHandler(routes.Handlers{
		Health: handlers.NewHealthHandler(repo),
		Users:  handlers.NewUsersHandler(repo, hasher),
		Lists:  handlers.NewListsHandler(repo),
		Tasks:  handlers.NewTasksHandler(repo),
	}, cfg.CORS, log.StandardLogger())

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.WithFields(log.Fields{
			"port":        cfg.Server.Port,
			"environment": cfg.Environment,
		}).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server shutdown error: %v", err)
	}
	log.Info("Server stopped")
}

func setupLogger(cfg config.LogConfig) {
	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", cfg.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
