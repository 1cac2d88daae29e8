// Package main is the entry point for the Delhi water-logging server.
// It provides a REST API for citizen complaint filing and tracking, the
// authority complaint workflow, ward flood-risk data, and integrity proofs
// over the complaint records.
//
// Architecture:
//   - All state lives in one key-value layout (memory, redis or postgres)
//   - A single current session, with bearer tokens bound to its login time
//   - Page access rules gate the API by the page each endpoint serves
//   - Activity logs record every lifecycle action by authority
//   - Merkle tree root rebuilt periodically for tamper detection
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aawaaz/waterlogging-server/internal/config"
	"github.com/aawaaz/waterlogging-server/internal/database"
	"github.com/aawaaz/waterlogging-server/internal/handlers"
	"github.com/aawaaz/waterlogging-server/internal/middleware"
	"github.com/aawaaz/waterlogging-server/internal/migrate"
	"github.com/aawaaz/waterlogging-server/internal/services"
	"github.com/aawaaz/waterlogging-server/internal/storage"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	logger := newLogger(cfg)
	defer logger.Sync()
	sugar := logger.Sugar()

	sugar.Infow("Starting water-logging server",
		"port", cfg.Port,
		"env", cfg.Environment,
		"store", cfg.StoreBackend,
		"notify", cfg.NotifyBackend,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg, sugar)
	if err != nil {
		sugar.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	notifier, closeNotifier, err := newNotifier(ctx, cfg, sugar)
	if err != nil {
		sugar.Fatalf("Failed to create notifier: %v", err)
	}
	defer closeNotifier()

	passwords, err := services.NewPasswordChecker(cfg.PasswordMode)
	if err != nil {
		sugar.Fatalf("Failed to create password checker: %v", err)
	}

	// Initialize services
	sessions := services.NewSessionManager(store, cfg.SessionTimeout, time.Now, sugar)
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.SessionTimeout, time.Now)
	authSvc := services.NewAuthService(store, sessions, passwords, time.Now, sugar)
	activitySvc := services.NewActivityLogService(store, time.Now, sugar)
	complaintSvc := services.NewComplaintService(store, sugar,
		services.WithEscalationAge(cfg.EscalationAge),
		services.WithNotifier(notifier),
		services.WithActivityLog(activitySvc),
	)
	now := time.Now()
	wardSvc := services.NewWardService(services.DelhiWards, services.SeedFromConfig(cfg.IncidentSeed, now), now.Year(), sugar)
	merkleSvc := services.NewMerkleService(sugar)
	integrityWorker := services.NewIntegrityWorker(merkleSvc, complaintSvc, sugar)

	// Start background integrity worker (rebuilds Merkle tree periodically)
	go integrityWorker.Start(ctx, cfg.IntegrityInterval)

	api := &handlers.API{
		Auth:        handlers.NewAuthHandler(authSvc, sessions, services.NewAccessControl(sessions), tokens, store, sugar),
		Preferences: handlers.NewPreferenceHandler(store, sugar),
		Complaints:  handlers.NewComplaintHandler(complaintSvc, sugar),
		Wards:       handlers.NewWardHandler(wardSvc, sugar),
		Activity:    handlers.NewActivityHandler(activitySvc, sugar),
		Integrity:   handlers.NewIntegrityHandler(merkleSvc, complaintSvc, sugar),
		Health:      handlers.NewHealthHandler(store, merkleSvc, sugar),
		Tokens:      tokens,
		Sessions:    sessions,
	}

	// Build router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Rate limiting
	r.Use(middleware.RateLimit(cfg.RateLimitRPM))

	// API Routes
	r.Route("/api/v1", api.Routes)

	// Serve static files (dashboard pages)
	r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sugar.Infof("Server listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	sugar.Info("Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorf("Forced shutdown: %v", err)
	}

	sugar.Info("Server stopped")
}

func newLogger(cfg *config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// openStore connects the configured backend and runs the key migration.
// The returned func releases the backend connection.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*storage.Store, func(), error) {
	var (
		kv      storage.KV
		closeKV = func() {}
	)

	switch cfg.StoreBackend {
	case config.StoreRedis:
		rkv, err := storage.NewRedisKV(ctx, cfg.RedisURL, cfg.RedisKeyPrefix)
		if err != nil {
			return nil, nil, err
		}
		kv = rkv
		closeKV = func() { _ = rkv.Close() }

	case config.StorePostgres:
		if err := migrate.Up(ctx, cfg.DatabaseURL); err != nil {
			return nil, nil, err
		}
		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		kv = storage.NewPostgresKV(pool)
		closeKV = pool.Close

	default:
		logger.Warn("Using in-memory store; data is lost on restart")
		kv = storage.NewMemoryKV()
	}

	store, err := storage.Open(ctx, kv, logger)
	if err != nil {
		closeKV()
		return nil, nil, err
	}
	return store, closeKV, nil
}

func newNotifier(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (services.Notifier, func(), error) {
	if cfg.NotifyBackend != config.NotifyRedis {
		return services.NewLogNotifier(logger), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return services.NewRedisNotifier(client, cfg.NotifyStream), func() { _ = client.Close() }, nil
}
