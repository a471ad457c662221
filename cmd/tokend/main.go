package main

// @title           tokend API
// @version         1.0
// @description     Single-tenant OAuth2 credential lifecycle service. Performs the authorization code handshake with the configured identity provider, persists the credential pair, and keeps it fresh by refreshing before expiry.

// @contact.name   Custodia OSS
// @contact.url    https://github.com/custodia-labs/tokend/issues

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:9001
// @BasePath  /

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	_ "github.com/custodia-labs/tokend/docs"
	"github.com/custodia-labs/tokend/internal/adapters/driven/google"
	"github.com/custodia-labs/tokend/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/tokend/internal/adapters/driven/redis"
	httpserver "github.com/custodia-labs/tokend/internal/adapters/driving/http"
	"github.com/custodia-labs/tokend/internal/config"
	"github.com/custodia-labs/tokend/internal/core/ports/driven"
	"github.com/custodia-labs/tokend/internal/core/services"
)

var version = "dev"

func main() {
	log.Printf("tokend %s starting", version)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutdown signal received, stopping...")
		cancel()
	}()

	// ===== Initialize PostgreSQL =====
	log.Println("Connecting to PostgreSQL...")
	dbConfig := postgres.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	}
	db, err := postgres.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize schema (idempotent)
	if err := db.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	log.Println("PostgreSQL connected and schema initialized")

	// ===== Initialize Redis (optional) =====
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Redis connected")
	}

	// ===== Stores =====
	tokenStore := postgres.NewTokenStoreWithRetention(db, cfg.MaxTokenRecords)

	// State store: Redis if available, otherwise PostgreSQL
	var stateStore driven.StateStore
	if redisClient != nil {
		stateStore = redisadapter.NewStateStore(redisClient)
		log.Println("Using Redis state store")
	} else {
		stateStore = postgres.NewStateStore(db)
		log.Println("Using PostgreSQL state store")
	}

	// ===== Provider client =====
	provider := google.New(google.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURI:  cfg.RedirectURI,
		Scope:        cfg.Scope,
	})

	// ===== Services =====
	oauthService := services.NewOAuthService(services.OAuthServiceConfig{
		TokenStore:   tokenStore,
		StateStore:   stateStore,
		Provider:     provider,
		DefaultScope: cfg.Scope,
		Logger:       slog.Default(),
	})

	sweeper := services.NewSweeper(services.SweeperConfig{
		Service:  oauthService,
		Logger:   slog.Default(),
		Interval: cfg.SweepInterval,
	})
	sweeper.Start(ctx)
	defer sweeper.Stop()

	// ===== HTTP server =====
	server := httpserver.NewServer(httpserver.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Version:  version,
		Provider: cfg.Provider,
	}, oauthService, db)

	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
