package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/credana/delinq-engine/pkg/config"
	"github.com/credana/delinq-engine/pkg/database"
	"github.com/credana/delinq-engine/pkg/datasource"
	"github.com/credana/delinq-engine/pkg/handlers"
	"github.com/credana/delinq-engine/pkg/llm"
	"github.com/credana/delinq-engine/pkg/logging"
	"github.com/credana/delinq-engine/pkg/middleware"
	"github.com/credana/delinq-engine/pkg/retry"
	"github.com/credana/delinq-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Local development secrets; missing .env is fine
	_ = godotenv.Load()

	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := newLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("ai_model", cfg.AI.Model),
		zap.String("fact_table", cfg.Chat.FactTable),
		zap.String("projection_table", cfg.Chat.ProjectionTable))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The data store must be reachable at startup; transient failures get a
	// few retries before giving up.
	db, err := retry.DoWithResult(ctx, retry.DefaultConfig(), func() (*database.DB, error) {
		return database.NewConnection(ctx, &database.Config{
			URL:            cfg.Database.ConnectionString(),
			MaxConnections: cfg.Database.MaxConnections,
		})
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	client, err := llm.NewClientForConfig(cfg.AI, logger)
	if err != nil {
		logger.Fatal("Failed to create model client", zap.Error(err))
	}

	executor := datasource.NewExecutor(db, cfg.Chat.EnforceReadOnly, logger)
	sessions := services.NewSessionManager(executor, cfg.Chat.FactTable, cfg.Chat.ProjectionTable, cfg.Chat.InsightSampleLimit, logger)
	chatService := services.NewChatService(
		sessions,
		services.NewIntentClassifier(client, logger),
		services.NewQuerySynthesizer(client, cfg.Chat.FactTable, cfg.Chat.ProjectionTable, logger),
		services.NewAnswerComposer(client, executor, cfg.Chat.MaxResultRows, logger),
		client,
		cfg.Chat,
		logger,
	)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewChatHandler(sessions, chatService, logger).RegisterRoutes(mux)
	handlers.NewSuggestionsHandler(logger).RegisterRoutes(mux)

	server := &http.Server{
		Addr:              cfg.BindAddr + ":" + cfg.Port,
		Handler:           middleware.RequestLogger(logger)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting delinq-engine",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	if env == "local" {
		logConfig := zap.NewDevelopmentConfig()
		logger, err := logConfig.Build()
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		return logger
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	return logger
}
