package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-stock-digest/internal/digest/config"
	delivery "golang-stock-digest/internal/digest/delivery/http"
	_ "golang-stock-digest/internal/digest/docs"
	"golang-stock-digest/internal/digest/repository"
	"golang-stock-digest/internal/digest/service"
	"golang-stock-digest/pkg/logger"
	"golang-stock-digest/pkg/postgres"
	"golang-stock-digest/pkg/redis"
	"golang-stock-digest/pkg/supabase"
	"golang-stock-digest/pkg/telegram"

	"github.com/resend/resend-go/v2"
	"github.com/spf13/cobra"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the digest service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("Invalid configuration", logger.ErrorField(err))
	}

	appLogger.Info("Starting Digest Service",
		logger.Field("name", cfg.App.Name),
		logger.StringField("env", cfg.App.Env),
		logger.StringField("ai_provider", cfg.AI.Provider))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Redis is only needed for slot deduplication across instances
	slotGuard := service.NewNopSlotGuard()
	if cfg.Redis.Host != "" {
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
		slotGuard = service.NewRedisSlotGuard(redisClient.Client)
	}

	httpClient := &http.Client{Timeout: 90 * time.Second}

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db.DB)
	digestRepo := repository.NewDigestRepository(db.DB)

	var headlineRepo repository.HeadlineRepository
	if cfg.Research.Headlines.Enabled {
		headlineRepo = repository.NewRSSHeadlineRepository(cfg.Research.Headlines.URLTemplate, cfg.Research.Headlines.MaxItems)
	}

	// Initialize AI provider
	var researchRepo repository.ResearchRepository
	switch cfg.AI.Provider {
	case config.ProviderGemini:
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		researchRepo = repository.NewGeminiResearchRepository(cfg.Gemini, genAiClient, headlineRepo, appLogger)
	default:
		researchRepo = repository.NewGrokResearchRepository(cfg.Grok, headlineRepo, appLogger, httpClient)
	}

	mailer, err := service.NewResendMailer(cfg, resend.NewClient(cfg.Mail.APIKey), appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize mailer", logger.ErrorField(err))
	}

	notifier := telegram.NewNopNotifier()
	if cfg.Telegram.BotToken != "" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize services
	researchSvc := service.NewResearchService(researchRepo, appLogger)
	digestSvc := service.NewDigestService(profileRepo, digestRepo, researchSvc, mailer, slotGuard, notifier, appLogger,
		service.DigestOptions{DeduplicateSlot: cfg.Digest.DeduplicateSlot})
	profileSvc := service.NewProfileService(profileRepo, digestRepo, appLogger)

	authClient := supabase.NewAuthClient(cfg.Supabase.URL, cfg.Supabase.ServiceRoleKey, cfg.Auth.CacheTTL, &http.Client{Timeout: 10 * time.Second})

	// Initialize handlers and routes
	handlers := delivery.Handlers{
		Cron:     delivery.NewCronHandler(digestSvc, cfg.Cron.Secret, cfg.Digest.CronTimeout, appLogger),
		Digest:   delivery.NewDigestHandler(digestSvc, cfg.Digest.SendTimeout, appLogger),
		Research: delivery.NewResearchHandler(researchSvc, appLogger),
		Profile:  delivery.NewProfileHandler(profileSvc, appLogger),
	}
	e := delivery.NewRouter(handlers, delivery.AuthMiddleware(authClient, appLogger), appLogger, delivery.RouterOptions{
		RateLimit: cfg.RateLimit.Rate,
		Burst:     cfg.RateLimit.Burst,
	})
	// A cycle may run for the whole cron timeout before it responds.
	e.Server.WriteTimeout = cfg.Digest.CronTimeout + 10*time.Second

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Stock Digest API
// @version 1.0
// @description Scheduled AI stock research digests delivered by email.
// @BasePath /api
func main() {
	rootCmd := &cobra.Command{Use: "digest-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-digest.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing digest-service CLI: %s\n", err)
		os.Exit(1)
	}
}
