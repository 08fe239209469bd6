package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang-stock-digest/internal/digest/config"
	"golang-stock-digest/internal/digest/trigger"
	"golang-stock-digest/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	configPath string
	once       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Calls the digest cron endpoint on a schedule",
	Run:   runTrigger,
}

func runTrigger(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	if cfg.Cron.Secret == "" {
		appLogger.Fatal("Missing required environment variable CRON_SECRET")
	}

	svc, err := trigger.NewTriggerService(cfg.Trigger.URL, cfg.Trigger.Spec, cfg.Cron.Secret, cfg.Trigger.Timeout, &http.Client{}, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize trigger", logger.ErrorField(err))
	}

	if once {
		report, err := svc.Fire(ctx)
		if err != nil {
			appLogger.Fatal("Failed to trigger digest cycle", logger.ErrorField(err))
		}
		appLogger.Info("Digest cycle triggered",
			logger.StringField("message", report.Message),
			logger.IntField("users_processed", report.UsersProcessed))
		return
	}

	appLogger.Info("Starting Digest Trigger",
		logger.StringField("url", cfg.Trigger.URL),
		logger.StringField("spec", cfg.Trigger.Spec))
	svc.Start(ctx)
}

func main() {
	rootCmd := &cobra.Command{Use: "digest-trigger"}

	runCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-digest.yaml", "Path to the configuration file")
	runCmd.Flags().BoolVar(&once, "once", false, "Trigger a single cycle and exit")

	rootCmd.AddCommand(runCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing digest-trigger CLI: %s\n", err)
		os.Exit(1)
	}
}
