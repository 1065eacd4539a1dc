package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmarcangeli/spedman/internal/app"
	"github.com/dmarcangeli/spedman/internal/ebay"
	"github.com/dmarcangeli/spedman/internal/logger"
	"github.com/dmarcangeli/spedman/internal/poste"
	"github.com/dmarcangeli/spedman/internal/services"
	"github.com/dmarcangeli/spedman/internal/shipitalia"
	"github.com/dmarcangeli/spedman/internal/storage"
	"github.com/dmarcangeli/spedman/internal/ui"
	"github.com/dmarcangeli/spedman/internal/utils"
)

func main() {
	// Real environment variables win over the .env file.
	_ = godotenv.Load()

	config, err := NewConfig()
	if err != nil {
		log.Fatalf("Configuration error: %s", err)
	}

	if err := logger.Initialize(config.logLevel, config.env, config.logDir); err != nil {
		log.Fatalf("Logger wasn't initialized due to %s", err)
	}
	logger.Log.Info("application started")

	utils.HandleTerminationProcess(func() {
		_ = logger.Log.Sync()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settings := config.settings

	marketplace := ebay.NewClient(ebay.Config{
		Token:   config.ebayToken,
		AppID:   config.ebayAppID,
		DevID:   config.ebayDevID,
		CertID:  config.ebayCertID,
		Retries: settings.HTTPRetries,
	})
	carrier := poste.NewClient(settings.HTTPRetries)
	provider := shipitalia.NewClient(config.shipKey, settings.HTTPRetries,
		shipitalia.WithLabelDir(settings.LabelDir))

	snapshots := storage.NewFileSnapshotStore(settings.SnapshotFile)
	history := storage.NewFileHistoryStore(settings.HistoryFile, settings.HistoryLimit)

	orderCache := services.NewOrderCacheService(marketplace)
	trackingCache := services.NewTrackingCacheService(carrier,
		time.Duration(settings.TrackingTTLSeconds)*time.Second)
	classifier := services.NewClassifier(trackingCache, settings.DeliveryKeywords)
	dashboard := services.NewDashboardService(orderCache, classifier, snapshots, settings.WorkerCap)
	shipments := services.NewShipmentService(provider, marketplace, history, orderCache)

	application := app.New(
		dashboard,
		shipments,
		classifier,
		provider,
		history,
		ui.NewPrompter(os.Stdin),
		app.Options{
			Sender:       settings.Sender,
			HistoryDays:  settings.HistoryDays,
			PageLimit:    settings.PageLimit,
			TokenWarning: marketplace.TokenExpiryWarning(ctx),
		},
	)

	application.Run(ctx)

	logger.Log.Info("application stopped")
	_ = logger.Log.Sync()
}
