package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asset-tracker/internal/config"
	"asset-tracker/internal/database"
	"asset-tracker/internal/services/quotes"
	"asset-tracker/internal/services/snapshot"

	"github.com/joho/godotenv"
)

var runOnce = flag.Bool("once", false, "take a single snapshot and exit")

// sampler polls the gold and FX upstreams on a fixed interval and writes
// the bucketed snapshot rows. Run it alongside the API server, or with
// -once from cron.
func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("[sampler] no .env file found")
	}
	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("[sampler] failed to connect to database:", err)
	}

	store := database.NewMarketStore(db)
	writer := snapshot.NewWriter(
		quotes.NewGoldClient(cfg.GoldAPIURL, cfg.GoldAPIKey),
		quotes.NewFXClient(cfg.FXAPIURL, cfg.FXAPIKey),
		store,
	)

	if *runOnce {
		takeSnapshot(writer)
		return
	}

	log.Printf("[sampler] started, interval %v (PID %d)", cfg.SampleInterval, os.Getpid())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.SampleInterval)
	defer ticker.Stop()

	takeSnapshot(writer)
	for {
		select {
		case <-sigChan:
			log.Println("[sampler] shutting down")
			return
		case <-ticker.C:
			takeSnapshot(writer)
		}
	}
}

func takeSnapshot(writer *snapshot.Writer) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := writer.Run(ctx, time.Now())
	if err != nil {
		log.Printf("[sampler] snapshot failed: %v", err)
		return
	}
	for _, w := range res.Writes {
		if w.Error != "" {
			log.Printf("[sampler] write %s failed: %s", w.Table, w.Error)
		}
	}
	log.Printf("[sampler] snapshot %s gold=%.2f rate=%.4f (%dms)", res.HourKey, res.Gold.Value, res.Rate.Value, res.ElapsedMS)
}
