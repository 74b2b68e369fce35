package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"seekwatch/internal/config"
	"seekwatch/internal/monitor"
	"seekwatch/internal/notify"
	"seekwatch/internal/scrape/seek"
	"seekwatch/internal/scrape/util"
	"seekwatch/internal/secrets"
	"seekwatch/internal/state"
	"seekwatch/internal/store"
)

// One invocation is one monitoring run; an external scheduler (CI cron)
// owns the cadence.
func main() {
	if err := godotenv.Load(); err == nil {
		log.Printf("[main] loaded environment from .env")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", cfgPath, err)
	}

	// env and file first, OS keychain as a last resort
	cfg.Telegram.Token = secrets.ResolveTelegramToken(cfg.Telegram.Token, cfg.Telegram.DryRun, nil)

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("%v", err)
	}
	if cfg.Telegram.DryRun {
		log.Printf("[main] dry run enabled: telegram notifications will be skipped")
	}

	if err := os.MkdirAll(cfg.App.DataDir, 0o755); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	lock, held, err := state.AcquireRunLock(cfg.LockPath())
	if err != nil {
		log.Fatalf("%v", err)
	}
	if !held {
		log.Printf("[main] another run holds %s; exiting", cfg.LockPath())
		return
	}
	defer lock.Release()

	archive, err := store.Open(cfg.ArchivePath())
	if err != nil {
		log.Fatalf("open archive: %v", err)
	}
	defer archive.Close()

	client, err := seek.NewClient(seek.ClientConfig{
		Origin:     cfg.App.BaseURL,
		ProxyURL:   cfg.Fetch.ProxyURL,
		Timeout:    cfg.FetchTimeout(),
		MaxRetries: cfg.Fetch.MaxRetries,
		RetryDelay: cfg.RetryDelay(),
		DebugPath:  cfg.DebugPath(),
	}, util.NewRequestPacer(2*time.Second))
	if err != nil {
		log.Fatalf("fetch client: %v", err)
	}

	notifier, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, cfg.Telegram.DryRun)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}

	runner := &monitor.Runner{
		Cfg:      cfg,
		Fetcher:  client,
		Notifier: notifier,
		Archive:  archive,
	}

	log.Printf("[main] starting seek monitor")
	if err := runner.RunOnce(context.Background()); err != nil {
		// per-run failures are log-only; exit status reflects startup checks
		log.Printf("[main] run failed: %v", err)
	}
}
