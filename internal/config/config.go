package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"app"`

	Search struct {
		Keywords []string `yaml:"keywords"`
		// Location drives both the search URL and the comma-separated
		// location filter tokens.
		Location string   `yaml:"location"`
		Exclude  []string `yaml:"exclude"`
	} `yaml:"search"`

	Fetch struct {
		MaxRetries        int    `yaml:"max_retries"`
		RetryDelaySeconds int    `yaml:"retry_delay_seconds"`
		TimeoutSeconds    int    `yaml:"timeout_seconds"`
		ProxyURL          string `yaml:"proxy_url"`
		PauseMinSeconds   int    `yaml:"pause_min_seconds"`
		PauseMaxSeconds   int    `yaml:"pause_max_seconds"`
	} `yaml:"fetch"`

	Telegram struct {
		Token string `yaml:"token"`
		// ChatID is either a numeric chat id or an @channelname target.
		ChatID string `yaml:"chat_id"`
		DryRun bool   `yaml:"dry_run"`
	} `yaml:"telegram"`
}

func Default() Config {
	var cfg Config
	cfg.App.DataDir = "data"
	cfg.App.BaseURL = "https://www.seek.com.au"
	cfg.Search.Keywords = []string{"Python Developer"}
	cfg.Search.Location = "All Australia"
	cfg.Fetch.MaxRetries = 3
	cfg.Fetch.RetryDelaySeconds = 10
	cfg.Fetch.TimeoutSeconds = 30
	cfg.Fetch.PauseMinSeconds = 2
	cfg.Fetch.PauseMaxSeconds = 5
	return cfg
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is fine (env-only deployments); a
// present but invalid file is not.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv lets CI-style deployments configure everything without a file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.App.DataDir = v
	}
	if v := os.Getenv("SEEK_BASE_URL"); v != "" {
		cfg.App.BaseURL = v
	}
	if v := os.Getenv("SEARCH_KEYWORDS"); v != "" {
		cfg.Search.Keywords = splitCSV(v)
	}
	if v := os.Getenv("SEARCH_LOCATION"); v != "" {
		cfg.Search.Location = v
	}
	if v := os.Getenv("EXCLUDE_KEYWORDS"); v != "" {
		cfg.Search.Exclude = splitCSV(v)
	}
	if v := os.Getenv("PROXY_URL"); v != "" {
		cfg.Fetch.ProxyURL = v
	}
	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = strings.TrimSpace(v)
	}
	if v := os.Getenv("DRY_RUN"); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes":
			cfg.Telegram.DryRun = true
		}
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (c Config) StatePath() string   { return filepath.Join(c.App.DataDir, "seen_jobs.json") }
func (c Config) DebugPath() string   { return filepath.Join(c.App.DataDir, "last_page.html") }
func (c Config) LockPath() string    { return filepath.Join(c.App.DataDir, "seekwatch.lock") }
func (c Config) ArchivePath() string { return filepath.Join(c.App.DataDir, "seekwatch.db") }

func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.Fetch.RetryDelaySeconds) * time.Second
}

func (c Config) PauseBounds() (time.Duration, time.Duration) {
	return time.Duration(c.Fetch.PauseMinSeconds) * time.Second,
		time.Duration(c.Fetch.PauseMaxSeconds) * time.Second
}
