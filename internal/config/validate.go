package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Validate collects every problem at once. Missing Telegram credentials
// outside dry-run mode is a startup-fatal misconfiguration.
func Validate(cfg Config) error {
	var errs []string

	if strings.TrimSpace(cfg.App.DataDir) == "" {
		errs = append(errs, "app.data_dir must not be empty")
	}
	if u, err := url.Parse(cfg.App.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("app.base_url %q is not an absolute URL", cfg.App.BaseURL))
	}

	hasKeyword := false
	for _, k := range cfg.Search.Keywords {
		if strings.TrimSpace(k) != "" {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		errs = append(errs, "search.keywords must contain at least one keyword")
	}

	if cfg.Fetch.MaxRetries <= 0 {
		errs = append(errs, "fetch.max_retries must be > 0")
	}
	if cfg.Fetch.PauseMaxSeconds < cfg.Fetch.PauseMinSeconds {
		errs = append(errs, "fetch.pause_max_seconds must be >= fetch.pause_min_seconds")
	}
	if cfg.Fetch.ProxyURL != "" {
		if _, err := url.Parse(cfg.Fetch.ProxyURL); err != nil {
			errs = append(errs, fmt.Sprintf("fetch.proxy_url: %v", err))
		}
	}

	if !cfg.Telegram.DryRun {
		if strings.TrimSpace(cfg.Telegram.Token) == "" {
			errs = append(errs, "telegram.token is required unless dry_run is set")
		}
		if strings.TrimSpace(cfg.Telegram.ChatID) == "" {
			errs = append(errs, "telegram.chat_id is required unless dry_run is set")
		}
	}
	if id := strings.TrimSpace(cfg.Telegram.ChatID); id != "" && !strings.HasPrefix(id, "@") {
		if _, err := strconv.ParseInt(id, 10, 64); err != nil {
			errs = append(errs, fmt.Sprintf("telegram.chat_id %q must be numeric or an @channelname", id))
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}
