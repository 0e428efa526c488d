package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file. An empty path yields the
// defaults with environment overrides applied.
func Load(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and fills in defaults.
func Validate(cfg *Config) error {
	if err := validateDelimiter(cfg.Delimiter); err != nil {
		return fmt.Errorf("delimiter: %w", err)
	}

	if err := validateColumns(&cfg.Columns); err != nil {
		return fmt.Errorf("columns: %w", err)
	}

	if cfg.TopWords < 1 {
		return fmt.Errorf("top_words: must be >= 1, got %d", cfg.TopWords)
	}

	if err := validateStopWords(&cfg.StopWords); err != nil {
		return fmt.Errorf("stop_words: %w", err)
	}

	// Webhooks are optional, but validate if present
	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateDelimiter(d string) error {
	if utf8.RuneCountInString(d) != 1 {
		return fmt.Errorf("must be a single character, got %q", d)
	}

	r, _ := utf8.DecodeRuneInString(d)
	switch r {
	case '"', '\r', '\n', utf8.RuneError:
		return fmt.Errorf("%q cannot be used as a delimiter", d)
	}

	return nil
}

func validateColumns(c *ColumnsConfig) error {
	if c.Phone == "" {
		c.Phone = DefaultPhoneColumn
	}
	if c.Message == "" {
		c.Message = DefaultMessageColumn
	}

	if c.Phone == c.Message {
		return fmt.Errorf("phone and message must be different columns, both are %q", c.Phone)
	}

	return nil
}

func validateStopWords(s *StopWordsConfig) error {
	switch s.Mode {
	case "":
		s.Mode = StopWordsExtend
	case StopWordsExtend, StopWordsReplace:
		// Valid
	default:
		return fmt.Errorf("invalid mode %q (must be extend or replace)", s.Mode)
	}

	for i, w := range s.Words {
		if strings.TrimSpace(w) == "" {
			return fmt.Errorf("words[%d] is empty", i)
		}
	}

	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	if wh.Trigger != "" {
		switch wh.Trigger {
		case WebhookTriggerOnResults, WebhookTriggerAlways, WebhookTriggerNever:
			// Valid
		default:
			return fmt.Errorf("invalid trigger %q (must be on_results, always, or never)", wh.Trigger)
		}
	} else {
		wh.Trigger = WebhookTriggerOnResults
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}

	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}

	return s
}
