// Package config provides configuration loading and validation for msgsift.
package config

import (
	"time"
	"unicode/utf8"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Delimiter is the single-character field separator of the export.
	Delimiter string `yaml:"delimiter"`

	// Columns names the required columns.
	Columns ColumnsConfig `yaml:"columns"`

	// TopWords is how many words the ranking returns.
	TopWords int `yaml:"top_words"`

	// StopWords adjusts the words excluded from the ranking.
	StopWords StopWordsConfig `yaml:"stop_words,omitempty"`

	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// DelimiterRune returns the delimiter as a rune. Only valid after Validate.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// ColumnsConfig names the phone and message columns.
type ColumnsConfig struct {
	Phone   string `yaml:"phone"`
	Message string `yaml:"message"`
}

// StopWordsMode selects how configured stop words combine with the built-in set.
type StopWordsMode string

const (
	// StopWordsExtend adds the configured words to the built-in set (default).
	StopWordsExtend StopWordsMode = "extend"
	// StopWordsReplace uses only the configured words.
	StopWordsReplace StopWordsMode = "replace"
)

// StopWordsConfig lists extra or replacement stop words.
type StopWordsConfig struct {
	Mode  StopWordsMode `yaml:"mode,omitempty"`
	Words []string      `yaml:"words,omitempty"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnResults fires only when the action produced results (default).
	WebhookTriggerOnResults WebhookTrigger = "on_results"
	// WebhookTriggerAlways fires after every run.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_results" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
