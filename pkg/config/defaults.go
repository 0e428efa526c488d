package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default values for configuration.
const (
	DefaultDelimiter      = ";"
	DefaultPhoneColumn    = "Telefono"
	DefaultMessageColumn  = "Mensaje"
	DefaultTopWords       = 10
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvDelimiter = "MSGSIFT_DELIMITER"
	EnvTopWords  = "MSGSIFT_TOP_WORDS"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Delimiter: DefaultDelimiter,
		Columns: ColumnsConfig{
			Phone:   DefaultPhoneColumn,
			Message: DefaultMessageColumn,
		},
		TopWords: DefaultTopWords,
		StopWords: StopWordsConfig{
			Mode: StopWordsExtend,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() error {
	if d := os.Getenv(EnvDelimiter); d != "" {
		c.Delimiter = d
	}

	if v := os.Getenv(EnvTopWords); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTopWords, err)
		}
		c.TopWords = n
	}

	return nil
}
