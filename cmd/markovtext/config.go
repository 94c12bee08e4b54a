package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/CTAG07/markovtext/pkg/markov"
	"github.com/natefinch/atomic"
)

// Config holds the settings of the markovtext command. Command line flags
// override the generation settings per invocation.
type Config struct {
	LogLevel     string  `json:"log_level"`
	DatabasePath string  `json:"database_path"`
	Order        int     `json:"order"`
	Length       int     `json:"length"`
	Tokenizer    string  `json:"tokenizer"`
	RandSeed     *uint64 `json:"rand_seed"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		DatabasePath: "./data/markovtext.db",
		Order:        2,
		Length:       50,
		Tokenizer:    "whitespace",
		RandSeed:     nil,
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// Running with defaults still works without the file.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Decoding into the struct keeps defaults for absent fields and for a
	// literal null.
	if err = json.Unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// parseLogLevel maps a config string to a slog level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newTokenizer returns the tokenizer named in the config.
func newTokenizer(name string) (markov.Tokenizer, error) {
	switch strings.ToLower(name) {
	case "", "whitespace":
		return markov.NewWhitespaceTokenizer(), nil
	case "regex":
		return markov.NewRegexTokenizer(), nil
	default:
		return nil, fmt.Errorf("unknown tokenizer %q", name)
	}
}
