package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/CTAG07/Trigram/pkg/corpus"
	"github.com/CTAG07/Trigram/pkg/trigram"
	"github.com/natefinch/atomic"
)

// ServerConfig holds process-wide settings: where data lives, how much to log
// and where the API listens.
type ServerConfig struct {
	ApiAddr            string `json:"api_addr"`
	LogLevel           string `json:"log_level"`
	DataDir            string `json:"data_dir"`
	CorpusDatabasePath string `json:"corpus_database_path"`
}

// ModelConfig holds training and generation defaults.
type ModelConfig struct {
	UnknownThreshold int     `json:"unk_threshold"`
	MaxLength        int     `json:"max_length"`
	Generations      int     `json:"generations"`
	Temperature      float64 `json:"temperature"`
	TopK             int     `json:"top_k"`
}

// CorpusConfig holds settings for acquiring training text.
type CorpusConfig struct {
	BookID                   int      `json:"book_id"`
	URLFormats               []string `json:"url_formats"`
	DownloadTimeoutSec       int      `json:"download_timeout_sec"`
	FallbackPath             string   `json:"fallback_path"`
	FallbackUnknownThreshold int      `json:"fallback_unk_threshold"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	Server *ServerConfig `json:"server_config"`
	Model  *ModelConfig  `json:"model_config"`
	Corpus *CorpusConfig `json:"corpus_config"`
}

// DefaultServerConfig creates a server configuration with default values.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ApiAddr:            ":7280",
		LogLevel:           "info",
		DataDir:            "./data",
		CorpusDatabasePath: "./data/trigram_corpus.db",
	}
}

// DefaultModelConfig suits a full-length book: words seen once become <unk>.
func DefaultModelConfig() *ModelConfig {
	return &ModelConfig{
		UnknownThreshold: trigram.DefaultUnknownThreshold,
		MaxLength:        trigram.DefaultMaxLength,
		Generations:      3,
		Temperature:      1.0,
		TopK:             0,
	}
}

// DefaultCorpusConfig trains on Alice's Adventures in Wonderland, falling back
// to a small local corpus with substitution disabled.
func DefaultCorpusConfig() *CorpusConfig {
	return &CorpusConfig{
		BookID:                   11,
		URLFormats:               append([]string(nil), corpus.DefaultURLFormats...),
		DownloadTimeoutSec:       int(corpus.DefaultDownloadTimeout.Seconds()),
		FallbackPath:             "./data/example_corpus.txt",
		FallbackUnknownThreshold: 0,
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := &Config{
		Server: DefaultServerConfig(),
		Model:  DefaultModelConfig(),
		Corpus: DefaultCorpusConfig(),
	}

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if dir := filepath.Dir(path); dir != "." {
				_ = os.MkdirAll(dir, 0o755)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The defaults are still usable without a file on disk.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config == nil {
		return nil, fmt.Errorf("invalid config file %s: empty", path)
	}
	if err = config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.Server == nil {
		c.Server = DefaultServerConfig()
	}
	if c.Model == nil {
		c.Model = DefaultModelConfig()
	}
	if c.Corpus == nil {
		c.Corpus = DefaultCorpusConfig()
	}
	if c.Model.UnknownThreshold < 0 || c.Corpus.FallbackUnknownThreshold < 0 {
		return trigram.ErrNegativeThreshold
	}
	if c.Model.MaxLength < 0 {
		return fmt.Errorf("max_length must not be negative, got %d", c.Model.MaxLength)
	}
	return nil
}
