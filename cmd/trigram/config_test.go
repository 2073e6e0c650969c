package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/CTAG07/Trigram/pkg/trigram"
)

func TestLoadConfig_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "trigram.json")

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.Corpus.BookID != 11 {
		t.Errorf("default book id = %d, want 11", config.Corpus.BookID)
	}
	if config.Model.UnknownThreshold != trigram.DefaultUnknownThreshold {
		t.Errorf("default threshold = %d, want %d", config.Model.UnknownThreshold, trigram.DefaultUnknownThreshold)
	}
	if _, err = os.Stat(path); err != nil {
		t.Fatalf("default config file was not written: %v", err)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() on written defaults failed: %v", err)
	}
	if reloaded.Server.ApiAddr != config.Server.ApiAddr {
		t.Errorf("reloaded api_addr = %q, want %q", reloaded.Server.ApiAddr, config.Server.ApiAddr)
	}
}

func TestLoadConfig_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trigram.json")
	data := `{"model_config": {"max_length": 12}, "corpus_config": {"book_id": 1342}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.Model.MaxLength != 12 {
		t.Errorf("max_length = %d, want 12", config.Model.MaxLength)
	}
	if config.Model.Generations != 3 {
		t.Errorf("generations = %d, want the default 3", config.Model.Generations)
	}
	if config.Corpus.BookID != 1342 {
		t.Errorf("book_id = %d, want 1342", config.Corpus.BookID)
	}
	if config.Server == nil || config.Server.LogLevel != "info" {
		t.Errorf("server config should keep its defaults, got %+v", config.Server)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "Malformed JSON", data: `{"model_config": `},
		{name: "Null document", data: `null`},
		{name: "Negative threshold", data: `{"model_config": {"unk_threshold": -1}}`, wantErr: trigram.ErrNegativeThreshold},
		{name: "Negative fallback threshold", data: `{"corpus_config": {"fallback_unk_threshold": -2}}`, wantErr: trigram.ErrNegativeThreshold},
		{name: "Negative max length", data: `{"model_config": {"max_length": -5}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "trigram.json")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("LoadConfig() should have failed")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
