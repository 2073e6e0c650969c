package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

// useTestConfig points the package-level cfg and logger at a fresh default
// config whose data lives under a temporary directory.
func useTestConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	config := &Config{
		Server: DefaultServerConfig(),
		Model:  DefaultModelConfig(),
		Corpus: DefaultCorpusConfig(),
	}
	config.Server.DataDir = filepath.Join(dir, "data")
	config.Server.CorpusDatabasePath = filepath.Join(dir, "data", "corpus.db")
	config.Corpus.FallbackPath = filepath.Join(dir, "example_corpus.txt")
	config.Corpus.DownloadTimeoutSec = 1

	prevCfg, prevLogger := cfg, logger
	cfg = config
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	t.Cleanup(func() {
		cfg, logger = prevCfg, prevLogger
	})
	return config
}

// notFoundServer answers every request with 404, like a missing book.
func notFoundServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)
	return srv
}

// httptestBook serves body at every path.
func httptestBook(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}
