package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/CTAG07/Trigram/pkg/trigram"
)

// maxAPILength caps max_length on /api/generate.
const maxAPILength = 1000

// GenerateResponse is returned by /api/generate.
type GenerateResponse struct {
	Text      string `json:"text"`
	Seed      string `json:"seed,omitempty"`
	MaxLength int    `json:"max_length"`
}

// StatsResponse is returned by /api/stats.
type StatsResponse struct {
	Source           string `json:"source"`
	UnknownThreshold int    `json:"unk_threshold"`
	Contexts         int    `json:"contexts"`
	TotalChains      int    `json:"total_chains"`
	TotalFrequency   int    `json:"total_frequency"`
	StartingTokens   int    `json:"starting_tokens"`
	VocabSize        int    `json:"vocab_size"`
	UnknownCount     int    `json:"unknown_count"`
}

// ModelAPI serves a trained model over HTTP. Generation shares one random
// source, so every handler takes mu.
type ModelAPI struct {
	mu       sync.Mutex
	model    *trigram.Model
	source   string
	defaults *ModelConfig
	logger   *slog.Logger
}

// NewModelAPI wraps a trained model; defaults fill in missing query parameters.
func NewModelAPI(model *trigram.Model, source string, defaults *ModelConfig, logger *slog.Logger) *ModelAPI {
	return &ModelAPI{
		model:    model,
		source:   source,
		defaults: defaults,
		logger:   logger,
	}
}

// RegisterRoutes sets up the routing for all /api endpoints.
func (m *ModelAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/generate", m.handleGenerate)
	mux.HandleFunc("/api/stats", m.handleStats)
	mux.HandleFunc("/api/version", m.handleVersion)
}

func (m *ModelAPI) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	query := r.URL.Query()
	maxLength := m.defaults.MaxLength
	if v := query.Get("max_length"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxAPILength {
			respondWithError(w, http.StatusBadRequest, "max_length must be an integer between 0 and "+strconv.Itoa(maxAPILength))
			return
		}
		maxLength = n
	}

	temperature := m.defaults.Temperature
	if v := query.Get("temperature"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid temperature")
			return
		}
		temperature = t
	}

	topK := m.defaults.TopK
	if v := query.Get("top_k"); v != "" {
		k, err := strconv.Atoi(v)
		if err != nil || k < 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid top_k")
			return
		}
		topK = k
	}

	seed := query.Get("seed")
	opts := []trigram.GenerateOption{
		trigram.WithMaxLength(maxLength),
		trigram.WithTemperature(temperature),
		trigram.WithTopK(topK),
	}

	m.mu.Lock()
	text := m.model.GenerateFromString(seed, opts...)
	m.mu.Unlock()

	m.logger.Debug("Generated text over API", slog.Int("max_length", maxLength), slog.String("seed", seed))
	respondWithJSON(w, http.StatusOK, GenerateResponse{Text: text, Seed: seed, MaxLength: maxLength})
}

func (m *ModelAPI) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	m.mu.Lock()
	stats := m.model.Stats()
	threshold := m.model.UnknownThreshold()
	m.mu.Unlock()

	respondWithJSON(w, http.StatusOK, StatsResponse{
		Source:           m.source,
		UnknownThreshold: threshold,
		Contexts:         stats.Contexts,
		TotalChains:      stats.TotalChains,
		TotalFrequency:   stats.TotalFrequency,
		StartingTokens:   stats.StartingTokens,
		VocabSize:        stats.VocabSize,
		UnknownCount:     stats.UnknownCount,
	})
}

func (m *ModelAPI) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{
		"version":    Version,
		"commit":     Commit,
		"build_date": BuildDate,
	})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
			logger.Error("Failed to encode JSON response", slog.Any("error", err))
		}
	}
}
