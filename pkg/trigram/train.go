package trigram

import (
	"fmt"
	"io"
	"log/slog"
)

// Train normalizes text, replaces rare words with Unknown, pads the stream and
// counts every trigram in it. Empty or whitespace-only text is a no-op that
// still marks the model trained. Repeated calls add to the existing counts.
func (m *Model) Train(text string) {
	m.train(Tokenize(Clean(text)))
}

// TrainReader reads r to the end and trains on its contents exactly as Train
// would on the equivalent string. Words have no length limit. A read error
// leaves the model untouched.
func (m *Model) TrainReader(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read training text: %w", err)
	}
	m.Train(string(data))
	return nil
}

func (m *Model) train(tokens []Token) {
	tokens = m.substituteUnknown(tokens)
	padded := pad(tokens)
	trigrams := m.count(padded)
	m.trained = true

	m.logger.Info("Training completed",
		slog.Int("tokens_processed", len(tokens)),
		slog.Int("trigrams_counted", trigrams),
		slog.Int("contexts", len(m.counts)),
		slog.Int("unknown_threshold", m.unkThreshold),
	)
}

// substituteUnknown replaces every word whose total frequency in tokens is at
// or below the threshold with Unknown. The decision uses raw counts from a
// first pass; the vocabulary is updated with the outcome of the second pass.
func (m *Model) substituteUnknown(tokens []Token) []Token {
	raw := make(map[Token]int)
	for _, t := range tokens {
		if t.Kind == KindStart || t.Kind == KindEnd {
			continue
		}
		raw[t]++
	}

	out := make([]Token, len(tokens))
	for i, t := range tokens {
		switch {
		case t.Kind == KindStart || t.Kind == KindEnd:
			out[i] = t
		case raw[t] <= m.unkThreshold:
			out[i] = Unknown
			m.vocab[Unknown]++
		default:
			out[i] = t
			m.vocab[t]++
		}
	}
	return out
}

// pad wraps a non-empty stream in two Start tokens and one End token. An empty
// stream stays empty so that no trigrams are counted for it.
func pad(tokens []Token) []Token {
	if len(tokens) == 0 {
		return nil
	}
	padded := make([]Token, 0, len(tokens)+3)
	padded = append(padded, Start, Start)
	padded = append(padded, tokens...)
	return append(padded, End)
}

// count increments the table for every trigram in padded and returns how many
// it saw. It is the only code that mutates the table during training.
func (m *Model) count(padded []Token) int {
	n := 0
	for i := 0; i+2 < len(padded); i++ {
		ctx := Context{W1: padded[i], W2: padded[i+1]}
		f, ok := m.counts[ctx]
		if !ok {
			f = newFollowers()
			m.counts[ctx] = f
		}
		f.add(padded[i+2])
		n++
	}
	return n
}
