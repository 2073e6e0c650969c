package trigram

// ModelStats holds aggregated statistics for a trained model.
type ModelStats struct {
	Contexts       int // The number of distinct two-token contexts.
	TotalChains    int // The number of unique context->next_token links.
	TotalFrequency int // The sum of all link frequencies; the number of trigrams counted.
	StartingTokens int // The number of unique tokens that can follow (Start, Start).
	VocabSize      int // The number of distinct entries in the vocabulary, Unknown included.
	UnknownCount   int // How many times a word was replaced by Unknown.
}

// Stats returns a snapshot of the model's statistics.
func (m *Model) Stats() ModelStats {
	stats := ModelStats{
		Contexts:     len(m.counts),
		VocabSize:    len(m.vocab),
		UnknownCount: m.vocab[Unknown],
	}
	for _, f := range m.counts {
		stats.TotalChains += len(f.links)
		stats.TotalFrequency += f.total
	}
	if f, ok := m.counts[StartContext]; ok {
		stats.StartingTokens = len(f.links)
	}
	return stats
}
