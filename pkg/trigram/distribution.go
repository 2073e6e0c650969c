package trigram

// Probability is one entry of a next-token distribution.
type Probability struct {
	Token Token
	P     float64
}

// GetNextTokens returns every token observed after ctx, in the order they were
// first observed, along with the sum of their frequencies. An unseen context
// returns a nil slice and a total of 0. The returned slice is a copy.
func (m *Model) GetNextTokens(ctx Context) ([]ChainToken, int) {
	f, ok := m.counts[ctx]
	if !ok || f.total == 0 {
		return nil, 0
	}
	links := make([]ChainToken, len(f.links))
	copy(links, f.links)
	return links, f.total
}

// Distribution returns the conditional distribution of the next token given
// ctx, where each probability is the token's count divided by the context's
// total. Unseen contexts yield an empty distribution; there is no smoothing.
func (m *Model) Distribution(ctx Context) []Probability {
	f, ok := m.counts[ctx]
	if !ok || f.total == 0 {
		return nil
	}
	total := float64(f.total)
	dist := make([]Probability, 0, len(f.links))
	for _, link := range f.links {
		dist = append(dist, Probability{Token: link.Token, P: float64(link.Freq) / total})
	}
	return dist
}
