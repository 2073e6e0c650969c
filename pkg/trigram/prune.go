package trigram

import (
	"log/slog"
)

// Prune removes every context->token link whose frequency is less than or
// equal to minFreq, and drops contexts that are left with no followers. It
// returns the number of links removed. The vocabulary is left untouched.
//
// This is useful for shrinking a model trained on a large corpus by removing
// rare, and often noisy, transitions.
func (m *Model) Prune(minFreq int) int {
	removed := 0
	for ctx, f := range m.counts {
		kept := f.links[:0]
		total := 0
		for _, link := range f.links {
			if link.Freq <= minFreq {
				removed++
				continue
			}
			kept = append(kept, link)
			total += link.Freq
		}
		if len(kept) == 0 {
			delete(m.counts, ctx)
			continue
		}
		f.links = kept
		f.total = total
		f.index = make(map[Token]int, len(kept))
		for i, link := range kept {
			f.index[link.Token] = i
		}
	}

	m.logger.Info("Model pruned",
		slog.Int("min_frequency", minFreq),
		slog.Int("chains_removed", removed),
		slog.Int("contexts_remaining", len(m.counts)),
	)
	return removed
}
