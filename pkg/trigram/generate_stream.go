package trigram

import (
	"context"
)

// GenerateStream samples a new sequence and delivers it token by token on the
// returned channel, which is closed once generation ends or ctx is cancelled.
// The tokens are the ones Generate would have joined into its result.
//
// The model must not be trained or used for other generation while the
// stream is being drained.
func (m *Model) GenerateStream(ctx context.Context, opts ...GenerateOption) <-chan Token {
	options := defaultGenerateOptions()
	for _, opt := range opts {
		opt(options)
	}

	tokenChan := make(chan Token)

	go func() {
		defer close(tokenChan)
		m.generateChain(options, func(t Token) bool {
			select {
			case <-ctx.Done():
				m.logger.DebugContext(ctx, "Generation stream cancelled by context")
				return false
			case tokenChan <- t:
				return true
			}
		})
	}()

	return tokenChan
}
