package trigram

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestGenerateStream(t *testing.T) {
	m := newTrainedModel(t, "the cat sat on the mat")
	ctx := context.Background()

	t.Run("Successful stream", func(t *testing.T) {
		var words []string
		for token := range m.GenerateStream(ctx) {
			words = append(words, token.String())
		}
		if got := strings.Join(words, " "); got != "the cat sat on the mat" {
			t.Errorf("expected stream to produce %q, got %q", "the cat sat on the mat", got)
		}
	})

	t.Run("Stream honors maxLength and seed", func(t *testing.T) {
		var words []string
		for token := range m.GenerateStream(ctx, WithSeed(Word("the"), Word("cat")), WithMaxLength(2)) {
			words = append(words, token.String())
		}
		if got := strings.Join(words, " "); got != "sat on" {
			t.Errorf("expected %q, got %q", "sat on", got)
		}
	})

	t.Run("Untrained model closes immediately", func(t *testing.T) {
		empty := newTestModel(t)
		for token := range empty.GenerateStream(ctx) {
			t.Errorf("expected no tokens, got %+v", token)
		}
	})
}

func TestGenerateStreamCancellation(t *testing.T) {
	// With temperature 0 the chain cycles a -> b -> c forever.
	m := newTrainedModel(t, strings.Repeat("a b c ", 50))
	const maxLength = 1_000_000

	ctxCancel, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := m.GenerateStream(ctxCancel, WithMaxLength(maxLength), WithTemperature(0))

	// Read one token, then cancel
	<-stream
	cancel()

	received := 1
	timeout := time.After(time.Second)
	for {
		select {
		case _, ok := <-stream:
			if !ok {
				if received >= maxLength {
					t.Errorf("expected cancellation to cut the stream short, got %d tokens", received)
				}
				return
			}
			received++
		case <-timeout:
			t.Fatal("timed out waiting for stream channel to close after cancellation")
		}
	}
}
