package trigram

import (
	"log/slog"
	"math"
	"sort"
	"strings"
)

// DefaultMaxLength is the number of tokens Generate emits at most when no
// WithMaxLength option is given.
const DefaultMaxLength = 50

// generateOptions Is used by the generate functions to configure default options.
type generateOptions struct {
	maxLength   int
	seed        Context
	temperature float64
	topK        int
}

func defaultGenerateOptions() *generateOptions {
	return &generateOptions{
		maxLength:   DefaultMaxLength,
		seed:        StartContext,
		temperature: 1.0,
		topK:        0,
	}
}

// GenerateOption is a function that configures generation parameters. It's used
// as a variadic argument in Generate, GenerateFromString and GenerateStream.
type GenerateOption func(*generateOptions)

// WithMaxLength sets the maximum number of tokens to emit. Generation may stop
// earlier if the End token is drawn. A value of 0 or less produces nothing.
func WithMaxLength(n int) GenerateOption {
	return func(o *generateOptions) { o.maxLength = n }
}

// WithSeed starts generation from the context (w1, w2) instead of (Start, Start).
// The seed tokens themselves are not part of the output.
func WithSeed(w1, w2 Token) GenerateOption {
	return func(o *generateOptions) { o.seed = Context{W1: w1, W2: w2} }
}

// WithTemperature adjusts the randomness of the token selection.
// A value of 1.0 is standard weighted random selection.
// Values > 1.0 flatten the distribution, values < 1.0 sharpen it.
// A value of 0 or less always picks the most frequent token.
func WithTemperature(t float64) GenerateOption {
	return func(o *generateOptions) { o.temperature = t }
}

// WithTopK restricts each draw to the k most frequent followers.
// A value of 0 disables Top-K sampling.
func WithTopK(k int) GenerateOption {
	return func(o *generateOptions) { o.topK = k }
}

// Generate samples a new sequence from the model and returns it joined with
// single spaces. Unknown is emitted as "<unk>"; Start and End never appear.
// It returns "" if the model is untrained or has no counts.
func (m *Model) Generate(opts ...GenerateOption) string {
	options := defaultGenerateOptions()
	for _, opt := range opts {
		opt(options)
	}

	var words []string
	m.generateChain(options, func(t Token) bool {
		words = append(words, t.String())
		return true
	})
	return strings.Join(words, " ")
}

// GenerateFromString normalizes seed and starts generation from its last two
// words. A single word is seeded as (Start, word). An empty seed behaves
// identically to Generate. Seed words are not repeated in the output.
func (m *Model) GenerateFromString(seed string, opts ...GenerateOption) string {
	tokens := Tokenize(Clean(seed))
	switch len(tokens) {
	case 0:
		return m.Generate(opts...)
	case 1:
		opts = append(opts, WithSeed(Start, tokens[0]))
	default:
		opts = append(opts, WithSeed(tokens[len(tokens)-2], tokens[len(tokens)-1]))
	}
	return m.Generate(opts...)
}

// generateChain contains the main generation loop. emit is called for every
// output token and may return false to stop early.
func (m *Model) generateChain(options *generateOptions, emit func(Token) bool) {
	if !m.trained || len(m.counts) == 0 {
		m.logger.Debug("Generation skipped on an empty model",
			slog.Bool("trained", m.trained),
		)
		return
	}

	ctx := options.seed
	generated := 0
	for generated < options.maxLength {
		next := m.sampleNext(ctx, options)
		if next.Kind == KindEnd {
			m.logger.Debug("Generation terminated by End token",
				slog.Int("generated_length", generated),
			)
			return
		}
		if !emit(next) {
			return
		}
		ctx = ctx.Advance(next)
		generated++
	}

	m.logger.Debug("Generation terminated by reaching maxLength",
		slog.Int("max_length", options.maxLength),
		slog.Int("generated_length", generated),
	)
}

// sampleNext draws the next token after ctx. An unseen context returns End
// without touching the random source.
func (m *Model) sampleNext(ctx Context, options *generateOptions) Token {
	f, ok := m.counts[ctx]
	if !ok || f.total == 0 {
		return End
	}
	return m.chooseNextToken(f.links, f.total, options)
}

// chooseNextToken abstracts the token selection logic from the generation loop.
// choices must not be empty.
func (m *Model) chooseNextToken(choices []ChainToken, totalFreq int, options *generateOptions) Token {
	// topK filtering
	if options.topK > 0 && options.topK < len(choices) {
		sorted := make([]ChainToken, len(choices))
		copy(sorted, choices)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Freq > sorted[j].Freq
		})
		choices = sorted[:options.topK]
		totalFreq = 0
		for _, choice := range choices {
			totalFreq += choice.Freq
		}
	}

	if options.temperature <= 0 { // Deterministic
		best := choices[0]
		for _, choice := range choices[1:] {
			if choice.Freq > best.Freq {
				best = choice
			}
		}
		return best.Token
	}

	if options.temperature == 1.0 { // Standard weighted random
		randChoice := m.rng.IntN(totalFreq)
		for _, choice := range choices {
			randChoice -= choice.Freq
			if randChoice < 0 {
				return choice.Token
			}
		}
		return choices[len(choices)-1].Token
	}

	// Temperature-based sampling
	logProbabilities := make([]float64, len(choices))
	maxLog := math.Inf(-1)
	for i, choice := range choices {
		lp := math.Log(float64(choice.Freq)) / options.temperature
		logProbabilities[i] = lp
		if lp > maxLog {
			maxLog = lp
		}
	}
	var totalWeight float64
	weights := make([]float64, len(choices))
	for i, lp := range logProbabilities {
		w := math.Exp(lp - maxLog)
		weights[i] = w
		totalWeight += w
	}
	randChoice := m.rng.Float64() * totalWeight
	for i, choice := range choices {
		randChoice -= weights[i]
		if randChoice < 0 {
			return choice.Token
		}
	}
	return choices[len(choices)-1].Token
}
