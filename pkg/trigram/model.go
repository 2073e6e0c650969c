package trigram

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
)

// DefaultUnknownThreshold replaces every word seen exactly once.
const DefaultUnknownThreshold = 1

// ErrNegativeThreshold is returned by NewModel when the unknown-word threshold is below zero.
var ErrNegativeThreshold = errors.New("trigram: unknown threshold must not be negative")

// ChainToken is a token observed after some context, with the number of times
// it was observed there.
type ChainToken struct {
	Token Token
	Freq  int
}

// followers holds the tokens seen after one context in first-observation order.
type followers struct {
	index map[Token]int
	links []ChainToken
	total int
}

func newFollowers() *followers {
	return &followers{index: make(map[Token]int)}
}

func (f *followers) add(t Token) {
	if i, ok := f.index[t]; ok {
		f.links[i].Freq++
	} else {
		f.index[t] = len(f.links)
		f.links = append(f.links, ChainToken{Token: t, Freq: 1})
	}
	f.total++
}

// Model is an order-3 word model. Its learned state is the trigram count
// table, built by Train and read by Generate.
//
// A Model is not safe for concurrent use: Train must not run alongside any
// other method, and Generate shares a single random source.
type Model struct {
	unkThreshold int
	counts       map[Context]*followers
	// vocab records post-substitution outcomes. It is informational only and
	// diverges from raw frequencies once words are replaced by Unknown.
	vocab   map[Token]int
	trained bool
	rng     *rand.Rand
	logger  *slog.Logger
}

type modelOptions struct {
	unkThreshold int
	source       rand.Source
	logger       *slog.Logger
}

// Option configures a Model at construction.
type Option func(*modelOptions)

// WithUnknownThreshold sets the rarity cutoff: a word survives training as
// itself only if it occurs more than t times. Use 0 to disable substitution.
// Default: 1
func WithUnknownThreshold(t int) Option {
	return func(o *modelOptions) { o.unkThreshold = t }
}

// WithSource sets the entropy source used for sampling. A fixed-seed source
// makes generation reproducible.
func WithSource(src rand.Source) Option {
	return func(o *modelOptions) { o.source = src }
}

// WithLogger sets the logger. By default all logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(o *modelOptions) { o.logger = logger }
}

// NewModel returns an empty, untrained model.
func NewModel(opts ...Option) (*Model, error) {
	options := &modelOptions{
		unkThreshold: DefaultUnknownThreshold,
	}
	for _, opt := range opts {
		opt(options)
	}

	if options.unkThreshold < 0 {
		return nil, ErrNegativeThreshold
	}
	if options.source == nil {
		options.source = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	if options.logger == nil {
		options.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Model{
		unkThreshold: options.unkThreshold,
		counts:       make(map[Context]*followers),
		vocab:        make(map[Token]int),
		rng:          rand.New(options.source),
		logger:       options.logger,
	}, nil
}

// SetLogger replaces the model's logger. A nil logger is ignored.
func (m *Model) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// UnknownThreshold returns the configured rarity cutoff.
func (m *Model) UnknownThreshold() int {
	return m.unkThreshold
}

// Trained reports whether Train has completed at least once, including on empty text.
func (m *Model) Trained() bool {
	return m.trained
}

// Vocabulary returns a copy of the post-substitution vocabulary counts. These
// are for reporting only: a word replaced by Unknown is counted under Unknown,
// not under its own text.
func (m *Model) Vocabulary() map[Token]int {
	out := make(map[Token]int, len(m.vocab))
	for t, n := range m.vocab {
		out[t] = n
	}
	return out
}
