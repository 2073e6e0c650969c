package trigram

// Kind distinguishes ordinary words from the reserved sentinel tokens.
type Kind uint8

const (
	// KindWord is a normalized word taken from training text.
	KindWord Kind = iota
	// KindStart pads the beginning of a training stream.
	KindStart
	// KindEnd pads the end of a training stream and terminates generation.
	KindEnd
	// KindUnknown stands in for words at or below the rarity threshold.
	KindUnknown
)

const (
	// StartTokenText is how the Start sentinel is rendered.
	StartTokenText = "<start>"
	// EndTokenText is how the End sentinel is rendered.
	EndTokenText = "<end>"
	// UnknownTokenText is how the Unknown sentinel is rendered, including in generated output.
	UnknownTokenText = "<unk>"
)

// Token is a single unit of the model's stream. Sentinels carry no text, so a
// word that happens to read "<unk>" is still a word and never collides with
// the Unknown sentinel.
type Token struct {
	Kind Kind
	Text string
}

var (
	// Start is the sentinel used twice at the head of every padded stream.
	Start = Token{Kind: KindStart}
	// End is the sentinel appended to every padded stream.
	End = Token{Kind: KindEnd}
	// Unknown replaces rare words during training.
	Unknown = Token{Kind: KindUnknown}
)

// Word returns a word token for text. The text is used as-is; callers that
// want normalization should go through Tokenize.
func Word(text string) Token {
	return Token{Kind: KindWord, Text: text}
}

// IsSentinel reports whether t is one of Start, End or Unknown.
func (t Token) IsSentinel() bool {
	return t.Kind != KindWord
}

// String renders the token the way it appears in generated text.
func (t Token) String() string {
	switch t.Kind {
	case KindStart:
		return StartTokenText
	case KindEnd:
		return EndTokenText
	case KindUnknown:
		return UnknownTokenText
	default:
		return t.Text
	}
}

// Context is the two preceding tokens used to predict the next one.
type Context struct {
	W1 Token
	W2 Token
}

// StartContext is the context every generation begins from unless seeded.
var StartContext = Context{W1: Start, W2: Start}

// Advance slides the window forward by one token.
func (c Context) Advance(next Token) Context {
	return Context{W1: c.W2, W2: next}
}
