package trigram

import (
	"go/build"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// countingSource wraps a deterministic source and records how many values
// were drawn from it.
type countingSource struct {
	src   rand.Source
	calls int
}

func newCountingSource() *countingSource {
	return &countingSource{src: rand.NewPCG(1, 2)}
}

func (c *countingSource) Uint64() uint64 {
	c.calls++
	return c.src.Uint64()
}

// newTestModel creates a model with a fixed-seed source.
func newTestModel(t *testing.T, opts ...Option) *Model {
	t.Helper()
	opts = append([]Option{WithSource(rand.NewPCG(1, 2))}, opts...)
	m, err := NewModel(opts...)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

// newTrainedModel is a convenience helper that also trains the model on text
// with unknown-word substitution disabled.
func newTrainedModel(t *testing.T, text string) *Model {
	t.Helper()
	m := newTestModel(t, WithUnknownThreshold(0))
	m.Train(text)
	return m
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
