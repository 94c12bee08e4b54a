package markov

import (
	"fmt"
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// mockSource replays a fixed list of draws and fails the test if the walk
// asks for more draws than scripted or for an out of range value.
type mockSource struct {
	t      testing.TB
	values []int
	index  int
}

func (m *mockSource) IntN(n int) int {
	m.t.Helper()
	if m.index >= len(m.values) {
		m.t.Fatalf("mockSource exhausted, needed value for n=%d", n)
	}
	val := m.values[m.index]
	m.index++
	if val < 0 || val >= n {
		panic(fmt.Sprintf("mockSource value %d out of range for n=%d", val, n))
	}
	return val
}

// zeroSource always selects the first element.
type zeroSource struct{}

func (zeroSource) IntN(int) int { return 0 }

// newTestModel creates a model over text and fails the test on error.
func newTestModel(t *testing.T, text string, order int, src Source) *Model {
	t.Helper()
	m, err := NewModel(text, order, WithRand(src))
	if err != nil {
		t.Fatalf("NewModel(%q, %d) error = %v", text, order, err)
	}
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
