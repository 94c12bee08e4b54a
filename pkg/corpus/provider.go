package corpus

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Provider supplies the raw text of a single corpus.
type Provider interface {
	Text(ctx context.Context) (string, error)
}

// FileProvider reads a corpus from a file on disk.
type FileProvider struct {
	Path string
}

// Text returns the whole content of the file.
func (p FileProvider) Text(_ context.Context) (string, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return "", fmt.Errorf("could not read corpus file '%s': %w", p.Path, err)
	}
	return string(data), nil
}

// ReaderProvider reads a corpus from an io.Reader, such as standard input.
// The reader is consumed by the first call to Text.
type ReaderProvider struct {
	R io.Reader
}

// Text reads r until EOF.
func (p ReaderProvider) Text(_ context.Context) (string, error) {
	data, err := io.ReadAll(p.R)
	if err != nil {
		return "", fmt.Errorf("could not read corpus: %w", err)
	}
	return string(data), nil
}

// storeProvider reads a named corpus from a Store.
type storeProvider struct {
	store *Store
	name  string
}

func (p storeProvider) Text(ctx context.Context) (string, error) {
	return p.store.Get(ctx, p.name)
}
