package markov

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Tokenizer is an interface that defines the contract for splitting input text
// into tokens and joining generated tokens back into text. This keeps the
// model independent of the specific tokenization strategy.
type Tokenizer interface {
	// NewStream returns a stateful StreamTokenizer for processing an io.Reader.
	NewStream(io.Reader) StreamTokenizer
	// Separator returns the string that should be placed between the prev
	// and next tokens when rendering a generated sequence.
	Separator(prev, next string) string
}

// StreamTokenizer is an interface for a stateful tokenizer that processes a
// stream of data, returning one token at a time.
type StreamTokenizer interface {
	// Next returns the next token from the stream. It returns io.EOF as the
	// error when the stream is fully consumed.
	Next() (string, error)
}

// Tokenize drains r through the tokenizer and returns every token in order.
func Tokenize(tok Tokenizer, r io.Reader) ([]string, error) {
	stream := tok.NewStream(r)
	var tokens []string
	for {
		token, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return tokens, nil
			}
			return nil, fmt.Errorf("tokenizer error: %w", err)
		}
		tokens = append(tokens, token)
	}
}

// Render joins tokens into a single string using the tokenizer's separators.
func Render(tok Tokenizer, tokens []string) string {
	var builder strings.Builder
	for i, token := range tokens {
		if i > 0 {
			builder.WriteString(tok.Separator(tokens[i-1], token))
		}
		builder.WriteString(token)
	}
	return builder.String()
}
