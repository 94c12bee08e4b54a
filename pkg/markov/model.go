package markov

import (
	"io"
	"iter"
	"log/slog"
	"slices"
	"strings"
)

// modelOptions Is used by NewModel to configure default options.
type modelOptions struct {
	rng       Source
	logger    *slog.Logger
	tokenizer Tokenizer
}

// ModelOption is a function that configures a Model. It's used as a variadic
// argument to NewModel and NewModelFromReader.
type ModelOption func(*modelOptions)

// WithRand sets the random Source used by the model's generator. Injecting a
// seeded source makes generation reproducible.
func WithRand(src Source) ModelOption {
	return func(o *modelOptions) { o.rng = src }
}

// WithLogger sets the logger used for table builds and generation.
func WithLogger(logger *slog.Logger) ModelOption {
	return func(o *modelOptions) { o.logger = logger }
}

// WithTokenizer sets the tokenizer used to split the corpus and to render
// generated tokens. Default: WhitespaceTokenizer.
func WithTokenizer(tok Tokenizer) ModelOption {
	return func(o *modelOptions) { o.tokenizer = tok }
}

// Model is an order-k Markov model over a fixed corpus. The transition table is
// built on first use and cached for the lifetime of the Model.
type Model struct {
	order     int
	tokens    []string
	table     *Table
	gen       *Generator
	tokenizer Tokenizer
	logger    *slog.Logger
}

// NewModel tokenizes text on whitespace (or with the tokenizer given through
// WithTokenizer) and creates a model of the given order. It fails with
// ErrInvalidParameter if order < 1 and with ErrCorpusTooSmall if the corpus
// has fewer than order+1 tokens.
func NewModel(text string, order int, opts ...ModelOption) (*Model, error) {
	return NewModelFromReader(strings.NewReader(text), order, opts...)
}

// NewModelFromReader is like NewModel but reads the corpus from r.
func NewModelFromReader(r io.Reader, order int, opts ...ModelOption) (*Model, error) {
	options := &modelOptions{
		tokenizer: NewWhitespaceTokenizer(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(options)
	}

	tokens, err := Tokenize(options.tokenizer, r)
	if err != nil {
		return nil, err
	}
	if err = checkParams(len(tokens), order); err != nil {
		return nil, err
	}

	gen := NewGenerator(options.rng)
	gen.SetLogger(options.logger)

	return &Model{
		order:     order,
		tokens:    tokens,
		gen:       gen,
		tokenizer: options.tokenizer,
		logger:    options.logger,
	}, nil
}

// Order returns the order of the model.
func (m *Model) Order() int {
	return m.order
}

// Tokens returns a copy of the tokenized corpus.
func (m *Model) Tokens() []string {
	return slices.Clone(m.tokens)
}

// Build returns the model's transition table, building it on the first call.
// Later calls return the same table.
func (m *Model) Build() *Table {
	if m.table != nil {
		return m.table
	}

	// The corpus was validated by NewModel, so this cannot fail.
	table, err := BuildTable(m.tokens, m.order)
	if err != nil {
		panic(err)
	}
	m.table = table

	stats := table.Stats()
	m.logger.Info("Transition table built",
		slog.Int("order", stats.Order),
		slog.Int("tokens", len(m.tokens)),
		slog.Int("states", stats.States),
		slog.Int("transitions", stats.Transitions),
		slog.Int("vocabulary", stats.Vocabulary),
	)

	return m.table
}

// Generate builds the table if needed and generates a token sequence of at
// least length tokens. See Generator.Generate for the exact semantics.
func (m *Model) Generate(seed Seed, length int) ([]string, error) {
	return m.gen.Generate(m.Build(), seed, length)
}

// Stream builds the table if needed and returns an iterator over a walk.
// See Generator.Stream.
func (m *Model) Stream(seed Seed, length int) (iter.Seq[string], error) {
	return m.gen.Stream(m.Build(), seed, length)
}

// Render joins tokens with the model's tokenizer.
func (m *Model) Render(tokens []string) string {
	return Render(m.tokenizer, tokens)
}
