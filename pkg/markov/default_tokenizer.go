package markov

import (
	"bufio"
	"io"
	"regexp"
)

// maxTokenSize bounds the size of a single token read by the stream tokenizers.
const maxTokenSize = 1 << 20

// WhitespaceTokenizer splits text on runs of whitespace and joins tokens with a
// single space. It is the tokenizer models use unless told otherwise.
type WhitespaceTokenizer struct{}

// NewWhitespaceTokenizer returns the whitespace tokenizer.
func NewWhitespaceTokenizer() *WhitespaceTokenizer {
	return &WhitespaceTokenizer{}
}

// Separator always returns a single space.
func (t *WhitespaceTokenizer) Separator(_, _ string) string {
	return " "
}

// NewStream returns a word scanner over r.
func (t *WhitespaceTokenizer) NewStream(r io.Reader) StreamTokenizer {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxTokenSize)
	scanner.Split(bufio.ScanWords)
	return &wordStream{scanner: scanner}
}

type wordStream struct {
	scanner *bufio.Scanner
}

func (s *wordStream) Next() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

// RegexTokenizer is a Tokenizer that uses regular expressions to split text
// into words and punctuation. Its behavior can be customized with functional
// options.
type RegexTokenizer struct {
	separator         string
	splitRegex        *regexp.Regexp
	separatorExcRegex *regexp.Regexp
}

// Option Is a function that configures a RegexTokenizer.
type Option func(*RegexTokenizer)

// WithSeparator Sets the string used for joining tokens during rendering.
// Default: " "
func WithSeparator(sep string) Option {
	return func(t *RegexTokenizer) {
		t.separator = sep
	}
}

// WithSplitRegex sets the regex used to find tokens in each input line.
// Default: `[\w']+|[.,!?;]`
func WithSplitRegex(splitRegex string) Option {
	return func(t *RegexTokenizer) {
		t.splitRegex = regexp.MustCompile(splitRegex)
	}
}

// WithSeparatorExcRegex sets the regex deciding which tokens are rendered
// without a separator in front of them.
// Default: `^[.,!?;]`
func WithSeparatorExcRegex(excRegex string) Option {
	return func(t *RegexTokenizer) {
		t.separatorExcRegex = regexp.MustCompile(excRegex)
	}
}

// NewRegexTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more Option functions.
func NewRegexTokenizer(opts ...Option) *RegexTokenizer {
	t := &RegexTokenizer{
		separator: " ",
		// Runs of word characters OR single instances of common punctuation.
		splitRegex:        regexp.MustCompile(`[\w']+|[.,!?;]`),
		separatorExcRegex: regexp.MustCompile(`^[.,!?;]`),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Separator Returns the configured separator, or nothing before punctuation.
func (t *RegexTokenizer) Separator(_, next string) string {
	if t.separatorExcRegex.MatchString(next) {
		return ""
	}
	return t.separator
}

// NewStream Returns the stream processor.
func (t *RegexTokenizer) NewStream(r io.Reader) StreamTokenizer {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxTokenSize)
	return &regexStream{
		scanner:    scanner,
		splitRegex: t.splitRegex,
	}
}

// regexStream reads the input line by line and hands out the regex matches of
// each line one at a time.
type regexStream struct {
	scanner    *bufio.Scanner
	buffer     []string
	splitRegex *regexp.Regexp
}

func (s *regexStream) Next() (string, error) {
	for len(s.buffer) == 0 { // Loop until we have tokens
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		s.buffer = s.splitRegex.FindAllString(s.scanner.Text(), -1)
	}

	word := s.buffer[0]
	s.buffer = s.buffer[1:]
	return word, nil
}
