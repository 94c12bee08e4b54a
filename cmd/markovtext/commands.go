package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/CTAG07/markovtext/pkg/corpus"
	"github.com/CTAG07/markovtext/pkg/markov"
	"github.com/dustin/go-humanize"
)

// App holds the dependencies shared by all commands.
type App struct {
	config *Config
	logger *slog.Logger
	stdin  io.Reader
	stdout io.Writer
}

// usageError marks errors caused by bad command line input.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func isUsageError(err error) bool {
	var ue *usageError
	return errors.As(err, &ue)
}

// newFlagSet creates a subcommand flag set that reports problems as usage errors.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return usagef("%s: %v", fs.Name(), err)
	}
	return nil
}

// openStore opens the corpus database named in the config. The returned
// function releases the store and the database.
func (a *App) openStore() (*corpus.Store, func(), error) {
	path := a.config.DatabasePath
	dir := filepath.Dir(strings.SplitN(path, "?", 2)[0])
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := initDB(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err = corpus.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to setup corpus schema: %w", err)
	}
	store, err := corpus.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to create corpus store: %w", err)
	}
	store.SetLogger(a.logger)

	return store, func() {
		store.Close()
		if err := db.Close(); err != nil {
			a.logger.Error("Failed to close database", slog.Any("error", err))
		}
	}, nil
}

// modelFlags are the flags shared by the commands that build a model.
type modelFlags struct {
	corpusName string
	file       string
	order      int
}

func (a *App) registerModelFlags(fs *flag.FlagSet) *modelFlags {
	mf := &modelFlags{}
	fs.StringVar(&mf.corpusName, "corpus", "", "name of a stored corpus")
	fs.StringVar(&mf.file, "file", "", "path to a corpus file (default: standard input)")
	fs.IntVar(&mf.order, "order", a.config.Order, "number of tokens in each state")
	return mf
}

// loadModel reads the selected corpus and creates a model over it.
func (a *App) loadModel(ctx context.Context, mf *modelFlags, opts ...markov.ModelOption) (*markov.Model, error) {
	if mf.corpusName != "" && mf.file != "" {
		return nil, usagef("-corpus and -file are mutually exclusive")
	}

	var provider corpus.Provider
	source := "stdin"
	switch {
	case mf.corpusName != "":
		store, closeStore, err := a.openStore()
		if err != nil {
			return nil, err
		}
		defer closeStore()
		provider = store.Provider(mf.corpusName)
		source = mf.corpusName
	case mf.file != "":
		provider = corpus.FileProvider{Path: mf.file}
		source = mf.file
	default:
		provider = corpus.ReaderProvider{R: a.stdin}
	}

	text, err := provider.Text(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Corpus loaded",
		slog.String("source", source),
		slog.String("size", humanize.Bytes(uint64(len(text)))),
	)

	tokenizer, err := newTokenizer(a.config.Tokenizer)
	if err != nil {
		return nil, err
	}
	opts = append(opts, markov.WithTokenizer(tokenizer), markov.WithLogger(a.logger))
	return markov.NewModel(text, mf.order, opts...)
}

// Generate builds a model and writes one generated text to stdout.
func (a *App) Generate(ctx context.Context, args []string) error {
	fs := newFlagSet("generate")
	mf := a.registerModelFlags(fs)
	length := fs.Int("length", a.config.Length, "minimum number of tokens to generate")
	seed := fs.String("seed", "", "whitespace separated seed tokens (default: random state)")
	randSeed := fs.Uint64("rand-seed", 0, "seed for the random source (default: config or random)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	randSeedSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "rand-seed" {
			randSeedSet = true
		}
	})

	var src markov.Source
	switch {
	case randSeedSet:
		src = markov.NewSource(*randSeed)
	case a.config.RandSeed != nil:
		src = markov.NewSource(*a.config.RandSeed)
	}

	model, err := a.loadModel(ctx, mf, markov.WithRand(src))
	if err != nil {
		return err
	}

	var start markov.Seed
	if *seed != "" {
		start = markov.DelimitedText(*seed)
	}
	tokens, err := model.Generate(start, *length)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.stdout, model.Render(tokens))
	return err
}

// Stats builds a model and prints its transition table statistics.
func (a *App) Stats(ctx context.Context, args []string) error {
	fs := newFlagSet("stats")
	mf := a.registerModelFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	model, err := a.loadModel(ctx, mf)
	if err != nil {
		return err
	}
	stats := model.Build().Stats()

	w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "order\t%d\n", stats.Order)
	fmt.Fprintf(w, "tokens\t%s\n", humanize.Comma(int64(len(model.Tokens()))))
	fmt.Fprintf(w, "vocabulary\t%s\n", humanize.Comma(int64(stats.Vocabulary)))
	fmt.Fprintf(w, "states\t%s\n", humanize.Comma(int64(stats.States)))
	fmt.Fprintf(w, "transitions\t%s\n", humanize.Comma(int64(stats.Transitions)))
	fmt.Fprintf(w, "max_branching\t%d\n", stats.MaxBranching)
	return w.Flush()
}

// Corpus manages the corpora kept in the database.
func (a *App) Corpus(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usagef("corpus: expected add, list or rm")
	}

	store, closeStore, err := a.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	switch sub, rest := args[0], args[1:]; sub {
	case "add":
		if len(rest) != 2 {
			return usagef("corpus add: expected NAME FILE")
		}
		var provider corpus.Provider = corpus.FileProvider{Path: rest[1]}
		if rest[1] == "-" {
			provider = corpus.ReaderProvider{R: a.stdin}
		}
		text, err := provider.Text(ctx)
		if err != nil {
			return err
		}
		info, err := store.Add(ctx, rest[0], text)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(a.stdout, "stored %s: %s tokens, %s\n",
			info.Name, humanize.Comma(int64(info.Tokens)), humanize.Bytes(uint64(info.Bytes)))
		return err

	case "list":
		infos, err := store.List(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTOKENS\tSIZE\tUPDATED")
		for _, info := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				info.Name,
				humanize.Comma(int64(info.Tokens)),
				humanize.Bytes(uint64(info.Bytes)),
				humanize.Time(info.UpdatedAt),
			)
		}
		return w.Flush()

	case "rm":
		if len(rest) != 1 {
			return usagef("corpus rm: expected NAME")
		}
		return store.Remove(ctx, rest[0])

	default:
		return usagef("corpus: unknown subcommand %q", sub)
	}
}
