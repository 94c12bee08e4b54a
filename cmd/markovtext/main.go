package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

const usage = `Usage: markovtext [-config path] <command> [flags]

Commands:
  generate   generate text from a corpus (-corpus NAME, -file PATH or stdin)
  stats      print transition table statistics for a corpus
  corpus     manage stored corpora: add NAME FILE | list | rm NAME
  version    print version information
`

// run parses the global flags, sets up logging and dispatches to a command.
// It returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("markovtext", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := fs.String("config", "./markovtext.json", "path to the JSON config file")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	config, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return exitError
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: parseLogLevel(config.LogLevel)})).
		With(slog.String("run_id", uuid.NewString()))

	app := &App{
		config: config,
		logger: logger,
		stdin:  stdin,
		stdout: stdout,
	}

	command, rest := fs.Arg(0), fs.Args()[1:]
	switch command {
	case "generate":
		err = app.Generate(ctx, rest)
	case "stats":
		err = app.Stats(ctx, rest)
	case "corpus":
		err = app.Corpus(ctx, rest)
	case "version":
		fmt.Fprintf(stdout, "markovtext %s (commit %s, built %s)\n", Version, Commit, BuildDate)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", command)
		fs.Usage()
		return exitUsage
	}

	if err != nil {
		if isUsageError(err) {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
		logger.Error("Command failed", slog.String("command", command), slog.Any("error", err))
		return exitError
	}
	return exitOK
}
