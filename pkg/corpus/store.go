package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// ErrCorpusNotFound is returned when a named corpus does not exist in the store.
var ErrCorpusNotFound = errors.New("corpus: not found")

// Info holds the metadata of a stored corpus.
type Info struct {
	Id        int
	Name      string
	Tokens    int // The number of whitespace separated tokens
	Bytes     int // The size of the text in bytes
	UpdatedAt time.Time
}

// SetupSchema initializes the corpus table in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const schemaCorpora = `
CREATE TABLE IF NOT EXISTS corpora (
    corpus_id INTEGER PRIMARY KEY,
    corpus_name TEXT NOT NULL UNIQUE,
    corpus_text TEXT NOT NULL,
    token_count INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
`

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	// If the transaction succeeds, tx.Commit() will be called first, and the rollback will do nothing.
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaCorpora); err != nil {
		return fmt.Errorf("could not create schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Store keeps named corpora in a SQLite database. It holds prepared SQL
// statements for every operation.
type Store struct {
	db         *sql.DB
	stmtUpsert *sql.Stmt
	stmtGet    *sql.Stmt
	stmtList   *sql.Stmt
	stmtRemove *sql.Stmt
	logger     *slog.Logger
}

// NewStore creates and returns a new Store. SetupSchema must have been called
// on db first.
func NewStore(db *sql.DB) (s *Store, err error) {
	var prepared []*sql.Stmt
	prepare := func(query string) *sql.Stmt {
		if err != nil {
			return nil
		}
		var stmt *sql.Stmt
		if stmt, err = db.Prepare(query); err != nil {
			return nil
		}
		prepared = append(prepared, stmt)
		return stmt
	}
	// Statements prepared before a failure are released again.
	defer func() {
		if err != nil {
			for _, stmt := range prepared {
				_ = stmt.Close()
			}
		}
	}()

	stmtGet := prepare(`SELECT corpus_text FROM corpora WHERE corpus_name = ?;`)
	stmtList := prepare(`SELECT corpus_id, corpus_name, token_count, length(CAST(corpus_text AS BLOB)), updated_at FROM corpora ORDER BY corpus_name;`)
	stmtUpsert := prepare(`INSERT INTO corpora (corpus_name, corpus_text, token_count, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(corpus_name) DO UPDATE SET corpus_text=excluded.corpus_text, token_count=excluded.token_count, updated_at=excluded.updated_at
RETURNING corpus_id;`)
	stmtRemove := prepare(`DELETE FROM corpora WHERE corpus_name = ?;`)
	if err != nil {
		return nil, fmt.Errorf("could not prepare corpus statements: %w", err)
	}

	return &Store{
		db:         db,
		stmtUpsert: stmtUpsert,
		stmtGet:    stmtGet,
		stmtList:   stmtList,
		stmtRemove: stmtRemove,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared SQL statements held by the Store.
func (s *Store) Close() {
	_ = s.stmtUpsert.Close()
	_ = s.stmtGet.Close()
	_ = s.stmtList.Close()
	_ = s.stmtRemove.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Add stores text under name, replacing any corpus already stored with that
// name, and returns its metadata.
func (s *Store) Add(ctx context.Context, name, text string) (Info, error) {
	if name == "" {
		return Info{}, errors.New("corpus name must not be empty")
	}

	info := Info{
		Name:      name,
		Tokens:    len(strings.Fields(text)),
		Bytes:     len(text),
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
	err := s.stmtUpsert.QueryRowContext(ctx, name, text, info.Tokens, info.UpdatedAt.Unix()).Scan(&info.Id)
	if err != nil {
		return Info{}, fmt.Errorf("could not store corpus '%s': %w", name, err)
	}

	s.logger.InfoContext(ctx, "Corpus stored",
		slog.String("corpus_name", name),
		slog.Int("corpus_id", info.Id),
		slog.Int("tokens", info.Tokens),
	)
	return info, nil
}

// Get returns the text of the named corpus, or ErrCorpusNotFound.
func (s *Store) Get(ctx context.Context, name string) (string, error) {
	var text string
	err := s.stmtGet.QueryRowContext(ctx, name).Scan(&text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: '%s'", ErrCorpusNotFound, name)
		}
		return "", fmt.Errorf("could not load corpus '%s': %w", name, err)
	}
	return text, nil
}

// List returns the metadata of every stored corpus, ordered by name.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	infos := make([]Info, 0)
	for rows.Next() {
		var info Info
		var updated int64
		if err = rows.Scan(&info.Id, &info.Name, &info.Tokens, &info.Bytes, &updated); err != nil {
			return nil, err
		}
		info.UpdatedAt = time.Unix(updated, 0).UTC()
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}

// Remove deletes the named corpus, or returns ErrCorpusNotFound.
func (s *Store) Remove(ctx context.Context, name string) error {
	res, err := s.stmtRemove.ExecContext(ctx, name)
	if err != nil {
		return fmt.Errorf("could not remove corpus '%s': %w", name, err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("%w: '%s'", ErrCorpusNotFound, name)
	}

	s.logger.InfoContext(ctx, "Corpus removed", slog.String("corpus_name", name))
	return nil
}

// Provider returns a Provider reading the named corpus from the store.
func (s *Store) Provider(name string) Provider {
	return storeProvider{store: s, name: name}
}
