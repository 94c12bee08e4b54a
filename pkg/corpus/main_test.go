package corpus

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// setupTestStore creates a SQLite database in a temporary directory and a Store
// on top of it. It uses t.Cleanup to ensure resources are released.
func setupTestStore(t *testing.T) (*sql.DB, *Store) {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, SetupSchema(db))

	s, err := NewStore(db)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	return db, s
}
