package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/fwojciec/arenadl/sqlite"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/require"
)

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		// Verify tables exist by querying them
		ctx := context.Background()

		var runCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&runCount)
		require.NoError(t, err)

		var assetCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assets").Scan(&assetCount)
		require.NoError(t, err)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		var journalMode string
		err = db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})

	t.Run("reopening keeps existing data", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/history.db"
		ctx := context.Background()

		db := sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		_, err := db.ExecContext(ctx, "INSERT INTO runs (id, channel, started_at) VALUES ('r1', 'cats', '2026-01-01T00:00:00Z')")
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db = sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		defer db.Close()

		var n int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&n))
		require.Equal(t, 1, n)
	})

	t.Run("adds the run error column to older databases", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/old.db"
		ctx := context.Background()

		raw, err := sql.Open("sqlite3", dbPath)
		require.NoError(t, err)
		_, err = raw.Exec(`CREATE TABLE runs (
			id TEXT PRIMARY KEY,
			channel TEXT NOT NULL,
			output_dir TEXT NOT NULL DEFAULT '',
			discovered INTEGER NOT NULL DEFAULT 0,
			successful INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL DEFAULT ''
		)`)
		require.NoError(t, err)
		_, err = raw.Exec("INSERT INTO runs (id, channel, started_at) VALUES ('r1', 'cats', '2026-01-01T00:00:00Z')")
		require.NoError(t, err)
		require.NoError(t, raw.Close())

		db := sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		defer db.Close()

		var msg string
		require.NoError(t, db.QueryRowContext(ctx, "SELECT error FROM runs WHERE id = 'r1'").Scan(&msg))
		require.Empty(t, msg)
	})
}
