package client

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func columns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query(`SELECT name FROM pragma_table_info(?) ORDER BY cid`, table)
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var c string
		require.NoError(t, rows.Scan(&c))
		cols = append(cols, c)
	}
	require.NoError(t, rows.Err())
	return cols
}

func TestInitDatabase_CreatesCredentialsTable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := InitDatabase(ctx, filepath.Join(t.TempDir(), "healthcomp.db"))
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, []string{"name", "value", "updated_at"}, columns(t, db, "credentials"))
	assert.NotEmpty(t, columns(t, db, "goose_db_version"))
}

func TestRunMigrations_SecondRunKeepsRows(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "healthcomp.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	_, err = db.ExecContext(ctx, `INSERT INTO credentials(name, value) VALUES ('refresh', 'R')`)
	require.NoError(t, err)

	require.NoError(t, RunMigrations(ctx, db))

	var v string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE name = 'refresh'`).Scan(&v))
	assert.Equal(t, "R", v)
}

func TestInitDatabase_UnwritablePath(t *testing.T) {
	t.Parallel()

	_, err := InitDatabase(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "healthcomp.db"))
	assert.Error(t, err)
}
