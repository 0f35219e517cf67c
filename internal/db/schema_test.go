package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/strata/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_CreatesSchema(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"items", "item_history", "branches", "import_profiles", "app_params", "_schema_version"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}

	v, err := db.RecordedVersion(database)
	require.NoError(t, err)
	assert.Equal(t, db.SchemaVersion, v)
}

func TestOpenDB_SeedsMainBranch(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	var count int
	require.NoError(t, database.QueryRow(
		`SELECT COUNT(*) FROM branches WHERE branch_id = 'main'`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestOpenDB_Reopen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	first, err := db.OpenDB(path)
	require.NoError(t, err)
	_, err = first.Exec(`INSERT INTO app_params (key, value) VALUES ('k', 'v')`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := db.OpenDB(path)
	require.NoError(t, err)
	defer second.Close()

	var val string
	require.NoError(t, second.QueryRow(
		`SELECT value FROM app_params WHERE key = 'k'`).Scan(&val))
	assert.Equal(t, "v", val)

	// Exactly one version row survives the reopen.
	var versions int
	require.NoError(t, second.QueryRow(`SELECT COUNT(*) FROM _schema_version`).Scan(&versions))
	assert.Equal(t, 1, versions)
}

func TestOpenDB_SchemaVersionMismatchIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	first, err := db.OpenDB(path)
	require.NoError(t, err)
	_, err = first.Exec(`UPDATE _schema_version SET version = ?`, db.SchemaVersion+1)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	_, err = db.OpenDB(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrSchemaVersion)
}

func TestExportImage_RoundTrip(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO app_params (key, value) VALUES ('exported', 'yes')`)
	require.NoError(t, err)

	image, err := db.ExportImage(database)
	require.NoError(t, err)
	require.NotEmpty(t, image)

	// A restored image is just the file opened again.
	path := filepath.Join(t.TempDir(), "restored.db")
	require.NoError(t, os.WriteFile(path, image, 0644))

	restored, err := db.OpenDB(path)
	require.NoError(t, err)
	defer restored.Close()

	var val string
	require.NoError(t, restored.QueryRow(
		`SELECT value FROM app_params WHERE key = 'exported'`).Scan(&val))
	assert.Equal(t, "yes", val)
}
