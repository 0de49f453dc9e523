package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE servers (id INTEGER PRIMARY KEY, name TEXT, live_manifest TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "servers")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}
	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["name"])
	assert.Equal(t, "text", colMap["live_manifest"])

	// PRAGMA table_info returns no rows for a missing table.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE servers (id INTEGER PRIMARY KEY, name TEXT)").Error)

	missing, err := MissingColumns(db, "servers", []string{"id", "name", "modpack", "target_manifest"})
	require.NoError(t, err)
	assert.Equal(t, []string{"modpack", "target_manifest"}, missing)
}
