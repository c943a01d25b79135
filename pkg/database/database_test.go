package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql"} {
		d, err := Dialector(&Config{Driver: driver, Host: "localhost", Port: 1, DBName: "contact"})
		require.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(&Config{Driver: "mongodb"})
	assert.Error(t, err)
}

func TestNewSQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "contact.db")

	db, err := New(&Config{Driver: "sqlite", FilePath: path, LogLevel: "silent"})
	require.NoError(t, err)
	assert.FileExists(t, path)
	require.NoError(t, Close(db))
}
