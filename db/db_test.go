package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/luminox/luminox/db"
	"github.com/stretchr/testify/assert"
)

// TestInitDB checks that the database file and its directory are created.
func TestInitDB(t *testing.T) {
	tempDir := t.TempDir()
	db.Path = filepath.Join(tempDir, ".luminox/luminox.db")
	err := db.InitDB()
	assert.NoError(t, err, "InitDB should not return an error")

	_, statErr := os.Stat(db.Path)
	assert.NoError(t, statErr, "Database file should exist")

	closeErr := db.CloseDB()
	assert.NoError(t, closeErr, "CloseDB should not return an error")
}

// TestCloseDB_NotInitialized ensures CloseDB tolerates a nil handle.
func TestCloseDB_NotInitialized(t *testing.T) {
	db.Db = nil
	assert.NoError(t, db.CloseDB())
}
