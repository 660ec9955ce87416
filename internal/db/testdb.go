package db

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

// NewTestDB creates a fresh throwaway SQLite database with the schema
// applied. The file lives in a per-test temp dir and is cleaned up with it.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := Migrate(gdb); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return gdb
}
