package services

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/Lucho2590/LaburoYA/internal/repo"
)

// newServiceDB opens a throwaway sqlite database with the full schema for
// service tests that exercise the real persistence layer.
func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "svc.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
