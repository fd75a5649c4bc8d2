package db

import (
	"path/filepath"
	"testing"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

func TestSqliteDriverMigrates(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "test.db"))

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	svc, err := New(log)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("AutoMigrateAll on sqlite: %v", err)
	}
}
