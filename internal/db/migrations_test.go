package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/macroday/macroday/internal/db"
)

func TestApplyMigrationsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "macroday.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var migrationCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != 2 {
		t.Fatalf("expected 2 migration versions, got %d", migrationCount)
	}

	for _, table := range []string{"profile", "food_log_entries", "food_log_foods", "activity_logs", "weight_logs", "app_config"} {
		var count int
		if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count); err != nil {
			t.Fatalf("check %s table: %v", table, err)
		}
		if count != 1 {
			t.Fatalf("expected %s table to exist", table)
		}
	}

	var deletedColCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM pragma_table_info('food_log_foods') WHERE name = 'deleted_at'`).Scan(&deletedColCount); err != nil {
		t.Fatalf("check food_log_foods deleted_at column: %v", err)
	}
	if deletedColCount != 1 {
		t.Fatalf("expected deleted_at column in food_log_foods table")
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected db file to exist: %v", err)
	}
}
