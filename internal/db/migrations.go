package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS profile (
  id INTEGER PRIMARY KEY CHECK(id = 1),
  sex TEXT NOT NULL CHECK(sex IN ('male', 'female')),
  age INTEGER NOT NULL CHECK(age > 0),
  height_cm REAL NOT NULL CHECK(height_cm > 0),
  weight_kg REAL NOT NULL CHECK(weight_kg > 0),
  goal TEXT NOT NULL CHECK(goal IN ('lose_weight', 'build_muscle', 'maintain')),
  activity_level TEXT NOT NULL,
  exercise_level TEXT,
  preference TEXT NOT NULL DEFAULT 'balanced',
  target_weight_kg REAL CHECK(target_weight_kg > 0),
  protein_pct_override INTEGER CHECK(protein_pct_override >= 0),
  carbs_pct_override INTEGER CHECK(carbs_pct_override >= 0),
  fat_pct_override INTEGER CHECK(fat_pct_override >= 0),
  calorie_override INTEGER CHECK(calorie_override > 0),
  units TEXT NOT NULL DEFAULT 'metric' CHECK(units IN ('metric', 'imperial')),
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS food_log_entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  meal TEXT NOT NULL CHECK(meal IN ('breakfast', 'lunch', 'dinner', 'snack')),
  logged_at DATETIME NOT NULL,
  deleted_at DATETIME,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_food_log_entries_logged_at ON food_log_entries(logged_at);

CREATE TABLE IF NOT EXISTS food_log_foods (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  entry_id INTEGER NOT NULL,
  name TEXT NOT NULL,
  calories INTEGER NOT NULL CHECK(calories >= 0),
  protein_g REAL NOT NULL DEFAULT 0 CHECK(protein_g >= 0),
  carbs_g REAL NOT NULL DEFAULT 0 CHECK(carbs_g >= 0),
  fat_g REAL NOT NULL DEFAULT 0 CHECK(fat_g >= 0),
  position INTEGER NOT NULL DEFAULT 0,
  deleted_at DATETIME,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(entry_id) REFERENCES food_log_entries(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_food_log_foods_entry_id ON food_log_foods(entry_id);

CREATE TABLE IF NOT EXISTS activity_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  calories_burned INTEGER NOT NULL CHECK(calories_burned > 0),
  performed_at DATETIME NOT NULL,
  deleted_at DATETIME,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_activity_logs_performed_at ON activity_logs(performed_at);

CREATE TABLE IF NOT EXISTS weight_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  weight_kg REAL NOT NULL CHECK(weight_kg > 0),
  measured_at DATETIME NOT NULL,
  deleted_at DATETIME,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_weight_logs_measured_at ON weight_logs(measured_at);
`,
	},
	{
		version: 2,
		name:    "app_config",
		sql: `
CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
}

func ApplyMigrations(sqldb *sql.DB) error {
	if _, err := sqldb.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := sqldb.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := sqldb.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	return nil
}
