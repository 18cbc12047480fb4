// Package store is the persistence layer: a SQLite-backed event store
// for food, activity, and weight logs plus the user profile and
// app-level settings. Log deletion is always a soft delete (nullable
// deleted_at); range fetchers return deleted rows too and leave the
// filtering to the stats aggregator.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/macroday/macroday/internal/model"
)

type Store struct {
	db *sql.DB
}

func New(sqldb *sql.DB) *Store {
	return &Store{db: sqldb}
}

// Settings keys persisted in app_config.
const (
	SettingAddBurnedToDailyTotal = "add_burned_to_daily_total"
	SettingUnits                 = "units"
)

func (s *Store) SetSetting(key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	_, err := s.db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func (s *Store) GetSetting(key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := s.db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Settings() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

// AddBurnedToDailyTotal reports whether burned calories are credited
// back into the daily remaining total. Defaults to true when unset.
func (s *Store) AddBurnedToDailyTotal() (bool, error) {
	value, ok, err := s.GetSetting(SettingAddBurnedToDailyTotal)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true, nil
	default:
		return false, nil
	}
}

// DisplayUnits resolves the unit system for weight display: the units
// app_config value wins when it names a valid system, otherwise the
// profile's units, otherwise metric. Unrecognized stored values fall
// through to the fallback, same leniency as AddBurnedToDailyTotal.
func (s *Store) DisplayUnits(fallback model.UnitSystem) (model.UnitSystem, error) {
	value, ok, err := s.GetSetting(SettingUnits)
	if err != nil {
		return "", err
	}
	if ok {
		switch model.UnitSystem(strings.ToLower(strings.TrimSpace(value))) {
		case model.UnitsMetric:
			return model.UnitsMetric, nil
		case model.UnitsImperial:
			return model.UnitsImperial, nil
		}
	}
	if fallback == "" {
		fallback = model.UnitsMetric
	}
	return fallback, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored timestamp %q: %w", raw, err)
	}
	return t, nil
}

// kgPerPound matches the conversion the stats layer uses for display so
// logged values round-trip exactly.
const kgPerPound = 0.45359237

// ToKg normalizes a weight into kilograms for storage.
func ToKg(value float64, unit string) (float64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("weight must be > 0")
	}
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return value, nil
	case "lb", "lbs":
		return value * kgPerPound, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}
