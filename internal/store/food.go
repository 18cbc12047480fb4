package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/macroday/macroday/internal/model"
)

type FoodInput struct {
	Name     string
	Calories int
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

type FoodEntryInput struct {
	Meal     model.Meal
	LoggedAt time.Time
	Foods    []FoodInput
}

type FoodEntryFilter struct {
	Date     string
	FromDate string
	ToDate   string
	Meal     model.Meal
	Limit    int
}

func validateFoodInput(in FoodInput) (FoodInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return FoodInput{}, fmt.Errorf("food name is required")
	}
	if in.Calories < 0 {
		return FoodInput{}, fmt.Errorf("calories must be >= 0")
	}
	if in.ProteinG < 0 || in.CarbsG < 0 || in.FatG < 0 {
		return FoodInput{}, fmt.Errorf("macros must be >= 0")
	}
	return in, nil
}

// AddFoodEntry inserts a food log entry together with its foods in one
// transaction. Food position follows the order supplied.
func (s *Store) AddFoodEntry(in FoodEntryInput) (int64, error) {
	if !in.Meal.Valid() {
		return 0, fmt.Errorf("invalid meal %q (use breakfast, lunch, dinner, or snack)", in.Meal)
	}
	if in.LoggedAt.IsZero() {
		in.LoggedAt = time.Now()
	}
	if len(in.Foods) == 0 {
		return 0, fmt.Errorf("at least one food is required")
	}
	foods := make([]FoodInput, 0, len(in.Foods))
	for _, f := range in.Foods {
		validated, err := validateFoodInput(f)
		if err != nil {
			return 0, err
		}
		foods = append(foods, validated)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin food entry tx: %w", err)
	}
	res, err := tx.Exec(`
INSERT INTO food_log_entries(meal, logged_at) VALUES(?, ?)
`, in.Meal, formatTime(in.LoggedAt))
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("add food entry: %w", err)
	}
	entryID, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("resolve food entry id: %w", err)
	}
	for i, f := range foods {
		if _, err := tx.Exec(`
INSERT INTO food_log_foods(entry_id, name, calories, protein_g, carbs_g, fat_g, position)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, entryID, f.Name, f.Calories, f.ProteinG, f.CarbsG, f.FatG, i); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("add food %q: %w", f.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit food entry: %w", err)
	}
	return entryID, nil
}

// AddFoodToEntry appends one food to an existing, non-deleted entry.
func (s *Store) AddFoodToEntry(entryID int64, in FoodInput) (int64, error) {
	if entryID <= 0 {
		return 0, fmt.Errorf("entry id must be > 0")
	}
	validated, err := validateFoodInput(in)
	if err != nil {
		return 0, err
	}
	var exists int
	err = s.db.QueryRow(`SELECT 1 FROM food_log_entries WHERE id = ? AND deleted_at IS NULL`, entryID).Scan(&exists)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("food entry %d not found", entryID)
	}
	if err != nil {
		return 0, fmt.Errorf("lookup food entry %d: %w", entryID, err)
	}

	res, err := s.db.Exec(`
INSERT INTO food_log_foods(entry_id, name, calories, protein_g, carbs_g, fat_g, position)
VALUES(?, ?, ?, ?, ?, ?, (SELECT IFNULL(MAX(position), -1) + 1 FROM food_log_foods WHERE entry_id = ?))
`, entryID, validated.Name, validated.Calories, validated.ProteinG, validated.CarbsG, validated.FatG, entryID)
	if err != nil {
		return 0, fmt.Errorf("add food to entry %d: %w", entryID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve food id: %w", err)
	}
	if _, err := s.db.Exec(`UPDATE food_log_entries SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, entryID); err != nil {
		return 0, fmt.Errorf("touch food entry %d: %w", entryID, err)
	}
	return id, nil
}

// ListFoodEntries returns non-deleted entries (with their non-deleted
// foods) for display, newest first.
func (s *Store) ListFoodEntries(f FoodEntryFilter) ([]model.FoodLogEntry, error) {
	if strings.TrimSpace(f.Date) != "" && (strings.TrimSpace(f.FromDate) != "" || strings.TrimSpace(f.ToDate) != "") {
		return nil, fmt.Errorf("--date cannot be combined with --from or --to")
	}
	query := `SELECT id, meal, logged_at, deleted_at, created_at, updated_at FROM food_log_entries WHERE deleted_at IS NULL`
	args := make([]any, 0)

	if strings.TrimSpace(f.Date) != "" {
		start, end, err := dayBounds(f.Date)
		if err != nil {
			return nil, err
		}
		query += ` AND logged_at >= ? AND logged_at < ?`
		args = append(args, start, end)
	}
	if strings.TrimSpace(f.FromDate) != "" {
		from, err := parseDateStart(f.FromDate)
		if err != nil {
			return nil, err
		}
		query += ` AND logged_at >= ?`
		args = append(args, from)
	}
	if strings.TrimSpace(f.ToDate) != "" {
		to, err := parseDateEndExclusive(f.ToDate)
		if err != nil {
			return nil, err
		}
		query += ` AND logged_at < ?`
		args = append(args, to)
	}
	if f.Meal != "" {
		if !f.Meal.Valid() {
			return nil, fmt.Errorf("invalid meal %q", f.Meal)
		}
		query += ` AND meal = ?`
		args = append(args, f.Meal)
	}

	query += ` ORDER BY logged_at DESC`
	if f.Limit <= 0 {
		f.Limit = 50
	}
	query += ` LIMIT ?`
	args = append(args, f.Limit)

	entries, err := s.scanFoodEntries(query, args...)
	if err != nil {
		return nil, err
	}
	return s.attachFoods(entries, false)
}

// FoodEntriesIn returns all entries in [from, to), ascending, deleted
// rows and foods included. This is the stats aggregator's feed.
func (s *Store) FoodEntriesIn(from, to time.Time) ([]model.FoodLogEntry, error) {
	entries, err := s.scanFoodEntries(`
SELECT id, meal, logged_at, deleted_at, created_at, updated_at
FROM food_log_entries
WHERE logged_at >= ? AND logged_at < ?
ORDER BY logged_at ASC, id ASC
`, formatTime(from), formatTime(to))
	if err != nil {
		return nil, err
	}
	return s.attachFoods(entries, true)
}

func (s *Store) scanFoodEntries(query string, args ...any) ([]model.FoodLogEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list food entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.FoodLogEntry, 0)
	for rows.Next() {
		var (
			e          model.FoodLogEntry
			loggedRaw  string
			deletedRaw sql.NullString
			createdRaw string
			updatedRaw string
		)
		if err := rows.Scan(&e.ID, &e.Meal, &loggedRaw, &deletedRaw, &createdRaw, &updatedRaw); err != nil {
			return nil, fmt.Errorf("scan food entry: %w", err)
		}
		logged, err := parseTime(loggedRaw)
		if err != nil {
			return nil, err
		}
		e.LoggedAt = logged
		e.Deleted = deletedRaw.Valid
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdRaw)
		e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedRaw)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate food entries: %w", err)
	}
	return entries, nil
}

func (s *Store) attachFoods(entries []model.FoodLogEntry, includeDeleted bool) ([]model.FoodLogEntry, error) {
	for i := range entries {
		query := `SELECT id, entry_id, name, calories, protein_g, carbs_g, fat_g, position, deleted_at
FROM food_log_foods WHERE entry_id = ?`
		if !includeDeleted {
			query += ` AND deleted_at IS NULL`
		}
		query += ` ORDER BY position ASC, id ASC`

		rows, err := s.db.Query(query, entries[i].ID)
		if err != nil {
			return nil, fmt.Errorf("list foods for entry %d: %w", entries[i].ID, err)
		}
		foods := make([]model.FoodLogFood, 0)
		for rows.Next() {
			var (
				f          model.FoodLogFood
				deletedRaw sql.NullString
			)
			if err := rows.Scan(&f.ID, &f.EntryID, &f.Name, &f.Calories, &f.ProteinG, &f.CarbsG, &f.FatG, &f.Position, &deletedRaw); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan food: %w", err)
			}
			f.Deleted = deletedRaw.Valid
			foods = append(foods, f)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("iterate foods: %w", err)
		}
		rows.Close()
		entries[i].Foods = foods
	}
	return entries, nil
}

// DeleteFoodEntry soft-deletes an entry; its foods stop counting with it.
func (s *Store) DeleteFoodEntry(id int64) error {
	if id <= 0 {
		return fmt.Errorf("entry id must be > 0")
	}
	res, err := s.db.Exec(`
UPDATE food_log_entries SET deleted_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND deleted_at IS NULL
`, id)
	if err != nil {
		return fmt.Errorf("delete food entry %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("food entry %d not found", id)
	}
	return nil
}

// DeleteFood soft-deletes a single food line item.
func (s *Store) DeleteFood(foodID int64) error {
	if foodID <= 0 {
		return fmt.Errorf("food id must be > 0")
	}
	res, err := s.db.Exec(`
UPDATE food_log_foods SET deleted_at = CURRENT_TIMESTAMP
WHERE id = ? AND deleted_at IS NULL
`, foodID)
	if err != nil {
		return fmt.Errorf("delete food %d: %w", foodID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("food %d not found", foodID)
	}
	return nil
}
