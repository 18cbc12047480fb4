package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/macroday/macroday/internal/model"
)

type WeightInput struct {
	Weight     float64
	Unit       string
	MeasuredAt time.Time
}

type WeightFilter struct {
	FromDate string
	ToDate   string
	Limit    int
}

func (s *Store) AddWeightLog(in WeightInput) (int64, error) {
	weightKG, err := ToKg(in.Weight, in.Unit)
	if err != nil {
		return 0, err
	}
	if in.MeasuredAt.IsZero() {
		in.MeasuredAt = time.Now()
	}
	res, err := s.db.Exec(`
INSERT INTO weight_logs(weight_kg, measured_at)
VALUES(?, ?)
`, weightKG, formatTime(in.MeasuredAt))
	if err != nil {
		return 0, fmt.Errorf("add weight log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve weight log id: %w", err)
	}
	return id, nil
}

// ListWeightLogs returns non-deleted logs for display, oldest first so
// the series reads left-to-right on a chart. The limit trims from the
// head: when more rows match than the limit, the oldest are dropped and
// the newest measurements always survive.
func (s *Store) ListWeightLogs(f WeightFilter) ([]model.WeightLog, error) {
	query := `SELECT id, weight_kg, measured_at, deleted_at, created_at FROM weight_logs WHERE deleted_at IS NULL`
	args := make([]any, 0)

	if strings.TrimSpace(f.FromDate) != "" {
		from, err := parseDateStart(f.FromDate)
		if err != nil {
			return nil, err
		}
		query += ` AND measured_at >= ?`
		args = append(args, from)
	}
	if strings.TrimSpace(f.ToDate) != "" {
		to, err := parseDateEndExclusive(f.ToDate)
		if err != nil {
			return nil, err
		}
		query += ` AND measured_at < ?`
		args = append(args, to)
	}

	query += ` ORDER BY measured_at DESC, id DESC`
	if f.Limit <= 0 {
		f.Limit = 365
	}
	query += ` LIMIT ?`
	args = append(args, f.Limit)

	items, err := s.scanWeightLogs(query, args...)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, nil
}

// WeightLogsIn returns all logs in [from, to), ascending, deleted rows
// included.
func (s *Store) WeightLogsIn(from, to time.Time) ([]model.WeightLog, error) {
	return s.scanWeightLogs(`
SELECT id, weight_kg, measured_at, deleted_at, created_at
FROM weight_logs
WHERE measured_at >= ? AND measured_at < ?
ORDER BY measured_at ASC, id ASC
`, formatTime(from), formatTime(to))
}

func (s *Store) scanWeightLogs(query string, args ...any) ([]model.WeightLog, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list weight logs: %w", err)
	}
	defer rows.Close()

	items := make([]model.WeightLog, 0)
	for rows.Next() {
		var (
			item        model.WeightLog
			measuredRaw string
			deletedRaw  sql.NullString
			createdRaw  string
		)
		if err := rows.Scan(&item.ID, &item.WeightKG, &measuredRaw, &deletedRaw, &createdRaw); err != nil {
			return nil, fmt.Errorf("scan weight log: %w", err)
		}
		measured, err := parseTime(measuredRaw)
		if err != nil {
			return nil, err
		}
		item.MeasuredAt = measured
		item.Deleted = deletedRaw.Valid
		item.CreatedAt, _ = time.Parse(time.RFC3339, createdRaw)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weight logs: %w", err)
	}
	return items, nil
}

func (s *Store) DeleteWeightLog(id int64) error {
	if id <= 0 {
		return fmt.Errorf("weight id must be > 0")
	}
	res, err := s.db.Exec(`
UPDATE weight_logs SET deleted_at = CURRENT_TIMESTAMP
WHERE id = ? AND deleted_at IS NULL
`, id)
	if err != nil {
		return fmt.Errorf("delete weight log %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("weight log %d not found", id)
	}
	return nil
}
