package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/macroday/macroday/internal/model"
)

type ActivityInput struct {
	Name           string
	CaloriesBurned int
	PerformedAt    time.Time
}

type ActivityFilter struct {
	Date     string
	FromDate string
	ToDate   string
	Limit    int
}

func (s *Store) AddActivityLog(in ActivityInput) (int64, error) {
	in.Name = strings.ToLower(strings.TrimSpace(in.Name))
	if in.Name == "" {
		return 0, fmt.Errorf("activity name is required")
	}
	if in.CaloriesBurned <= 0 {
		return 0, fmt.Errorf("calories burned must be > 0")
	}
	if in.PerformedAt.IsZero() {
		in.PerformedAt = time.Now()
	}
	res, err := s.db.Exec(`
INSERT INTO activity_logs(name, calories_burned, performed_at)
VALUES(?, ?, ?)
`, in.Name, in.CaloriesBurned, formatTime(in.PerformedAt))
	if err != nil {
		return 0, fmt.Errorf("add activity log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve activity log id: %w", err)
	}
	return id, nil
}

// ListActivityLogs returns non-deleted logs for display, newest first.
func (s *Store) ListActivityLogs(f ActivityFilter) ([]model.ActivityLog, error) {
	if strings.TrimSpace(f.Date) != "" && (strings.TrimSpace(f.FromDate) != "" || strings.TrimSpace(f.ToDate) != "") {
		return nil, fmt.Errorf("--date cannot be combined with --from or --to")
	}
	query := `SELECT id, name, calories_burned, performed_at, deleted_at, created_at FROM activity_logs WHERE deleted_at IS NULL`
	args := make([]any, 0)

	if strings.TrimSpace(f.Date) != "" {
		start, end, err := dayBounds(f.Date)
		if err != nil {
			return nil, err
		}
		query += ` AND performed_at >= ? AND performed_at < ?`
		args = append(args, start, end)
	}
	if strings.TrimSpace(f.FromDate) != "" {
		from, err := parseDateStart(f.FromDate)
		if err != nil {
			return nil, err
		}
		query += ` AND performed_at >= ?`
		args = append(args, from)
	}
	if strings.TrimSpace(f.ToDate) != "" {
		to, err := parseDateEndExclusive(f.ToDate)
		if err != nil {
			return nil, err
		}
		query += ` AND performed_at < ?`
		args = append(args, to)
	}

	query += ` ORDER BY performed_at DESC`
	if f.Limit <= 0 {
		f.Limit = 50
	}
	query += ` LIMIT ?`
	args = append(args, f.Limit)

	return s.scanActivityLogs(query, args...)
}

// ActivityLogsIn returns all logs in [from, to), ascending, deleted rows
// included.
func (s *Store) ActivityLogsIn(from, to time.Time) ([]model.ActivityLog, error) {
	return s.scanActivityLogs(`
SELECT id, name, calories_burned, performed_at, deleted_at, created_at
FROM activity_logs
WHERE performed_at >= ? AND performed_at < ?
ORDER BY performed_at ASC, id ASC
`, formatTime(from), formatTime(to))
}

func (s *Store) scanActivityLogs(query string, args ...any) ([]model.ActivityLog, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	items := make([]model.ActivityLog, 0)
	for rows.Next() {
		var (
			item         model.ActivityLog
			performedRaw string
			deletedRaw   sql.NullString
			createdRaw   string
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.CaloriesBurned, &performedRaw, &deletedRaw, &createdRaw); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		performed, err := parseTime(performedRaw)
		if err != nil {
			return nil, err
		}
		item.PerformedAt = performed
		item.Deleted = deletedRaw.Valid
		item.CreatedAt, _ = time.Parse(time.RFC3339, createdRaw)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity logs: %w", err)
	}
	return items, nil
}

func (s *Store) DeleteActivityLog(id int64) error {
	if id <= 0 {
		return fmt.Errorf("activity id must be > 0")
	}
	res, err := s.db.Exec(`
UPDATE activity_logs SET deleted_at = CURRENT_TIMESTAMP
WHERE id = ? AND deleted_at IS NULL
`, id)
	if err != nil {
		return fmt.Errorf("delete activity log %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("activity log %d not found", id)
	}
	return nil
}
