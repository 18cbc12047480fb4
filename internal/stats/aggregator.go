// Package stats folds logged food, activity, and weight events into
// daily, weekly, and per-meal summaries. All aggregation is pure
// computation over snapshots fetched through the Store interface; the
// package holds no state and performs no writes, so concurrent calls
// with different inputs are safe.
package stats

import (
	"fmt"
	"time"

	"github.com/macroday/macroday/internal/macro"
	"github.com/macroday/macroday/internal/model"
)

// kgPerPound matches the factor used when logging imperial weights, so a
// value round-trips display->storage->display unchanged.
const kgPerPound = 0.45359237

// Day aggregates the window [from, to) into a single LoggingStats.
// Meal buckets use each entry's stored meal category, never the
// timestamp's hour: a food logged at 23:00 but tagged breakfast counts
// as breakfast. addBurned controls whether burned calories are credited
// back into caloriesRemaining.
func Day(store Store, cp macro.ComputedProfile, from, to time.Time, addBurned bool) (LoggingStats, error) {
	if !from.Before(to) {
		return LoggingStats{}, fmt.Errorf("invalid window: from %s is not before to %s", from, to)
	}

	s := LoggingStats{
		Day:            from,
		TargetCalories: cp.TargetCalories,
		TargetProteinG: cp.ProteinG,
		TargetCarbsG:   cp.CarbsG,
		TargetFatG:     cp.FatG,
	}
	for _, m := range model.Meals() {
		s.meal(m).Foods = make([]model.FoodLogFood, 0)
	}

	entries, err := store.FoodEntriesIn(from, to)
	if err != nil {
		return LoggingStats{}, fmt.Errorf("fetch food entries: %w", err)
	}
	for _, entry := range entries {
		if entry.Deleted {
			continue
		}
		bucket := s.meal(entry.Meal)
		for _, food := range entry.Foods {
			if food.Deleted {
				continue
			}
			bucket.Calories += food.Calories
			bucket.Foods = append(bucket.Foods, food)
			s.CaloriesConsumed += food.Calories
			s.ProteinG += food.ProteinG
			s.CarbsG += food.CarbsG
			s.FatG += food.FatG
			s.HasData = true
		}
	}

	activities, err := store.ActivityLogsIn(from, to)
	if err != nil {
		return LoggingStats{}, fmt.Errorf("fetch activity logs: %w", err)
	}
	for _, a := range activities {
		if a.Deleted {
			continue
		}
		s.CaloriesBurned += a.CaloriesBurned
		s.HasData = true
	}

	s.CaloriesRemaining = s.TargetCalories - s.CaloriesConsumed
	if addBurned {
		s.CaloriesRemaining += s.CaloriesBurned
	}
	return s, nil
}

// Week aggregates one LoggingStats per calendar day in [from, to) and
// sums across them. Days are chronological regardless of which weekday
// the window starts on. Averages divide by the number of days with data
// only, and are 0 when no day has any.
func Week(store Store, cp macro.ComputedProfile, from, to time.Time, addBurned bool) (WeeklyCaloriesStats, error) {
	if !from.Before(to) {
		return WeeklyCaloriesStats{}, fmt.Errorf("invalid window: from %s is not before to %s", from, to)
	}

	w := WeeklyCaloriesStats{Days: make([]LoggingStats, 0, 7)}
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		next := day.AddDate(0, 0, 1)
		if next.After(to) {
			next = to
		}
		ds, err := Day(store, cp, day, next, addBurned)
		if err != nil {
			return WeeklyCaloriesStats{}, err
		}
		w.Days = append(w.Days, ds)
		w.TotalCaloriesConsumed += ds.CaloriesConsumed
		w.TotalCaloriesBurned += ds.CaloriesBurned
		w.TotalCaloriesRemaining += ds.CaloriesRemaining
		if ds.HasData {
			w.DaysWithData++
		}
	}

	if w.DaysWithData > 0 {
		var consumed, burned, remaining int
		for _, ds := range w.Days {
			if !ds.HasData {
				continue
			}
			consumed += ds.CaloriesConsumed
			burned += ds.CaloriesBurned
			remaining += ds.CaloriesRemaining
		}
		div := float64(w.DaysWithData)
		w.AverageCaloriesConsumedPerDay = float64(consumed) / div
		w.AverageCaloriesBurnedPerDay = float64(burned) / div
		w.AverageDeficitPerDay = float64(remaining) / div
	}
	return w, nil
}

// ActivityPerDay groups activity logs in [from, to) by calendar day.
// Every day in the window appears, empty days included; the average
// divides by days that have at least one non-deleted log.
func ActivityPerDay(store Store, from, to time.Time) (ActivityLogStats, error) {
	if !from.Before(to) {
		return ActivityLogStats{}, fmt.Errorf("invalid window: from %s is not before to %s", from, to)
	}

	logs, err := store.ActivityLogsIn(from, to)
	if err != nil {
		return ActivityLogStats{}, fmt.Errorf("fetch activity logs: %w", err)
	}

	out := ActivityLogStats{Days: make([]ActivityDayStats, 0, 7)}
	byDay := make(map[string]int)
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		byDay[day.Format("2006-01-02")] = len(out.Days)
		out.Days = append(out.Days, ActivityDayStats{Day: day, Logs: make([]model.ActivityLog, 0)})
	}

	for _, l := range logs {
		if l.Deleted {
			continue
		}
		idx, ok := byDay[l.PerformedAt.In(from.Location()).Format("2006-01-02")]
		if !ok {
			continue
		}
		out.Days[idx].CaloriesBurned += l.CaloriesBurned
		out.Days[idx].Logs = append(out.Days[idx].Logs, l)
		out.TotalCaloriesBurned += l.CaloriesBurned
	}

	for _, d := range out.Days {
		if len(d.Logs) > 0 {
			out.DaysWithData++
		}
	}
	if out.DaysWithData > 0 {
		out.AverageCaloriesBurnedPerDay = float64(out.TotalCaloriesBurned) / float64(out.DaysWithData)
	}
	return out, nil
}

// WeightSeries maps non-deleted weight logs to the preferred display
// unit and tracks the running min/max across the series. The caller
// applies any chart-axis padding.
func WeightSeries(logs []model.WeightLog, units model.UnitSystem) WeightStats {
	ws := WeightStats{Points: make([]WeightPoint, 0, len(logs)), Unit: "kg", Units: units}
	if units == model.UnitsImperial {
		ws.Unit = "lb"
	}
	for _, l := range logs {
		if l.Deleted {
			continue
		}
		w := l.WeightKG
		if units == model.UnitsImperial {
			w = l.WeightKG / kgPerPound
		}
		if len(ws.Points) == 0 {
			ws.MinWeight = w
			ws.MaxWeight = w
		} else {
			if w < ws.MinWeight {
				ws.MinWeight = w
			}
			if w > ws.MaxWeight {
				ws.MaxWeight = w
			}
		}
		ws.Points = append(ws.Points, WeightPoint{At: l.MeasuredAt, Weight: w})
	}
	return ws
}
