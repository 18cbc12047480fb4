package stats

import (
	"time"

	"github.com/macroday/macroday/internal/model"
)

// Store is the read-only event source the aggregator folds over. Range
// queries are half-open [from, to), results ascending by timestamp in
// insertion order, and may include soft-deleted rows; filtering them is
// the aggregator's job.
type Store interface {
	FoodEntriesIn(from, to time.Time) ([]model.FoodLogEntry, error)
	ActivityLogsIn(from, to time.Time) ([]model.ActivityLog, error)
	WeightLogsIn(from, to time.Time) ([]model.WeightLog, error)
}

// MealStats is one meal bucket: consumed calories plus the contributing
// foods in logged order.
type MealStats struct {
	Calories int                 `json:"calories"`
	Foods    []model.FoodLogFood `json:"foods"`
}

// LoggingStats is the single-day snapshot the UI renders. Immutable per
// call; callers that cache it replace it wholesale on store changes.
type LoggingStats struct {
	Day time.Time `json:"day"`

	TargetCalories    int `json:"target_calories"`
	CaloriesConsumed  int `json:"calories_consumed"`
	CaloriesBurned    int `json:"calories_burned"`
	CaloriesRemaining int `json:"calories_remaining"`

	TargetProteinG int `json:"target_protein_g"`
	TargetCarbsG   int `json:"target_carbs_g"`
	TargetFatG     int `json:"target_fat_g"`

	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`

	Breakfast MealStats `json:"breakfast"`
	Lunch     MealStats `json:"lunch"`
	Dinner    MealStats `json:"dinner"`
	Snack     MealStats `json:"snack"`

	// HasData is true iff at least one non-deleted food or activity log
	// exists in the window. Days without data are excluded from weekly
	// averaging denominators.
	HasData bool `json:"has_data"`
}

// meal returns the bucket for m. Unknown meals fall into snack so a
// malformed row still counts toward the day.
func (s *LoggingStats) meal(m model.Meal) *MealStats {
	switch m {
	case model.MealBreakfast:
		return &s.Breakfast
	case model.MealLunch:
		return &s.Lunch
	case model.MealDinner:
		return &s.Dinner
	default:
		return &s.Snack
	}
}

// WeeklyCaloriesStats is the 7-day aggregate: one LoggingStats per
// calendar day in chronological order plus pre-computed totals.
type WeeklyCaloriesStats struct {
	Days []LoggingStats `json:"days"`

	TotalCaloriesConsumed  int `json:"total_calories_consumed"`
	TotalCaloriesBurned    int `json:"total_calories_burned"`
	TotalCaloriesRemaining int `json:"total_calories_remaining"`

	DaysWithData int `json:"days_with_data"`

	AverageCaloriesConsumedPerDay float64 `json:"avg_calories_consumed_per_day"`
	AverageCaloriesBurnedPerDay   float64 `json:"avg_calories_burned_per_day"`
	// AverageDeficitPerDay averages caloriesRemaining over days that have
	// data; 0 when no day does.
	AverageDeficitPerDay float64 `json:"avg_deficit_per_day"`
}

// ActivityDayStats is one day's burned total and contributing logs.
type ActivityDayStats struct {
	Day            time.Time           `json:"day"`
	CaloriesBurned int                 `json:"calories_burned"`
	Logs           []model.ActivityLog `json:"logs"`
}

// ActivityLogStats groups activity logs per calendar day.
type ActivityLogStats struct {
	Days                []ActivityDayStats `json:"days"`
	TotalCaloriesBurned int                `json:"total_calories_burned"`
	DaysWithData        int                `json:"days_with_data"`
	// AverageCaloriesBurnedPerDay averages over days with at least one
	// activity log; 0 when none has any.
	AverageCaloriesBurnedPerDay float64 `json:"avg_calories_burned_per_day"`
}

// WeightPoint is one weight log mapped to the preferred display unit.
type WeightPoint struct {
	At     time.Time `json:"at"`
	Weight float64   `json:"weight"`
}

// WeightStats is the weight series with running min/max for chart-axis
// bounds. Axis padding is the caller's concern, not applied here.
type WeightStats struct {
	Points    []WeightPoint    `json:"points"`
	MinWeight float64          `json:"min_weight"`
	MaxWeight float64          `json:"max_weight"`
	Unit      string           `json:"unit"`
	Units     model.UnitSystem `json:"-"`
}
