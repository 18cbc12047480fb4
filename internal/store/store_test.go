package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/macroday/macroday/internal/db"
	"github.com/macroday/macroday/internal/model"
	"github.com/macroday/macroday/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "macroday.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return store.New(sqldb)
}

func validProfile() store.ProfileInput {
	return store.ProfileInput{
		Sex:           model.SexFemale,
		Age:           30,
		HeightCM:      165,
		WeightKG:      70,
		Goal:          model.GoalLoseWeight,
		ActivityLevel: model.ActivitySedentary,
		Preference:    model.PreferenceBalanced,
		Units:         model.UnitsMetric,
	}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func logTime(day, hour int) time.Time {
	return time.Date(2026, 4, day, hour, 0, 0, 0, time.UTC)
}

func TestProfileRoundTrip(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	p, err := st.Profile()
	if err != nil {
		t.Fatalf("profile before save: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil profile before onboarding, got %+v", p)
	}

	in := validProfile()
	in.TargetWeightKG = floatPtr(62)
	in.CalorieOverride = intPtr(1700)
	if err := st.SaveProfile(in); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	p, err = st.Profile()
	if err != nil {
		t.Fatalf("profile after save: %v", err)
	}
	if p == nil {
		t.Fatal("expected profile after save")
	}
	if p.Sex != model.SexFemale || p.Age != 30 || p.HeightCM != 165 || p.WeightKG != 70 {
		t.Fatalf("biometrics mismatch: %+v", p)
	}
	if p.TargetWeightKG == nil || *p.TargetWeightKG != 62 {
		t.Fatalf("target weight mismatch: %+v", p.TargetWeightKG)
	}
	if p.CalorieOverride == nil || *p.CalorieOverride != 1700 {
		t.Fatalf("calorie override mismatch: %+v", p.CalorieOverride)
	}
}

func TestSaveProfileGoalSwitchClearsTargetWeight(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	in := validProfile()
	in.TargetWeightKG = floatPtr(62)
	if err := st.SaveProfile(in); err != nil {
		t.Fatalf("save lose-weight profile: %v", err)
	}

	in.Goal = model.GoalBuildMuscle
	in.ExerciseLevel = model.ExerciseIntermediate
	if err := st.SaveProfile(in); err != nil {
		t.Fatalf("save build-muscle profile: %v", err)
	}

	p, err := st.Profile()
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.TargetWeightKG != nil {
		t.Fatalf("target weight must be cleared on goal switch, got %v", *p.TargetWeightKG)
	}
	if p.ExerciseLevel != model.ExerciseIntermediate {
		t.Fatalf("exercise level = %q, want intermediate", p.ExerciseLevel)
	}
}

func TestSaveProfileRejectsInvalidPercentSum(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	in := validProfile()
	in.ProteinPctOverride = intPtr(50)
	in.CarbsPctOverride = intPtr(40)
	in.FatPctOverride = intPtr(30)
	if err := st.SaveProfile(in); err == nil {
		t.Fatal("expected save to be blocked for percent sum 120")
	}

	// A single override that keeps the sum at 100 saves fine: baseline
	// balanced is 30/40/30, overriding protein to 30 changes nothing.
	in = validProfile()
	in.ProteinPctOverride = intPtr(30)
	if err := st.SaveProfile(in); err != nil {
		t.Fatalf("save with consistent override: %v", err)
	}
}

func TestFoodEntryLifecycle(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	entryID, err := st.AddFoodEntry(store.FoodEntryInput{
		Meal:     model.MealLunch,
		LoggedAt: logTime(6, 12),
		Foods: []store.FoodInput{
			{Name: "rice bowl", Calories: 300, ProteinG: 12, CarbsG: 55, FatG: 4},
			{Name: "side salad", Calories: 150, ProteinG: 3, CarbsG: 10, FatG: 11},
		},
	})
	if err != nil {
		t.Fatalf("add food entry: %v", err)
	}

	foodID, err := st.AddFoodToEntry(entryID, store.FoodInput{Name: "iced tea", Calories: 90})
	if err != nil {
		t.Fatalf("add food to entry: %v", err)
	}

	entries, err := st.ListFoodEntries(store.FoodEntryFilter{Date: "2026-04-06"})
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 1 || len(entries[0].Foods) != 3 {
		t.Fatalf("expected 1 entry with 3 foods, got %+v", entries)
	}
	if entries[0].Foods[0].Name != "rice bowl" || entries[0].Foods[2].Name != "iced tea" {
		t.Fatalf("foods out of logged order: %+v", entries[0].Foods)
	}

	if err := st.DeleteFood(foodID); err != nil {
		t.Fatalf("delete food: %v", err)
	}
	entries, err = st.ListFoodEntries(store.FoodEntryFilter{Date: "2026-04-06"})
	if err != nil {
		t.Fatalf("list after food delete: %v", err)
	}
	if len(entries[0].Foods) != 2 {
		t.Fatalf("deleted food still listed: %+v", entries[0].Foods)
	}

	// The aggregator feed still carries the deleted food, flagged.
	raw, err := st.FoodEntriesIn(logTime(6, 0), logTime(7, 0))
	if err != nil {
		t.Fatalf("entries in range: %v", err)
	}
	if len(raw) != 1 || len(raw[0].Foods) != 3 {
		t.Fatalf("range fetch must include deleted foods: %+v", raw)
	}
	var deletedSeen bool
	for _, f := range raw[0].Foods {
		if f.ID == foodID && f.Deleted {
			deletedSeen = true
		}
	}
	if !deletedSeen {
		t.Fatal("deleted food not flagged in range fetch")
	}

	if err := st.DeleteFoodEntry(entryID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	entries, err = st.ListFoodEntries(store.FoodEntryFilter{Date: "2026-04-06"})
	if err != nil {
		t.Fatalf("list after entry delete: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("deleted entry still listed: %+v", entries)
	}
	if err := st.DeleteFoodEntry(entryID); err == nil {
		t.Fatal("deleting an already-deleted entry must fail")
	}
}

func TestFoodEntriesInHalfOpenWindow(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	for day, hour := range map[int]int{6: 0, 7: 0} {
		if _, err := st.AddFoodEntry(store.FoodEntryInput{
			Meal:     model.MealBreakfast,
			LoggedAt: logTime(day, hour),
			Foods:    []store.FoodInput{{Name: "oats", Calories: 200}},
		}); err != nil {
			t.Fatalf("add entry for day %d: %v", day, err)
		}
	}

	// Day 7 midnight is the exclusive bound and must not appear.
	entries, err := st.FoodEntriesIn(logTime(6, 0), logTime(7, 0))
	if err != nil {
		t.Fatalf("entries in range: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly the day-6 entry, got %d", len(entries))
	}
	if !entries[0].LoggedAt.Equal(logTime(6, 0)) {
		t.Fatalf("unexpected entry %+v", entries[0])
	}
}

func TestActivityLogLifecycle(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	id, err := st.AddActivityLog(store.ActivityInput{Name: "Running", CaloriesBurned: 320, PerformedAt: logTime(6, 12)})
	if err != nil {
		t.Fatalf("add activity: %v", err)
	}

	logs, err := st.ListActivityLogs(store.ActivityFilter{Date: "2026-04-06"})
	if err != nil {
		t.Fatalf("list activities: %v", err)
	}
	if len(logs) != 1 || logs[0].Name != "running" || logs[0].CaloriesBurned != 320 {
		t.Fatalf("unexpected activity list: %+v", logs)
	}

	if err := st.DeleteActivityLog(id); err != nil {
		t.Fatalf("delete activity: %v", err)
	}
	logs, err = st.ListActivityLogs(store.ActivityFilter{Date: "2026-04-06"})
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("deleted activity still listed: %+v", logs)
	}

	raw, err := st.ActivityLogsIn(logTime(6, 0), logTime(7, 0))
	if err != nil {
		t.Fatalf("activities in range: %v", err)
	}
	if len(raw) != 1 || !raw[0].Deleted {
		t.Fatalf("range fetch must include the deleted log flagged: %+v", raw)
	}

	if _, err := st.AddActivityLog(store.ActivityInput{Name: "walk", CaloriesBurned: 0}); err == nil {
		t.Fatal("expected error for zero calories burned")
	}
}

func TestWeightLogConversionAndLifecycle(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	if _, err := st.AddWeightLog(store.WeightInput{Weight: 200, Unit: "lb", MeasuredAt: logTime(6, 7)}); err != nil {
		t.Fatalf("add lb weight: %v", err)
	}
	id, err := st.AddWeightLog(store.WeightInput{Weight: 89.5, Unit: "kg", MeasuredAt: logTime(8, 7)})
	if err != nil {
		t.Fatalf("add kg weight: %v", err)
	}

	logs, err := st.ListWeightLogs(store.WeightFilter{})
	if err != nil {
		t.Fatalf("list weights: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 weight logs, got %d", len(logs))
	}
	// Oldest first, and the lb value stored in kg.
	if got := logs[0].WeightKG; got < 90.7 || got > 90.72 {
		t.Fatalf("200 lb stored as %f kg, want ~90.718", got)
	}

	if err := st.DeleteWeightLog(id); err != nil {
		t.Fatalf("delete weight: %v", err)
	}
	logs, err = st.ListWeightLogs(store.WeightFilter{})
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("deleted weight still listed: %+v", logs)
	}

	if _, err := st.AddWeightLog(store.WeightInput{Weight: 80, Unit: "stone"}); err == nil {
		t.Fatal("expected error for unknown unit")
	}
}

func TestListWeightLogsLimitKeepsNewest(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	for day := 6; day <= 8; day++ {
		if _, err := st.AddWeightLog(store.WeightInput{Weight: 80 + float64(day), Unit: "kg", MeasuredAt: logTime(day, 7)}); err != nil {
			t.Fatalf("add weight for day %d: %v", day, err)
		}
	}

	logs, err := st.ListWeightLogs(store.WeightFilter{Limit: 2})
	if err != nil {
		t.Fatalf("list weights: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	// The oldest log falls off; the survivors stay oldest-first.
	if !logs[0].MeasuredAt.Equal(logTime(7, 7)) || !logs[1].MeasuredAt.Equal(logTime(8, 7)) {
		t.Fatalf("limit must drop the oldest logs, got %+v", logs)
	}
}

func TestDisplayUnits(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	units, err := st.DisplayUnits(model.UnitsMetric)
	if err != nil {
		t.Fatalf("display units unset: %v", err)
	}
	if units != model.UnitsMetric {
		t.Fatalf("units = %q, want fallback metric", units)
	}

	if err := st.SetSetting(store.SettingUnits, "imperial"); err != nil {
		t.Fatalf("set units: %v", err)
	}
	units, err = st.DisplayUnits(model.UnitsMetric)
	if err != nil {
		t.Fatalf("display units after set: %v", err)
	}
	if units != model.UnitsImperial {
		t.Fatalf("units = %q, want imperial from app_config", units)
	}

	// An unrecognized stored value falls through to the profile's units.
	if err := st.SetSetting(store.SettingUnits, "stone"); err != nil {
		t.Fatalf("set bogus units: %v", err)
	}
	units, err = st.DisplayUnits(model.UnitsImperial)
	if err != nil {
		t.Fatalf("display units with bogus value: %v", err)
	}
	if units != model.UnitsImperial {
		t.Fatalf("units = %q, want the fallback", units)
	}
}

func TestSettings(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	addBurned, err := st.AddBurnedToDailyTotal()
	if err != nil {
		t.Fatalf("default add-burned: %v", err)
	}
	if !addBurned {
		t.Fatal("add-burned must default to true")
	}

	if err := st.SetSetting(store.SettingAddBurnedToDailyTotal, "false"); err != nil {
		t.Fatalf("set add-burned: %v", err)
	}
	addBurned, err = st.AddBurnedToDailyTotal()
	if err != nil {
		t.Fatalf("add-burned after set: %v", err)
	}
	if addBurned {
		t.Fatal("expected add-burned false after set")
	}

	all, err := st.Settings()
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if all[store.SettingAddBurnedToDailyTotal] != "false" {
		t.Fatalf("settings map = %+v", all)
	}
}
