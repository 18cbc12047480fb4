package store

import (
	"database/sql"
	"fmt"

	"github.com/macroday/macroday/internal/macro"
	"github.com/macroday/macroday/internal/model"
)

// ProfileInput carries a full profile for upsert. The profile is a
// single row; every save replaces it wholesale.
type ProfileInput struct {
	Sex                model.Sex
	Age                int
	HeightCM           float64
	WeightKG           float64
	Goal               model.Goal
	ActivityLevel      model.ActivityLevel
	ExerciseLevel      model.ExerciseLevel
	Preference         model.DietaryPreference
	TargetWeightKG     *float64
	ProteinPctOverride *int
	CarbsPctOverride   *int
	FatPctOverride     *int
	CalorieOverride    *int
	Units              model.UnitSystem
}

// SaveProfile validates and upserts the profile row. The effective
// percent split (overrides layered over the baseline) must sum to 100;
// an invalid sum blocks the save, matching the UI save-gate. A target
// weight is only meaningful under the lose-weight goal and is cleared
// when the goal says otherwise, as is the exercise level outside
// build-muscle.
func (s *Store) SaveProfile(in ProfileInput) error {
	if in.Sex != model.SexMale && in.Sex != model.SexFemale {
		return fmt.Errorf("invalid sex %q (use male or female)", in.Sex)
	}
	if in.Age <= 0 || in.Age > 130 {
		return fmt.Errorf("age must be between 1 and 130")
	}
	if in.HeightCM <= 0 {
		return fmt.Errorf("height must be > 0")
	}
	if in.WeightKG <= 0 {
		return fmt.Errorf("weight must be > 0")
	}
	switch in.Goal {
	case model.GoalLoseWeight, model.GoalBuildMuscle, model.GoalMaintain:
	default:
		return fmt.Errorf("invalid goal %q", in.Goal)
	}
	if !macro.ValidActivityLevel(in.ActivityLevel) {
		return fmt.Errorf("invalid activity level %q", in.ActivityLevel)
	}
	if in.ExerciseLevel != "" && !macro.ValidExerciseLevel(in.ExerciseLevel) {
		return fmt.Errorf("invalid exercise level %q", in.ExerciseLevel)
	}
	if in.Preference == "" {
		in.Preference = model.PreferenceBalanced
	}
	if in.Units == "" {
		in.Units = model.UnitsMetric
	}
	if in.Units != model.UnitsMetric && in.Units != model.UnitsImperial {
		return fmt.Errorf("invalid units %q (use metric or imperial)", in.Units)
	}
	if in.CalorieOverride != nil && *in.CalorieOverride <= 0 {
		return fmt.Errorf("calorie override must be > 0")
	}

	if in.Goal != model.GoalLoseWeight {
		in.TargetWeightKG = nil
	}
	if in.Goal != model.GoalBuildMuscle {
		in.ExerciseLevel = ""
	}

	split := macro.BaselineSplit(model.MacroProfile{Goal: in.Goal, Preference: in.Preference})
	protein, carbs, fat := split.ProteinPct, split.CarbsPct, split.FatPct
	if in.ProteinPctOverride != nil {
		protein = *in.ProteinPctOverride
	}
	if in.CarbsPctOverride != nil {
		carbs = *in.CarbsPctOverride
	}
	if in.FatPctOverride != nil {
		fat = *in.FatPctOverride
	}
	if err := macro.ValidatePercents(protein, carbs, fat); err != nil {
		return err
	}

	var exerciseLevel any
	if in.ExerciseLevel != "" {
		exerciseLevel = string(in.ExerciseLevel)
	}

	_, err := s.db.Exec(`
INSERT INTO profile(
  id, sex, age, height_cm, weight_kg, goal, activity_level, exercise_level,
  preference, target_weight_kg, protein_pct_override, carbs_pct_override,
  fat_pct_override, calorie_override, units, updated_at
) VALUES(1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  sex=excluded.sex,
  age=excluded.age,
  height_cm=excluded.height_cm,
  weight_kg=excluded.weight_kg,
  goal=excluded.goal,
  activity_level=excluded.activity_level,
  exercise_level=excluded.exercise_level,
  preference=excluded.preference,
  target_weight_kg=excluded.target_weight_kg,
  protein_pct_override=excluded.protein_pct_override,
  carbs_pct_override=excluded.carbs_pct_override,
  fat_pct_override=excluded.fat_pct_override,
  calorie_override=excluded.calorie_override,
  units=excluded.units,
  updated_at=CURRENT_TIMESTAMP
`, in.Sex, in.Age, in.HeightCM, in.WeightKG, in.Goal, in.ActivityLevel, exerciseLevel,
		in.Preference, in.TargetWeightKG, in.ProteinPctOverride, in.CarbsPctOverride,
		in.FatPctOverride, in.CalorieOverride, in.Units)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Profile returns the saved profile, or nil when onboarding has not
// completed. Callers must not run aggregation against a nil profile.
func (s *Store) Profile() (*model.MacroProfile, error) {
	var (
		p             model.MacroProfile
		exerciseLevel sql.NullString
		targetWeight  sql.NullFloat64
		proteinPct    sql.NullInt64
		carbsPct      sql.NullInt64
		fatPct        sql.NullInt64
		calories      sql.NullInt64
		updatedRaw    string
	)
	err := s.db.QueryRow(`
SELECT sex, age, height_cm, weight_kg, goal, activity_level, exercise_level,
       preference, target_weight_kg, protein_pct_override, carbs_pct_override,
       fat_pct_override, calorie_override, units, updated_at
FROM profile WHERE id = 1
`).Scan(&p.Sex, &p.Age, &p.HeightCM, &p.WeightKG, &p.Goal, &p.ActivityLevel,
		&exerciseLevel, &p.Preference, &targetWeight, &proteinPct, &carbsPct,
		&fatPct, &calories, &p.Units, &updatedRaw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	if exerciseLevel.Valid {
		p.ExerciseLevel = model.ExerciseLevel(exerciseLevel.String)
	}
	if targetWeight.Valid {
		v := targetWeight.Float64
		p.TargetWeightKG = &v
	}
	if proteinPct.Valid {
		v := int(proteinPct.Int64)
		p.ProteinPctOverride = &v
	}
	if carbsPct.Valid {
		v := int(carbsPct.Int64)
		p.CarbsPctOverride = &v
	}
	if fatPct.Valid {
		v := int(fatPct.Int64)
		p.FatPctOverride = &v
	}
	if calories.Valid {
		v := int(calories.Int64)
		p.CalorieOverride = &v
	}
	if t, err := parseTime(updatedRaw); err == nil {
		p.UpdatedAt = t
	}
	return &p, nil
}
