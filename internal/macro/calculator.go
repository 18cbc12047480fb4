// Package macro derives daily calorie and macronutrient targets from a
// user profile. Every function here is pure: same profile in, same
// numbers out, no I/O. The UI recomputes on every profile edit.
package macro

import (
	"errors"
	"fmt"
	"math"

	"github.com/macroday/macroday/internal/model"
)

const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9

	// Goal calorie deltas applied on top of TDEE.
	loseWeightDelta  = -500
	buildMuscleDelta = 300

	// Sex-specific daily calorie floors. Targets never drop below these
	// regardless of how aggressive the computed deficit is.
	calorieFloorMale   = 1500
	calorieFloorFemale = 1200
)

// ErrIncompleteProfile is returned when weight, height, age, or sex is
// missing. Callers are expected to gate on onboarding completion; this
// error means the gate was skipped, not that a default was guessed.
var ErrIncompleteProfile = errors.New("profile is missing required biometric fields")

// activityMultipliers maps activity levels to their TDEE multiplier.
// Single source of truth, also used for profile input validation.
var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivitySedentary:  1.2,
	model.ActivityLight:      1.375,
	model.ActivityModerate:   1.55,
	model.ActivityActive:     1.725,
	model.ActivityVeryActive: 1.9,
}

// exerciseMultipliers further scale TDEE when the goal is build-muscle.
var exerciseMultipliers = map[model.ExerciseLevel]float64{
	model.ExerciseBeginner:     1.0,
	model.ExerciseIntermediate: 1.05,
	model.ExerciseAdvanced:     1.10,
}

// Split is a protein/carbs/fat percent split. Baseline splits always sum
// to exactly 100.
type Split struct {
	ProteinPct int `json:"protein_pct"`
	CarbsPct   int `json:"carbs_pct"`
	FatPct     int `json:"fat_pct"`
}

func (s Split) Sum() int { return s.ProteinPct + s.CarbsPct + s.FatPct }

var preferenceSplits = map[model.DietaryPreference]Split{
	model.PreferenceBalanced:    {ProteinPct: 30, CarbsPct: 40, FatPct: 30},
	model.PreferenceHighProtein: {ProteinPct: 40, CarbsPct: 30, FatPct: 30},
	model.PreferenceLowCarb:     {ProteinPct: 40, CarbsPct: 20, FatPct: 40},
	model.PreferenceKeto:        {ProteinPct: 25, CarbsPct: 10, FatPct: 65},
}

var goalSplits = map[model.Goal]Split{
	model.GoalLoseWeight:  {ProteinPct: 30, CarbsPct: 40, FatPct: 30},
	model.GoalBuildMuscle: {ProteinPct: 35, CarbsPct: 40, FatPct: 25},
	model.GoalMaintain:    {ProteinPct: 25, CarbsPct: 45, FatPct: 30},
}

// ComputedProfile is the resolved daily target: calories, the percent
// split in effect, and the gram targets derived from it. It is ephemeral,
// recomputed on every profile change and never persisted.
type ComputedProfile struct {
	TargetCalories int `json:"target_calories"`

	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`

	ProteinPct int `json:"protein_pct"`
	CarbsPct   int `json:"carbs_pct"`
	FatPct     int `json:"fat_pct"`

	// BaselineSplit is the non-overridden split the profile falls back to
	// when a percent override is cleared.
	BaselineSplit Split `json:"baseline_split"`

	CalorieOverridden bool `json:"calorie_overridden"`
	PercentOverridden bool `json:"percent_overridden"`
}

// PercentsValid reports whether the effective split sums to 100. A false
// result blocks saving in the UI but never blocks computation.
func (cp ComputedProfile) PercentsValid() bool {
	return cp.ProteinPct+cp.CarbsPct+cp.FatPct == 100
}

// BMR computes basal metabolic rate via Mifflin-St Jeor:
// 10*weightKG + 6.25*heightCM - 5*age, then +5 for male or -161 for
// female. Downstream rounding depends on this exact variant.
func BMR(p model.MacroProfile) (float64, error) {
	if p.WeightKG <= 0 || p.HeightCM <= 0 || p.Age <= 0 {
		return 0, ErrIncompleteProfile
	}
	bmr := 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
	switch p.Sex {
	case model.SexMale:
		bmr += 5
	case model.SexFemale:
		bmr -= 161
	default:
		return 0, ErrIncompleteProfile
	}
	return bmr, nil
}

// TDEE scales BMR by the activity-level multiplier, and additionally by
// the exercise-level multiplier when the goal is build-muscle. Exercise
// level is ignored for every other goal.
func TDEE(p model.MacroProfile) (int, error) {
	bmr, err := BMR(p)
	if err != nil {
		return 0, err
	}
	mult, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		return 0, fmt.Errorf("unknown activity level %q", p.ActivityLevel)
	}
	tdee := bmr * mult
	if p.Goal == model.GoalBuildMuscle {
		if em, ok := exerciseMultipliers[p.ExerciseLevel]; ok {
			tdee *= em
		}
	}
	return roundHalfUp(tdee), nil
}

// CalorieDelta is the goal-dependent signed adjustment on top of TDEE.
func CalorieDelta(p model.MacroProfile) int {
	switch p.Goal {
	case model.GoalLoseWeight:
		return loseWeightDelta
	case model.GoalBuildMuscle:
		return buildMuscleDelta
	default:
		return 0
	}
}

// DefaultDailyCalorieTarget is TDEE plus the goal delta, clamped up to
// the sex-specific floor.
func DefaultDailyCalorieTarget(p model.MacroProfile) (int, error) {
	tdee, err := TDEE(p)
	if err != nil {
		return 0, err
	}
	target := tdee + CalorieDelta(p)
	floor := calorieFloorFemale
	if p.Sex == model.SexMale {
		floor = calorieFloorMale
	}
	if target < floor {
		target = floor
	}
	return target, nil
}

// BaselineSplit resolves the non-overridden percent split: the dietary
// preference's split when one is set, otherwise the goal's split,
// otherwise balanced.
func BaselineSplit(p model.MacroProfile) Split {
	if s, ok := preferenceSplits[p.Preference]; ok {
		return s
	}
	if s, ok := goalSplits[p.Goal]; ok {
		return s
	}
	return preferenceSplits[model.PreferenceBalanced]
}

// Compute resolves the full macro profile: target calories (absolute
// override wins over the computed default), percent split (per-macro
// overrides win over the baseline), and gram targets at 4 kcal/g for
// protein and carbs, 9 kcal/g for fat, each rounded half-up
// independently.
//
// Compute stays best-effort when overrides do not sum to 100; enforcing
// that invariant before save is the caller's job via ValidatePercents.
func Compute(p model.MacroProfile) (ComputedProfile, error) {
	base := BaselineSplit(p)
	cp := ComputedProfile{
		BaselineSplit: base,
		ProteinPct:    base.ProteinPct,
		CarbsPct:      base.CarbsPct,
		FatPct:        base.FatPct,
	}

	if p.CalorieOverride != nil {
		cp.TargetCalories = *p.CalorieOverride
		cp.CalorieOverridden = true
	} else {
		target, err := DefaultDailyCalorieTarget(p)
		if err != nil {
			return ComputedProfile{}, err
		}
		cp.TargetCalories = target
	}

	if p.ProteinPctOverride != nil {
		cp.ProteinPct = *p.ProteinPctOverride
		cp.PercentOverridden = true
	}
	if p.CarbsPctOverride != nil {
		cp.CarbsPct = *p.CarbsPctOverride
		cp.PercentOverridden = true
	}
	if p.FatPctOverride != nil {
		cp.FatPct = *p.FatPctOverride
		cp.PercentOverridden = true
	}

	cp.ProteinG = gramsFor(cp.TargetCalories, cp.ProteinPct, kcalPerGramProtein)
	cp.CarbsG = gramsFor(cp.TargetCalories, cp.CarbsPct, kcalPerGramCarbs)
	cp.FatG = gramsFor(cp.TargetCalories, cp.FatPct, kcalPerGramFat)
	return cp, nil
}

// ValidatePercents is the pure save-gate check: the three percents in
// effect must sum to exactly 100.
func ValidatePercents(proteinPct, carbsPct, fatPct int) error {
	if sum := proteinPct + carbsPct + fatPct; sum != 100 {
		return fmt.Errorf("macro percents must sum to 100, got %d", sum)
	}
	return nil
}

func gramsFor(calories, pct, kcalPerGram int) int {
	if pct < 0 || calories < 0 {
		return 0
	}
	return roundHalfUp(float64(calories) * float64(pct) / 100 / float64(kcalPerGram))
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// ValidActivityLevel reports whether the level has a multiplier.
func ValidActivityLevel(l model.ActivityLevel) bool {
	_, ok := activityMultipliers[l]
	return ok
}

// ValidExerciseLevel reports whether the level has a multiplier.
func ValidExerciseLevel(l model.ExerciseLevel) bool {
	_, ok := exerciseMultipliers[l]
	return ok
}
