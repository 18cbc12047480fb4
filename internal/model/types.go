package model

import "time"

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type Goal string

const (
	GoalLoseWeight  Goal = "lose_weight"
	GoalBuildMuscle Goal = "build_muscle"
	GoalMaintain    Goal = "maintain"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// ExerciseLevel refines TDEE under the build-muscle goal only.
type ExerciseLevel string

const (
	ExerciseBeginner     ExerciseLevel = "beginner"
	ExerciseIntermediate ExerciseLevel = "intermediate"
	ExerciseAdvanced     ExerciseLevel = "advanced"
)

type DietaryPreference string

const (
	PreferenceBalanced    DietaryPreference = "balanced"
	PreferenceHighProtein DietaryPreference = "high_protein"
	PreferenceLowCarb     DietaryPreference = "low_carb"
	PreferenceKeto        DietaryPreference = "keto"
)

type Meal string

const (
	MealBreakfast Meal = "breakfast"
	MealLunch     Meal = "lunch"
	MealDinner    Meal = "dinner"
	MealSnack     Meal = "snack"
)

// Meals lists the meal buckets in presentation order.
func Meals() []Meal {
	return []Meal{MealBreakfast, MealLunch, MealDinner, MealSnack}
}

func (m Meal) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// UnitSystem only affects display conversion; stored and computed values
// are always metric (kg, cm, kcal).
type UnitSystem string

const (
	UnitsMetric   UnitSystem = "metric"
	UnitsImperial UnitSystem = "imperial"
)

// MacroProfile is the user's biometric and goal profile. Percent and
// calorie overrides are nil when the user has not customized them.
type MacroProfile struct {
	Sex                Sex
	Age                int
	HeightCM           float64
	WeightKG           float64
	Goal               Goal
	ActivityLevel      ActivityLevel
	ExerciseLevel      ExerciseLevel // build_muscle only, empty otherwise
	Preference         DietaryPreference
	TargetWeightKG     *float64
	ProteinPctOverride *int
	CarbsPctOverride   *int
	FatPctOverride     *int
	CalorieOverride    *int
	Units              UnitSystem
	UpdatedAt          time.Time
}

type FoodLogFood struct {
	ID       int64
	EntryID  int64
	Name     string
	Calories int
	ProteinG float64
	CarbsG   float64
	FatG     float64
	Position int
	Deleted  bool
}

type FoodLogEntry struct {
	ID        int64
	Meal      Meal
	LoggedAt  time.Time
	Deleted   bool
	Foods     []FoodLogFood
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ActivityLog struct {
	ID             int64
	Name           string
	CaloriesBurned int
	PerformedAt    time.Time
	Deleted        bool
	CreatedAt      time.Time
}

type WeightLog struct {
	ID         int64
	WeightKG   float64
	MeasuredAt time.Time
	Deleted    bool
	CreatedAt  time.Time
}
