package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/macroday/macroday/internal/macro"
	"github.com/macroday/macroday/internal/model"
	"github.com/macroday/macroday/internal/stats"
	"github.com/macroday/macroday/internal/store"
)

type profileRequest struct {
	Sex                string   `json:"sex" validate:"required,oneof=male female"`
	Age                int      `json:"age" validate:"required,gte=1,lte=130"`
	HeightCM           float64  `json:"height_cm" validate:"required,gt=0"`
	WeightKG           float64  `json:"weight_kg" validate:"required,gt=0"`
	Goal               string   `json:"goal" validate:"required,oneof=lose_weight build_muscle maintain"`
	ActivityLevel      string   `json:"activity_level" validate:"required,oneof=sedentary light moderate active very_active"`
	ExerciseLevel      string   `json:"exercise_level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Preference         string   `json:"preference,omitempty" validate:"omitempty,oneof=balanced high_protein low_carb keto"`
	TargetWeightKG     *float64 `json:"target_weight_kg,omitempty" validate:"omitempty,gt=0"`
	ProteinPctOverride *int     `json:"protein_pct_override,omitempty" validate:"omitempty,gte=0,lte=100"`
	CarbsPctOverride   *int     `json:"carbs_pct_override,omitempty" validate:"omitempty,gte=0,lte=100"`
	FatPctOverride     *int     `json:"fat_pct_override,omitempty" validate:"omitempty,gte=0,lte=100"`
	CalorieOverride    *int     `json:"calorie_override,omitempty" validate:"omitempty,gt=0"`
	Units              string   `json:"units,omitempty" validate:"omitempty,oneof=metric imperial"`
}

func errorJSON(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

func errorMsg(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// requireProfile loads the saved profile or ends the request. Stats
// endpoints must not run before onboarding completes.
func (s *Server) requireProfile(c *gin.Context) *model.MacroProfile {
	p, err := s.store.Profile()
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return nil
	}
	if p == nil {
		errorMsg(c, http.StatusPreconditionFailed, "profile not set")
		return nil
	}
	return p
}

func (s *Server) getProfile(c *gin.Context) {
	p := s.requireProfile(c)
	if p == nil {
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) putProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}

	err := s.store.SaveProfile(store.ProfileInput{
		Sex:                model.Sex(req.Sex),
		Age:                req.Age,
		HeightCM:           req.HeightCM,
		WeightKG:           req.WeightKG,
		Goal:               model.Goal(req.Goal),
		ActivityLevel:      model.ActivityLevel(req.ActivityLevel),
		ExerciseLevel:      model.ExerciseLevel(req.ExerciseLevel),
		Preference:         model.DietaryPreference(req.Preference),
		TargetWeightKG:     req.TargetWeightKG,
		ProteinPctOverride: req.ProteinPctOverride,
		CarbsPctOverride:   req.CarbsPctOverride,
		FatPctOverride:     req.FatPctOverride,
		CalorieOverride:    req.CalorieOverride,
		Units:              model.UnitSystem(req.Units),
	})
	if err != nil {
		errorJSON(c, http.StatusUnprocessableEntity, err)
		return
	}

	p, err := s.store.Profile()
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	cp, err := macro.Compute(*p)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p, "macros": cp})
}

func (s *Server) getMacros(c *gin.Context) {
	p := s.requireProfile(c)
	if p == nil {
		return
	}
	cp, err := macro.Compute(*p)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, cp)
}

func parseDayParam(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		errorMsg(c, http.StatusBadRequest, "invalid "+name+" (expected YYYY-MM-DD)")
		return time.Time{}, false
	}
	return t, true
}

func beginningOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (s *Server) getDayStats(c *gin.Context) {
	p := s.requireProfile(c)
	if p == nil {
		return
	}
	day, ok := parseDayParam(c, "date", beginningOfDay(time.Now()))
	if !ok {
		return
	}
	cp, err := macro.Compute(*p)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	addBurned, err := s.store.AddBurnedToDailyTotal()
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	ds, err := stats.Day(s.store, cp, day, day.AddDate(0, 0, 1), addBurned)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, ds)
}

func (s *Server) getWeekStats(c *gin.Context) {
	p := s.requireProfile(c)
	if p == nil {
		return
	}
	start, ok := parseDayParam(c, "start", currentMonday())
	if !ok {
		return
	}
	cp, err := macro.Compute(*p)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	addBurned, err := s.store.AddBurnedToDailyTotal()
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	ws, err := stats.Week(s.store, cp, start, start.AddDate(0, 0, 7), addBurned)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

func (s *Server) getActivityStats(c *gin.Context) {
	from, ok := parseDayParam(c, "from", beginningOfDay(time.Now()).AddDate(0, 0, -6))
	if !ok {
		return
	}
	to, ok := parseDayParam(c, "to", beginningOfDay(time.Now()))
	if !ok {
		return
	}
	as, err := stats.ActivityPerDay(s.store, from, to.AddDate(0, 0, 1))
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, as)
}

func (s *Server) getWeightStats(c *gin.Context) {
	p := s.requireProfile(c)
	if p == nil {
		return
	}
	logs, err := s.store.ListWeightLogs(store.WeightFilter{
		FromDate: c.Query("from"),
		ToDate:   c.Query("to"),
	})
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	units, err := s.store.DisplayUnits(p.Units)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, stats.WeightSeries(logs, units))
}

// currentMonday is the default start of the week window: the Monday of
// the current week at local midnight.
func currentMonday() time.Time {
	now := beginningOfDay(time.Now())
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return now.AddDate(0, 0, -(weekday - 1))
}
