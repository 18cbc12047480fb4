package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macroday/macroday/internal/db"
	"github.com/macroday/macroday/internal/logger"
	"github.com/macroday/macroday/internal/model"
	"github.com/macroday/macroday/internal/server"
	"github.com/macroday/macroday/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.ApplyMigrations(conn))

	st := store.New(conn)
	srv := httptest.NewServer(server.New(st, logger.NewNop()).Router())
	t.Cleanup(srv.Close)
	return srv, st
}

func saveTestProfile(t *testing.T, st *store.Store) {
	t.Helper()
	require.NoError(t, st.SaveProfile(store.ProfileInput{
		Sex:           model.SexFemale,
		Age:           30,
		HeightCM:      165,
		WeightKG:      70,
		Goal:          model.GoalLoseWeight,
		ActivityLevel: model.ActivitySedentary,
	}))
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	var body map[string]string
	status := getJSON(t, srv.URL+"/healthz", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestStatsRequireProfile(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/v1/profile", "/v1/macros", "/v1/stats/day", "/v1/stats/week"} {
		var body map[string]string
		status := getJSON(t, srv.URL+path, &body)
		assert.Equal(t, http.StatusPreconditionFailed, status, path)
		assert.Equal(t, "profile not set", body["error"], path)
	}
}

func TestPutProfileValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	put := func(payload map[string]any) int {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		req, err := http.NewRequest(http.MethodPut, srv.URL+"/v1/profile", bytes.NewReader(raw))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	base := map[string]any{
		"sex":            "female",
		"age":            30,
		"height_cm":      165,
		"weight_kg":      70,
		"goal":           "lose_weight",
		"activity_level": "sedentary",
	}

	assert.Equal(t, http.StatusOK, put(base))

	bad := map[string]any{}
	for k, v := range base {
		bad[k] = v
	}
	bad["sex"] = "unknown"
	assert.Equal(t, http.StatusBadRequest, put(bad))

	// Overrides that break the 100 percent sum are rejected by the save
	// gate, not silently accepted.
	overridden := map[string]any{}
	for k, v := range base {
		overridden[k] = v
	}
	overridden["protein_pct_override"] = 90
	assert.Equal(t, http.StatusUnprocessableEntity, put(overridden))
}

func TestGetMacros(t *testing.T) {
	srv, st := newTestServer(t)
	saveTestProfile(t, st)

	var body struct {
		TargetCalories int `json:"target_calories"`
		ProteinG       int `json:"protein_g"`
	}
	status := getJSON(t, srv.URL+"/v1/macros", &body)
	require.Equal(t, http.StatusOK, status)
	// 1420.25 * 1.2 - 500 rounds to 1204.
	assert.Equal(t, 1204, body.TargetCalories)
	assert.Greater(t, body.ProteinG, 0)
}

func TestDayStats(t *testing.T) {
	srv, st := newTestServer(t)
	saveTestProfile(t, st)

	noon := time.Date(time.Now().Year(), time.Now().Month(), time.Now().Day(), 12, 0, 0, 0, time.Local)
	_, err := st.AddFoodEntry(store.FoodEntryInput{
		Meal:     model.MealLunch,
		LoggedAt: noon,
		Foods:    []store.FoodInput{{Name: "chicken bowl", Calories: 450, ProteinG: 35, CarbsG: 40, FatG: 12}},
	})
	require.NoError(t, err)
	_, err = st.AddActivityLog(store.ActivityInput{Name: "Running", CaloriesBurned: 200, PerformedAt: noon})
	require.NoError(t, err)

	var body struct {
		Consumed  int  `json:"calories_consumed"`
		Burned    int  `json:"calories_burned"`
		Remaining int  `json:"calories_remaining"`
		HasData   bool `json:"has_data"`
		Lunch     struct {
			Calories int `json:"calories"`
		} `json:"lunch"`
	}
	status := getJSON(t, srv.URL+"/v1/stats/day?date="+noon.Format("2006-01-02"), &body)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, body.HasData)
	assert.Equal(t, 450, body.Consumed)
	assert.Equal(t, 200, body.Burned)
	assert.Equal(t, 450, body.Lunch.Calories)
	// target 1204 - 450 + 200 burned back.
	assert.Equal(t, 954, body.Remaining)
}

func TestDayStatsRejectsBadDate(t *testing.T) {
	srv, st := newTestServer(t)
	saveTestProfile(t, st)

	status := getJSON(t, srv.URL+"/v1/stats/day?date=31-12-2025", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestWeightStats(t *testing.T) {
	srv, st := newTestServer(t)
	saveTestProfile(t, st)

	for i, w := range []float64{83.1, 82.4, 81.9} {
		_, err := st.AddWeightLog(store.WeightInput{
			Weight:     w,
			Unit:       "kg",
			MeasuredAt: time.Now().AddDate(0, 0, i-3),
		})
		require.NoError(t, err)
	}

	var body struct {
		Points []struct {
			Weight float64 `json:"weight"`
		} `json:"points"`
		Min  float64 `json:"min_weight"`
		Max  float64 `json:"max_weight"`
		Unit string  `json:"unit"`
	}
	status := getJSON(t, srv.URL+"/v1/stats/weight", &body)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body.Points, 3)
	assert.Equal(t, 81.9, body.Min)
	assert.Equal(t, 83.1, body.Max)
	assert.Equal(t, "kg", body.Unit)
}

func TestWeightStatsHonorsUnitsSetting(t *testing.T) {
	srv, st := newTestServer(t)
	saveTestProfile(t, st) // metric profile

	_, err := st.AddWeightLog(store.WeightInput{
		Weight:     90.718474,
		Unit:       "kg",
		MeasuredAt: time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)
	require.NoError(t, st.SetSetting(store.SettingUnits, "imperial"))

	var body struct {
		Points []struct {
			Weight float64 `json:"weight"`
		} `json:"points"`
		Unit string `json:"unit"`
	}
	status := getJSON(t, srv.URL+"/v1/stats/weight", &body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "lb", body.Unit)
	require.Len(t, body.Points, 1)
	assert.InDelta(t, 200, body.Points[0].Weight, 0.001)
}
