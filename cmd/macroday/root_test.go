package macroday

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return buf.String()
}

func TestRootHelp(t *testing.T) {
	out := runCommand(t, "--help")
	if out == "" {
		t.Fatalf("expected help output")
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macroday.db")
	for i := 0; i < 2; i++ {
		buf := &bytes.Buffer{}
		rootCmd.SetOut(buf)
		rootCmd.SetErr(buf)
		rootCmd.SetArgs([]string{"--db", path, "init"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("init run %d failed: %v", i+1, err)
		}
	}
}

func TestConfigUnitsChangesWeightStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macroday.db")

	runCommand(t, "--db", path, "profile", "set",
		"--sex", "female", "--age", "30", "--height", "165", "--weight", "70",
		"--goal", "lose_weight", "--activity", "sedentary")
	runCommand(t, "--db", path, "weight", "add", "--value", "90.718474")

	out := runCommand(t, "--db", path, "stats", "weight")
	if !strings.Contains(out, "90.7 kg") {
		t.Fatalf("expected metric weight output, got:\n%s", out)
	}

	runCommand(t, "--db", path, "config", "set", "--units", "imperial")
	out = runCommand(t, "--db", path, "stats", "weight")
	if !strings.Contains(out, "200.0 lb") {
		t.Fatalf("expected imperial weight output after config set, got:\n%s", out)
	}
}

func TestProfileLogStatsFlow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macroday.db")

	out := runCommand(t, "--db", path, "profile", "set",
		"--sex", "female", "--age", "30", "--height", "165", "--weight", "70",
		"--goal", "lose_weight", "--activity", "sedentary")
	if !strings.Contains(out, "Daily target: 1204 kcal") {
		t.Fatalf("unexpected profile output:\n%s", out)
	}

	out = runCommand(t, "--db", path, "log", "add",
		"--meal", "lunch", "--name", "chicken bowl", "--calories", "450",
		"--protein", "35", "--carbs", "40", "--fat", "12")
	if !strings.Contains(out, "Added lunch entry") {
		t.Fatalf("unexpected log output:\n%s", out)
	}

	out = runCommand(t, "--db", path, "stats", "day")
	if !strings.Contains(out, "Consumed: 450 kcal") {
		t.Fatalf("unexpected stats output:\n%s", out)
	}
	if !strings.Contains(out, "lunch 450") {
		t.Fatalf("expected lunch bucket in stats output:\n%s", out)
	}
}
