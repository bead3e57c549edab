package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultsValid(t *testing.T) {
	if err := DefaultBlocksConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	var cfg BlocksConfig
	if err := yaml.Unmarshal(defaultBlocksYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if cfg != DefaultBlocksConfig() {
		t.Errorf("embedded yaml = %+v\nwant %+v", cfg, DefaultBlocksConfig())
	}
}

func TestTimingDurations(t *testing.T) {
	timing := DefaultBlocksConfig().Timing
	if got := timing.Step().Milliseconds(); got != 100 {
		t.Errorf("Step() = %dms, want 100ms", got)
	}
	if got := timing.MaxFrame().Milliseconds(); got != 83 {
		t.Errorf("MaxFrame() = %dms, want 83ms", got)
	}
	if got := timing.Countdown().Seconds(); got != 60 {
		t.Errorf("Countdown() = %vs, want 60s", got)
	}
	if got := timing.LevelFinish().Milliseconds(); got != 1500 {
		t.Errorf("LevelFinish() = %dms, want 1500ms", got)
	}
}

// isolate points the user and local config lookups at empty directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadBlocksEmbedded(t *testing.T) {
	isolate(t)

	cfg, err := LoadBlocks("")
	if err != nil {
		t.Fatalf("LoadBlocks() error = %v", err)
	}
	if cfg != DefaultBlocksConfig() {
		t.Errorf("LoadBlocks() = %+v, want defaults", cfg)
	}
}

func TestLoadBlocksCustomPathOverridesKeys(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "board:\n  columns: 6\n  colors: 5\ntiming:\n  countdown_ms: 0\n")

	cfg, err := LoadBlocks(path)
	if err != nil {
		t.Fatalf("LoadBlocks() error = %v", err)
	}
	if cfg.Board.Columns != 6 || cfg.Board.Colors != 5 || cfg.Timing.CountdownMS != 0 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Keys the file does not set keep their defaults
	if cfg.Board.Rows != 10 || cfg.Timing.StepMS != 100 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadBlocksUserDir(t *testing.T) {
	isolate(t)
	home, _ := os.UserHomeDir()
	writeFile(t, filepath.Join(home, ".blocks", "configs", ConfigFile), "board:\n  rows: 7\n")

	cfg, err := LoadBlocks("")
	if err != nil {
		t.Fatalf("LoadBlocks() error = %v", err)
	}
	if cfg.Board.Rows != 7 {
		t.Errorf("rows = %d, want 7 from user config", cfg.Board.Rows)
	}
}

func TestLoadBlocksLocalDir(t *testing.T) {
	isolate(t)
	writeFile(t, filepath.Join("configs", ConfigFile), "cell:\n  width: 2\n")

	cfg, err := LoadBlocks("")
	if err != nil {
		t.Fatalf("LoadBlocks() error = %v", err)
	}
	if cfg.Cell.Width != 2 {
		t.Errorf("cell width = %d, want 2 from local config", cfg.Cell.Width)
	}
}

func TestLoadBlocksErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	if _, err := LoadBlocks(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "board: [not, a, map")
	if _, err := LoadBlocks(bad); err == nil {
		t.Error("malformed yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "board:\n  colors: 9\n")
	if _, err := LoadBlocks(invalid); err == nil || !strings.Contains(err.Error(), "colors") {
		t.Errorf("LoadBlocks() error = %v, want colors error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*BlocksConfig)
		want   string
	}{
		{"empty board", func(c *BlocksConfig) { c.Board.Columns = 0 }, "board must be"},
		{"no colors", func(c *BlocksConfig) { c.Board.Colors = 0 }, "colors"},
		{"too many colors", func(c *BlocksConfig) { c.Board.Colors = MaxColors + 1 }, "colors"},
		{"zero cell", func(c *BlocksConfig) { c.Cell.Height = 0 }, "cell"},
		{"zero step", func(c *BlocksConfig) { c.Timing.StepMS = 0 }, "step_ms"},
		{"zero frame", func(c *BlocksConfig) { c.Timing.MaxFrameMS = 0 }, "max_frame_ms"},
		{"negative countdown", func(c *BlocksConfig) { c.Timing.CountdownMS = -1 }, "countdown_ms"},
		{"zero target", func(c *BlocksConfig) { c.Scoring.TargetBase = 0 }, "target_base"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBlocksConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := DefaultBlocksConfig()
	cfg.Board.Colors = 0
	cfg.Timing.StepMS = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) || len(joined.Unwrap()) != 2 {
		t.Errorf("Validate() = %v, want two joined errors", err)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"insane", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestApplyBlocksPreset(t *testing.T) {
	cfg := DefaultBlocksConfig()
	ApplyBlocksPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled || cfg.Timing.CountdownMS != 0 {
		t.Errorf("fixed preset: %+v", cfg)
	}
	if !IsFixedPreset(DifficultyFixed) || IsFixedPreset(DifficultyHard) {
		t.Error("IsFixedPreset mismatch")
	}

	cfg = DefaultBlocksConfig()
	ApplyBlocksPreset(&cfg, DifficultyHard)
	if cfg.Board.Colors != 4 || cfg.Timing.CountdownMS != 45000 || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: %+v", cfg)
	}

	cfg = DefaultBlocksConfig()
	ApplyBlocksPreset(&cfg, DifficultyEasy)
	if cfg.Board.Colors != 3 || cfg.Timing.CountdownMS != 90000 || cfg.Difficulty.InitialLevel != 0 {
		t.Errorf("easy preset: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("easy preset invalid: %v", err)
	}
}

func TestDifficultyLevel(t *testing.T) {
	cfg := DefaultBlocksConfig().Difficulty
	dm := NewDifficultyManager(cfg)

	if got := dm.Level(0, 0); got != 0 {
		t.Errorf("Level(0) = %v, want 0", got)
	}
	if got := dm.Level(5, 0); got != 0.5 {
		t.Errorf("Level(5) = %v, want 0.5", got)
	}
	if got := dm.Level(50, 0); got != 1 {
		t.Errorf("Level(50) = %v, want 1 (clamped)", got)
	}

	cfg.InitialLevel = 0.3
	if got := NewDifficultyManager(cfg).Level(0, 0); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("Level(0) from 0.3 = %v", got)
	}
	cfg.InitialLevel = 0

	cfg.Progression = ProgressionConfig{Type: "score", MaxAt: 1000}
	dm = NewDifficultyManager(cfg)
	if got := dm.Level(0, 500); got != 0.5 {
		t.Errorf("score Level(500) = %v, want 0.5", got)
	}

	cfg.Enabled = false
	dm = NewDifficultyManager(cfg)
	if dm.IsEnabled() {
		t.Error("IsEnabled() = true with difficulty disabled")
	}
	if got := dm.Level(0, 1000); got != 0 {
		t.Errorf("disabled Level = %v, want initial level 0", got)
	}
}

func TestDifficultyColors(t *testing.T) {
	dm := NewDifficultyManager(DefaultBlocksConfig().Difficulty)

	tests := []struct {
		base, levels, want int
	}{
		{3, 0, 3},
		{3, 5, 4},
		{3, 10, 5},
		{4, 10, MaxColors},
	}
	for _, tt := range tests {
		if got := dm.Colors(tt.base, tt.levels, 0); got != tt.want {
			t.Errorf("Colors(%d, %d) = %d, want %d", tt.base, tt.levels, got, tt.want)
		}
	}
}

func TestDifficultyCountdown(t *testing.T) {
	cfg := DefaultBlocksConfig().Difficulty
	dm := NewDifficultyManager(cfg)

	if got := dm.CountdownMS(60000, 5, 0); got != 50000 {
		t.Errorf("CountdownMS(levels 5) = %d, want 50000", got)
	}
	if got := dm.CountdownMS(60000, 10, 0); got != 40000 {
		t.Errorf("CountdownMS(levels 10) = %d, want 40000", got)
	}
	if got := dm.CountdownMS(0, 10, 0); got != 0 {
		t.Errorf("endless CountdownMS = %d, want 0", got)
	}

	cfg.Scaling.CountdownReduction = 100000
	dm = NewDifficultyManager(cfg)
	if got := dm.CountdownMS(60000, 10, 0); got != 15000 {
		t.Errorf("CountdownMS floor = %d, want 15000", got)
	}

	cfg.Progression.Type = "none"
	dm = NewDifficultyManager(cfg)
	if got := dm.CountdownMS(60000, 10, 0); got != 60000 {
		t.Errorf("no progression CountdownMS = %d, want 60000", got)
	}
}
