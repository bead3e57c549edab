package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the default blocks configuration.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Board: BoardConfig{
			Columns:   10,
			Rows:      10,
			Colors:    3,
			CarryOver: false,
		},
		Cell: CellConfig{
			Width:  4,
			Height: 2,
		},
		Timing: TimingConfig{
			StepMS:        100,
			MaxFrameMS:    83, // 5 frames at 60 FPS
			CountdownMS:   60000,
			LevelFinishMS: 1500,
		},
		Scoring: ScoringConfig{
			TargetBase: 500,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "levels",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				ExtraColors:        2,
				CountdownReduction: 20000,
			},
		},
	}
}
