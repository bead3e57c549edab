package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "blocks.yaml"

// LoadBlocks loads the blocks configuration.
// Search order: customPath -> ~/.blocks/configs/blocks.yaml -> ./configs/blocks.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides
// the keys it sets.
func LoadBlocks(customPath string) (BlocksConfig, error) {
	cfg := DefaultBlocksConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
			cfg = DefaultBlocksConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
		cfg = DefaultBlocksConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBlocksYAML, &cfg); err != nil {
		return DefaultBlocksConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// DataDir returns ~/.blocks, where configs, the database and the log live.
// Falls back to the working directory when home is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".blocks")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blocks", "configs", filename)
}

// ApplyBlocksPreset modifies the config based on a difficulty preset.
func ApplyBlocksPreset(cfg *BlocksConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		cfg.Timing.CountdownMS = 0
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Board.Colors = 3
		cfg.Timing.CountdownMS = 90000
	case DifficultyHard:
		cfg.Board.Colors = 4
		cfg.Timing.CountdownMS = 45000
	}
}
