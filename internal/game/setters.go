package game

import (
	"driftline/internal/config"
	"driftline/internal/track"
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var arenaOverride *track.Override

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = "" // Use config default
	}
}

// SetArenaOverride installs a hand-authored arena document used by
// every race created through the registry.
func SetArenaOverride(ov *track.Override) {
	arenaOverride = ov
}
