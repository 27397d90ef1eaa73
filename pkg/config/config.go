// Package config loads the CLI's run-time options from environment
// variables with fallback defaults.
package config

import (
	"os"
	"strconv"

	"nonogram-solver/pkg/constants"
)

// Config holds the options the cmd/nonosolve binary needs that aren't
// specific to one puzzle file: where to read the puzzle from and which
// solver behaviour to run with by default.
type Config struct {
	PuzzleFile string

	AllowBacktrack bool
	AllowProbe     bool
	ProbeLevel     int
	MergeProbe     bool
	AllowExhaust   bool
	CheckUnique    bool
	RatingPolicy   string
	ColourPolicy   string
}

// Load reads configuration from the environment, falling back to
// defaults for every option, the puzzle file path ("puzzle.json")
// included.
func Load() (*Config, error) {
	return &Config{
		PuzzleFile:     getEnv("PUZZLE_FILE", "puzzle.json"),
		AllowBacktrack: getBoolEnv("ALLOW_BACKTRACK", true),
		AllowProbe:     getBoolEnv("ALLOW_PROBE", true),
		ProbeLevel:     getIntEnv("PROBE_LEVEL", constants.DefaultProbeLevel),
		MergeProbe:     getBoolEnv("MERGE_PROBE", true),
		AllowExhaust:   getBoolEnv("ALLOW_EXHAUST", true),
		CheckUnique:    getBoolEnv("CHECK_UNIQUE", false),
		RatingPolicy:   getEnv("RATING_POLICY", constants.RatingSimple),
		ColourPolicy:   getEnv("COLOUR_POLICY", constants.ColourMax),
	}, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getIntEnv(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
