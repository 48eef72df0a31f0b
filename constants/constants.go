package constants

import (
	"os"
	"strconv"
)

const (
	DefaultTempo    = 120
	DefaultTimebase = 480
	DefaultOutput   = "output.mid"

	// SMF stores metric ticks in 15 bits
	MaxTimebase = 0x7FFF
)

func GetTimebase() int {
	if v, err := strconv.Atoi(os.Getenv("MIDITOK_TIMEBASE")); err == nil && v > 0 && v <= MaxTimebase {
		return v
	}
	return DefaultTimebase
}

func GetOutputPath() string {
	path := os.Getenv("MIDITOK_OUTPUT")
	if path != "" {
		return path
	}
	return DefaultOutput
}

// GetConfigPath returns the config file path, empty when none is configured.
func GetConfigPath() string {
	return os.Getenv("MIDITOK_CONFIG")
}
