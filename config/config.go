// Package config loads the optional database configuration file.
//
// The file is a single JSON object with three recognized options:
// device_id, utc_offset and cleanup_seconds. Anything missing or malformed
// silently falls back to its default - configuration problems never stop a
// database from opening.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/tetherdb/tether/epoch"
)

// Config holds the recognized options in resolved form.
type Config struct {
	// DeviceID is injected into new documents. Defaults to a
	// platform-derived name like "linux-device".
	DeviceID string

	// UTCOffsetMinutes is the fixed offset applied when formatting
	// timestamps, already parsed from the "±HH:MM" file form. Defaults
	// to 0 (+00:00).
	UTCOffsetMinutes int

	// CleanupSeconds is the default retention horizon for cleanup runs
	// that do not pass one explicitly. Zero means unset.
	CleanupSeconds int64
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DeviceID: fmt.Sprintf("%s-device", runtime.GOOS),
	}
}

// fileConfig is the raw JSON shape of the config file. cleanup_seconds is
// decoded leniently: legacy files store it as either a number or a string.
type fileConfig struct {
	DeviceID       string          `json:"device_id"`
	UTCOffset      string          `json:"utc_offset"`
	CleanupSeconds json.RawMessage `json:"cleanup_seconds"`
}

// Load reads the config file at path. Every failure mode - missing file,
// unparsable JSON, malformed option values - degrades to defaults for the
// affected options. Load never returns an error.
func Load(path string) Config {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return cfg
	}

	if raw.DeviceID != "" {
		cfg.DeviceID = raw.DeviceID
	}
	if minutes, err := epoch.ParseOffset(raw.UTCOffset); err == nil {
		cfg.UTCOffsetMinutes = minutes
	}
	if secs, ok := parseCleanupSeconds(raw.CleanupSeconds); ok {
		cfg.CleanupSeconds = secs
	}

	return cfg
}

func parseCleanupSeconds(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err == nil && n > 0 {
		return n, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var parsed int64
		if _, err := fmt.Sscanf(s, "%d", &parsed); err == nil && parsed > 0 {
			return parsed, true
		}
	}

	return 0, false
}
