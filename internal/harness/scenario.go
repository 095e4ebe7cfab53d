// Package harness runs YAML-described operation sequences against a
// throwaway database and snapshots the results for golden comparison.
//
// Scenarios pin the clock and the ID sequence, so a scenario's snapshot is
// byte-identical on every run. Golden files live in testdata; regenerate
// them with:
//
//	go test ./internal/harness -update
package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one deterministic conformance scenario.
type Scenario struct {
	// Name uniquely identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description,omitempty"`

	// Clock is the starting epoch-relative second of the pinned clock.
	Clock int64 `yaml:"clock"`

	// IDs is the fixed ID sequence handed out to writes, in order. A
	// scenario writing more documents than it lists IDs for fails fast.
	IDs []string `yaml:"ids"`

	// DeviceID, when set, is injected into written documents.
	DeviceID string `yaml:"device_id,omitempty"`

	// Steps is the operation sequence to execute.
	Steps []Step `yaml:"steps"`
}

// Step is one operation. Exactly one field must be set; Advance moves the
// pinned clock and produces no trace entry.
type Step struct {
	Write     map[string]any `yaml:"write,omitempty"`
	Advance   int64          `yaml:"advance,omitempty"`
	Get       string         `yaml:"get,omitempty"`
	Filter    map[string]any `yaml:"filter,omitempty"`
	Cleanup   int64          `yaml:"cleanup,omitempty"`
	Delete    string         `yaml:"delete,omitempty"`
	DeleteAll bool           `yaml:"delete_all,omitempty"`
	Len       bool           `yaml:"len,omitempty"`
}

// LoadScenario parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: missing name", path)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s: no steps", path)
	}
	return &s, nil
}
