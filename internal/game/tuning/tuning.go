// Package tuning loads the operational overrides a deployment may want
// to set without touching the map/loot config file: how long a player
// may idle before retirement, the default bag capacity fallback, and
// the scoreboard connection pool size. Grounded on the teacher's
// internal/sim/tuning package (same shape: a YAML file decoded with
// gopkg.in/yaml.v3, every field optional).
package tuning

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tuning holds the subset of operational knobs spec.md leaves as open
// questions. Every field is optional; a zero value means "use the
// built-in default".
type Tuning struct {
	DogRetirementTimeMs int `yaml:"dog_retirement_time_ms"`
	DefaultBagCapacity  int `yaml:"default_bag_capacity"`
	DBPoolSize          int `yaml:"db_pool_size"`
}

// Retirement converts DogRetirementTimeMs to a time.Duration, returning
// 0 when unset.
func (t Tuning) Retirement() time.Duration {
	return time.Duration(t.DogRetirementTimeMs) * time.Millisecond
}

// Load reads and parses the tuning file at path. A missing file is not
// an error: it returns the zero Tuning, so every override falls back
// to its default.
func Load(path string) (Tuning, error) {
	var t Tuning
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, fmt.Errorf("tuning: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning: %w", err)
	}
	return t, nil
}
