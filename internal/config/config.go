// Package config holds the tuning knobs for the rectification pipeline,
// replacing the teacher's project-state JSON blob with a narrower struct
// scoped to what the segment and layer drivers need.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config collects every numeric knob the core pipeline reads. All pixel-unit
// thresholds are relative to WorkingSize, the fixed square the segment
// driver operates on.
type Config struct {
	// WorkingSize is the side length of the square working image (spec
	// §4.8 fixes this at 400).
	WorkingSize int `json:"working_size"`

	// ClusterEpsDivisor divides the hull area to produce DBSCAN's eps
	// (spec §4.8: eps = sqrt(hull_area/15)).
	ClusterEpsDivisor float64 `json:"cluster_eps_divisor"`

	// ClusterMinPts is DBSCAN's minPts (spec default 5).
	ClusterMinPts int `json:"cluster_min_pts"`

	// MergeRadius is the lattice-extractor near-duplicate merge radius in
	// pixels (spec default 5).
	MergeRadius float64 `json:"merge_radius"`

	// OffsetDivisor divides the computed offset before applying it to the
	// bounding quad (spec §4.8: offset/4).
	OffsetDivisor float64 `json:"offset_divisor"`

	// LayerMaxIterations caps the layer driver's re-segment loop (spec
	// default 5).
	LayerMaxIterations int `json:"layer_max_iterations"`

	// LayerStopError ends the layer loop once the error metric drops
	// below this value (spec default 0.5).
	LayerStopError float64 `json:"layer_stop_error"`

	// DebugDir, if non-empty, enables the file-writing debug sink and
	// names the directory intermediate visualisations are written into.
	// Empty means debugging is off; this is the only place an
	// environment/flag value is allowed to influence behaviour, per the
	// design notes' ban on a process-wide debug flag reaching into
	// geometry code.
	DebugDir string `json:"debug_dir,omitempty"`
}

// Default returns the configuration spec.md's numeric thresholds assume.
func Default() Config {
	return Config{
		WorkingSize:        400,
		ClusterEpsDivisor:  15,
		ClusterMinPts:      5,
		MergeRadius:        5,
		OffsetDivisor:      4,
		LayerMaxIterations: 5,
		LayerStopError:     0.5,
	}
}

// Load reads a Config from a JSON file, defaulting any zero-valued field
// left unset in the file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
