package viewerconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Path is the default viewer preferences file, relative to the process
// working directory.
const Path = "config/viewer.json"

// Prefs holds viewer preferences persisted across runs: window shape, overlay
// toggles, the ordered dataset sources and the morph timing.
type Prefs struct {
	WindowWidth  int32 `json:"window_width"`
	WindowHeight int32 `json:"window_height"`
	ShowFPS      bool  `json:"show_fps"`
	ShowProgress bool  `json:"show_progress"`

	// DatasetSources are tried in order; each entry is a file path or an
	// http(s) URL to the catalog CSV, optionally gzip-compressed.
	DatasetSources []string `json:"dataset_sources"`

	MorphDelaySec    float32 `json:"morph_delay_sec"`
	MorphDurationSec float32 `json:"morph_duration_sec"`
	CameraRadius     float32 `json:"camera_radius"`
}

// Default returns the built-in preferences: a 1280x720 window, overlays on,
// the bundled dataset, and the 5s-delay 5s-long morph.
func Default() Prefs {
	return Prefs{
		WindowWidth:  1280,
		WindowHeight: 720,
		ShowFPS:      true,
		ShowProgress: true,
		DatasetSources: []string{
			"assets/latent_stars_1.csv.gz",
			"../../assets/latent_stars_1.csv.gz",
		},
		MorphDelaySec:    5,
		MorphDurationSec: 5,
		CameraRadius:     120,
	}
}

// Load reads preferences from path. If the file is missing or invalid,
// returns Default() and does not create a file.
func Load(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
