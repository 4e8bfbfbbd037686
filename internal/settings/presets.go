// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notes-press/pkg/types"
)

// DefaultPresetsFile is the preset library filename used when none is
// configured.
const DefaultPresetsFile = "presets.yaml"

// presetShape is the on-disk form of one preset. Invert is implied: every
// preset inverts, that being the tool's purpose.
type presetShape struct {
	Contrast   float64 `yaml:"contrast"`
	Brightness float64 `yaml:"brightness"`
	Sharpness  float64 `yaml:"sharpness"`
	Grayscale  bool    `yaml:"grayscale"`
}

// BuiltinPresets are the stock tuning profiles shipped with the tool.
func BuiltinPresets() map[string]types.Settings {
	return map[string]types.Settings{
		"print-clear": {
			Contrast: 1.3, Brightness: 1.05, Sharpness: 1.1, Grayscale: true, Invert: true,
		},
		"dark-notes-fix": {
			Contrast: 1.6, Brightness: 1.2, Sharpness: 1.0, Grayscale: true, Invert: true,
		},
		"read-on-screen": {
			Contrast: 1.1, Brightness: 1.1, Sharpness: 1.0, Grayscale: false, Invert: true,
		},
	}
}

// LoadPresets merges the user's preset library at path over the built-ins.
// A missing library file yields just the built-ins; an unreadable or
// malformed one is an error.
func LoadPresets(path string) (map[string]types.Settings, error) {
	presets := BuiltinPresets()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return presets, nil
		}
		return nil, fmt.Errorf("reading presets %s: %w", path, err)
	}

	var shapes map[string]presetShape
	if err := yaml.Unmarshal(data, &shapes); err != nil {
		return nil, fmt.Errorf("parsing presets %s: %w", path, err)
	}

	for name, p := range shapes {
		s := types.Settings{
			Contrast:   p.Contrast,
			Brightness: p.Brightness,
			Sharpness:  p.Sharpness,
			Grayscale:  p.Grayscale,
			Invert:     true,
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		presets[name] = s
	}
	return presets, nil
}

// SavePreset adds or replaces a named preset in the library at path,
// preserving the user's other presets. Built-ins are not written; they can
// be shadowed by saving under the same name.
func SavePreset(path, name string, s types.Settings) error {
	if name == "" {
		return fmt.Errorf("preset name must not be empty")
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("preset %q: %w", name, err)
	}

	shapes := map[string]presetShape{}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &shapes); err != nil {
			return fmt.Errorf("parsing presets %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading presets %s: %w", path, err)
	}

	shapes[name] = presetShape{
		Contrast:   s.Contrast,
		Brightness: s.Brightness,
		Sharpness:  s.Sharpness,
		Grayscale:  s.Grayscale,
	}

	data, err := yaml.Marshal(shapes)
	if err != nil {
		return fmt.Errorf("marshaling presets: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating presets directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PresetNames returns the merged preset names in sorted order.
func PresetNames(presets map[string]types.Settings) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
