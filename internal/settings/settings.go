// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package settings persists enhancement settings and named presets.
// Implements: prd005-settings.
//
// The settings file is a flat JSON mapping with keys contrast, brightness,
// sharpness (numbers) and grayscale (boolean). Unknown keys are ignored and
// missing keys take the documented defaults, so files written by older or
// newer versions of the tool keep loading.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/pdiddy/notes-press/pkg/types"
)

// DefaultFile is the settings filename used when none is configured.
const DefaultFile = "settings.json"

// schemaJSON is the persisted settings shape. Extra keys are tolerated;
// known keys must have the right type and factors must stay in range.
const schemaJSON = `{
	"type": "object",
	"properties": {
		"contrast":   {"type": "number", "minimum": 0.1, "maximum": 3.0},
		"brightness": {"type": "number", "minimum": 0.1, "maximum": 3.0},
		"sharpness":  {"type": "number", "minimum": 0.1, "maximum": 3.0},
		"grayscale":  {"type": "boolean"}
	}
}`

var schema = jsonschema.MustCompileString("settings.json", schemaJSON)

// Load reads a settings file. A missing file is not an error: the
// documented defaults are returned, matching how the tool behaves on first
// run. A present but invalid file is an error; a half-understood settings
// file must not silently drive an export.
func Load(path string) (types.Settings, error) {
	s := types.DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings %s: %w", path, err)
	}

	if err := validate(data); err != nil {
		return s, fmt.Errorf("settings %s: %w", path, err)
	}

	// Unmarshal over the defaults so missing keys keep their values.
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return s, nil
}

// Save writes the settings to path in the persisted schema shape.
func Save(path string, s types.Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// validate checks raw settings JSON against the schema.
func validate(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("not valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		// The validator's multi-line detail is noise in a status line.
		msg := strings.SplitN(err.Error(), "\n", 2)[0]
		return fmt.Errorf("schema violation: %s", msg)
	}
	return nil
}
