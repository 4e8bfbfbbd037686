// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notes-press/pkg/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, types.DefaultSettings(), s)
	assert.True(t, s.Invert, "defaults must invert")
}

func TestLoad_FullFile(t *testing.T) {
	path := writeFile(t, "settings.json",
		`{"contrast": 1.3, "brightness": 1.05, "sharpness": 1.1, "grayscale": true}`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.3, s.Contrast)
	assert.Equal(t, 1.05, s.Brightness)
	assert.Equal(t, 1.1, s.Sharpness)
	assert.True(t, s.Grayscale)
	assert.True(t, s.Invert)
}

func TestLoad_MissingKeysUseDefaults(t *testing.T) {
	path := writeFile(t, "settings.json", `{"contrast": 2.0}`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, s.Contrast)
	assert.Equal(t, 1.0, s.Brightness)
	assert.Equal(t, 1.0, s.Sharpness)
	assert.False(t, s.Grayscale)
}

func TestLoad_UnknownKeysIgnored(t *testing.T) {
	path := writeFile(t, "settings.json",
		`{"contrast": 1.5, "last_folder": "/home/p", "presets": {"x": {}}}`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, s.Contrast)
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong type", `{"contrast": "high"}`},
		{"grayscale not boolean", `{"grayscale": 1}`},
		{"factor out of range", `{"brightness": 9.5}`},
		{"factor below range", `{"sharpness": 0.01}`},
		{"not json", `contrast = 1.2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "settings.json", tt.content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	want := types.Settings{Contrast: 1.6, Brightness: 1.2, Sharpness: 1.0, Grayscale: true, Invert: true}

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSave_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	err := Save(path, types.Settings{Contrast: 0, Brightness: 1, Sharpness: 1})
	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "invalid settings must not be written")
}

func TestLoadPresets_BuiltinsOnly(t *testing.T) {
	presets, err := LoadPresets(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"dark-notes-fix", "print-clear", "read-on-screen"}, PresetNames(presets))
	pc := presets["print-clear"]
	assert.Equal(t, 1.3, pc.Contrast)
	assert.True(t, pc.Grayscale)
	assert.True(t, pc.Invert)
}

func TestLoadPresets_UserLibraryMergesAndShadows(t *testing.T) {
	path := writeFile(t, "presets.yaml", `
exam-pack:
  contrast: 1.4
  brightness: 1.0
  sharpness: 1.2
  grayscale: true
print-clear:
  contrast: 2.0
  brightness: 1.0
  sharpness: 1.0
  grayscale: false
`)

	presets, err := LoadPresets(path)
	require.NoError(t, err)

	assert.Contains(t, presets, "exam-pack")
	assert.Equal(t, 2.0, presets["print-clear"].Contrast, "user preset shadows built-in")
	assert.True(t, presets["exam-pack"].Invert, "loaded presets always invert")
}

func TestLoadPresets_RejectsBadFactors(t *testing.T) {
	path := writeFile(t, "presets.yaml", `
broken:
  contrast: 7.0
  brightness: 1.0
  sharpness: 1.0
`)
	_, err := LoadPresets(path)
	assert.Error(t, err)
}

func TestSavePreset_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	s := types.Settings{Contrast: 1.4, Brightness: 1.1, Sharpness: 1.2, Grayscale: true, Invert: true}

	require.NoError(t, SavePreset(path, "exam-pack", s))
	// A second preset must not clobber the first.
	require.NoError(t, SavePreset(path, "other", types.DefaultSettings()))

	presets, err := LoadPresets(path)
	require.NoError(t, err)
	assert.Equal(t, s, presets["exam-pack"])
	assert.Contains(t, presets, "other")
}

func TestSavePreset_RequiresName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	assert.Error(t, SavePreset(path, "", types.DefaultSettings()))
}
