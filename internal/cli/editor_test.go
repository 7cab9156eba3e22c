package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jacksmith/worldwise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEditor(t *testing.T) {
	// VISUAL takes precedence
	t.Setenv("VISUAL", "code --wait")
	t.Setenv("EDITOR", "vim")
	assert.Equal(t, "code --wait", getEditor())

	// EDITOR is used when VISUAL is empty
	t.Setenv("VISUAL", "")
	assert.Equal(t, "vim", getEditor())

	// Empty when both are unset
	t.Setenv("EDITOR", "")
	assert.Equal(t, "", getEditor())
}

func TestEditInEditorNoEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	_, err := EditInEditor([]byte("test"), ".yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EDITOR not set")
}

func TestEditInEditorWithTrueCommand(t *testing.T) {
	// 'true' exits 0 without touching the file
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "true")

	content := []byte("test content")
	result, err := EditInEditor(content, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, content, result)
}

func TestEditInEditorNonZeroExit(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "false")

	_, err := EditInEditor([]byte("test"), ".yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "editor exited with status")
}

// writeEditorScript installs a shell script as $EDITOR that replaces the
// edited file with body.
func writeEditorScript(t *testing.T, body string) {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "content")
	require.NoError(t, os.WriteFile(src, []byte(body), 0644))

	script := filepath.Join(dir, "editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\ncat '"+src+"' > \"$1\"\n"), 0755))

	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", script)
}

func TestEditInEditorContentModified(t *testing.T) {
	writeEditorScript(t, "modified\n")

	result, err := EditInEditor([]byte("original"), ".yaml")
	require.NoError(t, err)
	assert.Equal(t, "modified\n", string(result))
}

func TestRunEditorEmptyCommand(t *testing.T) {
	err := runEditor("", "/tmp/test.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty editor command")
}

func TestRunEditorNonExistentCommand(t *testing.T) {
	err := runEditor("nonexistent-editor-command-12345", "/tmp/test.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run editor")
}

func TestCityTemplateRoundTrip(t *testing.T) {
	seed := model.City{
		ID:       7,
		CityName: "Lisbon",
		Emoji:    "🇵🇹",
		Date:     model.NewVisitDate(time.Date(2027, 10, 31, 0, 0, 0, 0, time.UTC)),
		Position: model.Position{Lat: 38.7, Lng: -9.1},
	}

	data, err := CityTemplate(seed)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# New city.")
	assert.NotContains(t, string(data), "id: 7")

	city, err := ParseCityTemplate(data)
	require.NoError(t, err)
	assert.Equal(t, model.NoCity, city.ID)
	assert.Equal(t, "Lisbon", city.CityName)
	assert.Equal(t, seed.Position, city.Position)
	assert.True(t, seed.Date.Equal(city.Date.Time))
}

func TestParseCityTemplate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "only comments",
			input:   "# nothing here\n\n",
			wantErr: ErrEditAborted.Error(),
		},
		{
			name:    "invalid yaml",
			input:   "cities: [\n",
			wantErr: "invalid YAML",
		},
		{
			name:    "two cities",
			input:   "cities:\n  - city_name: A\n  - city_name: B\n",
			wantErr: "expected exactly one city, got 2",
		},
		{
			name:    "missing name",
			input:   "cities:\n  - date: 2027-10-31\n    position: {lat: 1, lng: 2}\n",
			wantErr: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCityTemplate([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEditNewCity(t *testing.T) {
	writeEditorScript(t, "cities:\n  - city_name: Porto\n    emoji: \"🇵🇹\"\n    date: 2027-06-24\n    position: {lat: 41.15, lng: -8.61}\n")

	city, err := EditNewCity(model.City{CityName: "placeholder"})
	require.NoError(t, err)
	assert.Equal(t, "Porto", city.CityName)
	assert.Equal(t, 41.15, city.Position.Lat)
	assert.Equal(t, 2027, city.Date.Year())
}
