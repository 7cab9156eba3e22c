package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/jacksmith/worldwise/internal/model"
	"gopkg.in/yaml.v3"
)

const cityTemplateHeader = `# New city. Lines starting with '#' are ignored.
# date accepts YYYY-MM-DD or RFC 3339; position is in degrees.
# Save and close the editor to create the city, or empty the file to abort.
`

// ErrEditAborted is returned when the user saves an empty document.
var ErrEditAborted = errors.New("aborted: empty document")

// EditInEditor opens content in $EDITOR and returns modified content.
// The suffix is used for the temporary file (e.g., ".yaml" for syntax highlighting).
// Returns error if EDITOR/VISUAL not set or editor exits non-zero.
func EditInEditor(content []byte, suffix string) ([]byte, error) {
	editor := getEditor()
	if editor == "" {
		return nil, fmt.Errorf("EDITOR not set. Set it or pass the city fields as flags instead of -i")
	}

	tmpFile, err := os.CreateTemp("", "worldwise-*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := runEditor(editor, tmpPath); err != nil {
		return nil, err
	}

	result, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	return result, nil
}

// CityTemplate returns the YAML document the user edits to create seed.
func CityTemplate(seed model.City) ([]byte, error) {
	seed.ID = model.NoCity
	data, err := model.MarshalCityFile(&model.CityFile{Cities: []model.City{seed}})
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(cityTemplateHeader)
	buf.Write(data)
	return buf.Bytes(), nil
}

// ParseCityTemplate reads back an edited template. The document must hold
// exactly one city, which must be a valid new city.
func ParseCityTemplate(data []byte) (model.City, error) {
	if len(bytes.TrimSpace(stripComments(data))) == 0 {
		return model.City{}, ErrEditAborted
	}

	var cf model.CityFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return model.City{}, &ValidationError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	if len(cf.Cities) != 1 {
		return model.City{}, &ValidationError{Field: "cities", Message: fmt.Sprintf("expected exactly one city, got %d", len(cf.Cities))}
	}

	city := cf.Cities[0]
	city.ID = model.NoCity
	if err := model.ValidateNewCity(city); err != nil {
		return model.City{}, &ValidationError{Message: err.Error()}
	}
	return city, nil
}

// EditNewCity opens a template for seed in the editor and returns the city
// the user saved.
func EditNewCity(seed model.City) (model.City, error) {
	template, err := CityTemplate(seed)
	if err != nil {
		return model.City{}, err
	}
	edited, err := EditInEditor(template, ".yaml")
	if err != nil {
		return model.City{}, err
	}
	return ParseCityTemplate(edited)
}

func stripComments(data []byte) []byte {
	var out bytes.Buffer
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.Bytes()
}

// getEditor returns the editor command from environment.
// Checks VISUAL first (for graphical editors), then EDITOR.
func getEditor() string {
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	return os.Getenv("EDITOR")
}

// runEditor executes the editor with the given file path.
func runEditor(editor, path string) error {
	// Split editor into command and args (e.g., "code --wait")
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("empty editor command")
	}

	args := append(parts[1:], path)
	cmd := exec.Command(parts[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run editor: %w", err)
	}
	return nil
}
