package pattern

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode parses a pattern document. YAML is used for .yaml/.yml names,
// JSON otherwise. The document is a plain list of {week, day, commits}.
func Decode(name string, data []byte) ([]Point, error) {
	var points []Point
	if isYAML(name) {
		if err := yaml.Unmarshal(data, &points); err != nil {
			return nil, fmt.Errorf("failed to parse pattern %s: %w", name, err)
		}
		return points, nil
	}
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("failed to parse pattern %s: %w", name, err)
	}
	return points, nil
}

// Encode renders points in the format chosen by name's extension.
func Encode(name string, points []Point) ([]byte, error) {
	if points == nil {
		points = []Point{}
	}
	if isYAML(name) {
		return yaml.Marshal(points)
	}
	b, err := json.MarshalIndent(points, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Load reads and validates a pattern file. Validation errors reject the
// file; warnings are returned alongside the points.
func Load(path string) ([]Point, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read pattern: %w", err)
	}
	points, err := Decode(path, data)
	if err != nil {
		return nil, nil, err
	}
	v := Validate(points)
	if !v.IsValid {
		return nil, v.Warnings, &ValidationError{Path: path, Errors: v.Errors}
	}
	return points, v.Warnings, nil
}

// Save writes points to path, creating parent directories.
func Save(path string, points []Point) error {
	data, err := Encode(path, points)
	if err != nil {
		return fmt.Errorf("failed to encode pattern: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create pattern directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write pattern: %w", err)
	}
	return nil
}

// ValidationError reports every problem found in a pattern file.
type ValidationError struct {
	Path   string
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("pattern %s is invalid:\n  %s", e.Path, strings.Join(e.Errors, "\n  "))
}

func isYAML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
