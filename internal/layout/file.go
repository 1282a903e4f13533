package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk layout document.
type File struct {
	Placements []Placement `yaml:"placements" json:"placements"`
}

// Parse decodes a layout document. JSON input may be either a File object
// or a bare placement array (the export manifest).
func Parse(data []byte, format string) ([]Placement, error) {
	var placements []Placement

	switch format {
	case "json":
		trimmed := strings.TrimSpace(string(data))
		if strings.HasPrefix(trimmed, "[") {
			if err := json.Unmarshal(data, &placements); err != nil {
				return nil, fmt.Errorf("decoding layout json: %w", err)
			}
		} else {
			var f File
			if err := json.Unmarshal(data, &f); err != nil {
				return nil, fmt.Errorf("decoding layout json: %w", err)
			}
			placements = f.Placements
		}
	case "yaml", "yml":
		var f File
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decoding layout yaml: %w", err)
		}
		placements = f.Placements
	default:
		return nil, fmt.Errorf("unknown layout format %q", format)
	}

	if len(placements) == 0 {
		return nil, fmt.Errorf("layout has no placements")
	}
	if err := ValidateAll(placements); err != nil {
		return nil, err
	}
	return placements, nil
}

// FormatOf returns the layout format for a file name.
func FormatOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// Load reads a layout file.
func Load(path string) ([]Placement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	placements, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return placements, nil
}

// Marshal encodes placements as a YAML layout document.
func Marshal(placements []Placement) ([]byte, error) {
	return yaml.Marshal(File{Placements: placements})
}

// Save writes placements to a YAML layout file.
func Save(path string, placements []Placement) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := Marshal(placements)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
