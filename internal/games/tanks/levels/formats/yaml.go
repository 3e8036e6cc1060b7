package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Enemies int    `yaml:"enemies,omitempty"`
	Map     string `yaml:"map"`
}

// ParseYAML parses a YAML level file. fallbackID is used when the file has
// no id.
func ParseYAML(fallbackID string, data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.Enemies < 0 {
		return Level{}, fmt.Errorf("negative enemy quota %d", yl.Enemies)
	}

	layout, err := ParseGrid(yl.Map)
	if err != nil {
		return Level{}, err
	}

	level := Level{
		ID:      yl.ID,
		Name:    yl.Name,
		Enemies: yl.Enemies,
		Layout:  layout,
	}
	if level.ID == "" {
		level.ID = fallbackID
	}
	if level.Name == "" {
		level.Name = level.ID
	}
	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".txt"}
}
