// Package keywords holds the static classification configuration: the
// ordered party, topic and leader keyword sets and the display colors the
// dashboard uses. The configuration is loaded once at startup and never
// mutated, so it is safe to share across concurrent classification calls.
package keywords

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ipolls/internal/domain/comment"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// fallbackColor is used for labels with no configured color.
const fallbackColor = "#CCCCCC"

// Category is one classification target with its ordered keyword list.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Config is the full keyword configuration.
//
// Categories are ordered lists, not maps: the party classifier breaks
// score ties in favor of the earliest configured party, and the leader
// classifier returns the first configured leader with a hit. That makes
// configuration order part of the contract.
type Config struct {
	Parties []Category        `yaml:"parties"`
	Topics  []Category        `yaml:"topics"`
	Leaders []Category        `yaml:"leaders"`
	Colors  map[string]string `yaml:"colors"`
}

// Load reads the keyword configuration from path, or returns the
// embedded defaults when path is empty.
func Load(path string) (*Config, error) {
	data := defaultsYAML
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading keyword config: %w", err)
		}
		data = fileData
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing keyword config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Color returns the display color for a label, falling back to a neutral
// gray for labels with no configured color.
func (c *Config) Color(label string) string {
	if color, ok := c.Colors[label]; ok {
		return color
	}
	return fallbackColor
}

func (c *Config) validate() error {
	groups := map[string][]Category{
		"parties": c.Parties,
		"topics":  c.Topics,
		"leaders": c.Leaders,
	}

	for group, categories := range groups {
		if len(categories) == 0 {
			return fmt.Errorf("keyword config: %s must not be empty", group)
		}
		seen := make(map[string]bool, len(categories))
		for _, cat := range categories {
			if cat.Name == "" {
				return fmt.Errorf("keyword config: %s contains an unnamed category", group)
			}
			if cat.Name == comment.Undefined {
				return fmt.Errorf("keyword config: %s category %q collides with the no-match sentinel", group, cat.Name)
			}
			if seen[cat.Name] {
				return fmt.Errorf("keyword config: %s category %q is duplicated", group, cat.Name)
			}
			seen[cat.Name] = true
			if len(cat.Keywords) == 0 {
				return fmt.Errorf("keyword config: %s category %q has no keywords", group, cat.Name)
			}
			for _, kw := range cat.Keywords {
				if kw == "" {
					return fmt.Errorf("keyword config: %s category %q has an empty keyword", group, cat.Name)
				}
			}
		}
	}

	return nil
}
