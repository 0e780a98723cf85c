package palette

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type seed struct {
	Name   string `yaml:"name"`
	Emojis string `yaml:"emojis"`
}

// defaults returns the seed palettes in file order.
func defaults() ([]seed, error) {
	var seeds []seed
	if err := yaml.Unmarshal(defaultsYAML, &seeds); err != nil {
		return nil, fmt.Errorf("palette defaults: %w", err)
	}
	return seeds, nil
}
