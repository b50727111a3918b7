// Package config loads the dataset manifest driving a batch run.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/medgraph/orphaflat/pkg/orphaflat/internalerr"
)

// DefaultLanguage selects language-tagged text when the manifest does
// not say otherwise.
const DefaultLanguage = "en"

// Manifest lists the dump files to flatten and where their tabular
// outputs go.
type Manifest struct {
	Language string    `yaml:"language"`
	Datasets []Dataset `yaml:"datasets"`
}

// Dataset binds one input artifact to one output artifact.
type Dataset struct {
	Kind   string `yaml:"kind"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// Load reads and parses a manifest from a YAML file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Language == "" {
		m.Language = DefaultLanguage
	}
	return &m, nil
}

// Validate checks every dataset entry against the known conversion
// kinds and requires both paths.
func (m *Manifest) Validate(known func(kind string) bool) error {
	if len(m.Datasets) == 0 {
		return fmt.Errorf("%w: manifest lists no datasets", internalerr.ErrInvalidConfig)
	}
	for i, d := range m.Datasets {
		if !known(d.Kind) {
			return fmt.Errorf("%w: dataset %d kind %q", internalerr.ErrUnknownDataset, i, d.Kind)
		}
		if d.Input == "" || d.Output == "" {
			return fmt.Errorf("%w: dataset %d (%s) needs both input and output", internalerr.ErrInvalidConfig, i, d.Kind)
		}
	}
	return nil
}
