package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"propcalc/domain"
)

//go:embed defaults.yaml
var embeddedDefaults []byte

// Defaults are the input records the presentation layer pre-fills forms
// with. The engine never falls back to them on its own.
type Defaults struct {
	Mortgage  domain.MortgageInputs        `yaml:"mortgage" json:"mortgage"`
	Current   domain.CurrentPropertyInputs `yaml:"current" json:"current"`
	Candidate domain.NewPropertyInputs     `yaml:"candidate" json:"candidate"`
	Decision  domain.DecisionInputs        `yaml:"decision" json:"decision"`
	Screening domain.ScreeningThresholds   `yaml:"screening" json:"screening"`
}

// LoadDefaults parses path, or the embedded defaults when path is empty.
func LoadDefaults(path string) (*Defaults, error) {
	data := embeddedDefaults
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read defaults %s: %w", path, err)
		}
		data = b
	}
	return ParseDefaults(data)
}

// ParseDefaults decodes a defaults document. Unknown keys are rejected so a
// typo does not silently leave a field at zero.
func ParseDefaults(data []byte) (*Defaults, error) {
	var d Defaults
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse defaults: %w", err)
	}
	return &d, nil
}
