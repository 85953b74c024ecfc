package appconf

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"railroute.dev/internal/matcher"
	"railroute.dev/internal/resolver"
)

// Tuning is the optional YAML file carrying scoring weights and resolver options.
// Keys left out keep their default value.
type Tuning struct {
	Matcher  matcher.Weights  `yaml:"matcher"`
	Resolver resolver.Options `yaml:"resolver"`
}

// DefaultTuning returns the stock weights and options.
func DefaultTuning() Tuning {
	return Tuning{
		Matcher:  matcher.DefaultWeights(),
		Resolver: resolver.DefaultOptions(),
	}
}

// LoadTuning reads and validates a tuning file. An empty path yields the defaults.
func LoadTuning(path string) (Tuning, error) {
	if path == "" {
		return DefaultTuning(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("error reading tuning file: %w", err)
	}
	return ParseTuning(data)
}

// ParseTuning decodes YAML over the defaults and validates the result.
func ParseTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("error parsing tuning file: %w", err)
	}
	if err := validator.New().Struct(t); err != nil {
		return Tuning{}, fmt.Errorf("invalid tuning: %w", err)
	}
	return t, nil
}
