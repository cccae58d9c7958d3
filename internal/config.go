package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"golang.org/x/mod/semver"

	"github.com/henrytill/vlnum-go/internal/errors"
	"github.com/henrytill/vlnum-go/internal/expr"
	"github.com/henrytill/vlnum-go/internal/vltype"
)

// ConfigVersion is the config format version written by DefaultConfig.
// Files must share its major version.
const ConfigVersion = "v1.0.0"

// TypeSpec describes a named cast target. Sized defaults to true.
type TypeSpec struct {
	Signed bool  `yaml:"signed"          json:"signed"`
	Sized  *bool `yaml:"sized,omitempty" json:"sized,omitempty"`
	Size   int   `yaml:"size"            json:"size"`
}

func (s TypeSpec) Type() vltype.Type {
	sized := s.Sized == nil || *s.Sized
	return vltype.New(s.Signed, sized, s.Size)
}

// Config holds evaluator settings. Params map names to expression text.
type Config struct {
	Version string              `yaml:"version"          json:"version"`
	Base    int                 `yaml:"base,omitempty"   json:"base,omitempty"`
	Types   map[string]TypeSpec `yaml:"types,omitempty"  json:"types,omitempty"`
	Params  map[string]string   `yaml:"params,omitempty" json:"params,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Version: ConfigVersion,
		Types:   make(map[string]TypeSpec),
		Params:  make(map[string]string),
	}
}

// LoadConfigFromFile loads a config from a YAML or JSON file.
// Tries YAML first, then falls back to JSON parsing
func LoadConfigFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()

	if err := yaml.Unmarshal(data, config); err != nil {
		config = DefaultConfig()
		if jsonErr := json.Unmarshal(data, config); jsonErr != nil {
			return nil, fmt.Errorf("failed to parse config file as YAML or JSON: YAML error: %v, JSON error: %v", err, jsonErr)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}

	return config, nil
}

func configError(value any, format string, args ...any) error {
	return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
		Value(value).
		Detail(format, args...).
		Build()
}

// reservedNames cannot be redefined as types.
var reservedNames = []string{"int", "real", "time", "signed", "unsigned"}

func (c *Config) Validate() error {
	version := c.Version
	if version != "" && !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return configError(c.Version, "invalid version %q", c.Version)
	}
	if want := semver.Major(ConfigVersion); semver.Major(version) != want {
		return configError(c.Version, "unsupported version %s, want %s.x", c.Version, want)
	}

	switch c.Base {
	case 0, 2, 8, 10, 16:
	default:
		return errors.New(errors.PhaseConfig, errors.KindIllegalBase).
			Value(c.Base).
			Detail("illegal base %d", c.Base).
			Build()
	}

	for name, spec := range c.Types {
		if slices.Contains(reservedNames, name) {
			return configError(name, "type name %s is reserved", name)
		}
		if spec.Size < 1 {
			return configError(name, "type %s has size %d", name, spec.Size)
		}
	}
	return nil
}

// Env builds an evaluator environment. Params are evaluated in name order,
// so a param may refer to any param whose name sorts before it.
func (c *Config) Env() (*expr.Env, error) {
	env := expr.NewEnv()
	for name, spec := range c.Types {
		env.Types[name] = spec.Type()
	}

	names := make([]string, 0, len(c.Params))
	for name := range c.Params {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		v, err := expr.EvalString(c.Params[name], env)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate param %s: %w", name, err)
		}
		env.Params[name] = v
	}
	return env, nil
}
