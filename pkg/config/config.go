// Package config loads and saves mesh generation parameters.
//
// Parameter files mirror the CLI flag surface and come in JSON, YAML, or
// TOML; the codec is chosen by file extension. The loaded Params struct is
// the explicit, typed replacement for an ad hoc argument namespace: the CLI
// resolves flags against it once and then constructs the immutable stack.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/afanto/cylmesh/pkg/errors"
	"github.com/afanto/cylmesh/pkg/stack"
)

// Params holds the declarative description of one mesh generation run.
// ML, Radius, and Layers are required; Subdivisions defaults to 1 per layer
// and LayerNames may be omitted entirely.
type Params struct {
	ML           float64   `json:"ml" yaml:"ml" toml:"ml"`
	Radius       float64   `json:"radius" yaml:"radius" toml:"radius"`
	Layers       []float64 `json:"layers" yaml:"layers" toml:"layers"`
	Subdivisions []int     `json:"subdivisions,omitempty" yaml:"subdivisions,omitempty" toml:"subdivisions,omitempty"`
	LayerNames   []string  `json:"layer_names,omitempty" yaml:"layer_names,omitempty" toml:"layer_names,omitempty"`
}

// ToStack validates the parameters and builds the immutable layer stack.
// Subdivision and name counts must match the layer count when provided.
func (p Params) ToStack() (*stack.Stack, error) {
	if len(p.Subdivisions) != 0 && len(p.Subdivisions) != len(p.Layers) {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"number of subdivisions (%d) must match number of layers (%d)", len(p.Subdivisions), len(p.Layers))
	}
	if len(p.LayerNames) != 0 && len(p.LayerNames) != len(p.Layers) {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"number of layer names (%d) must match number of layers (%d)", len(p.LayerNames), len(p.Layers))
	}

	layers := make([]stack.Layer, len(p.Layers))
	for i, thickness := range p.Layers {
		layers[i] = stack.Layer{Thickness: thickness, Subdivisions: 1}
		if len(p.Subdivisions) != 0 {
			layers[i].Subdivisions = p.Subdivisions[i]
		}
		if len(p.LayerNames) != 0 {
			layers[i].Name = p.LayerNames[i]
		}
	}
	return stack.New(p.ML, p.Radius, layers)
}

// Merge fills the zero-valued fields of p from other, preserving anything
// already set. Used to let CLI flags override config file values.
func (p Params) Merge(other Params) Params {
	if p.ML == 0 {
		p.ML = other.ML
	}
	if p.Radius == 0 {
		p.Radius = other.Radius
	}
	if len(p.Layers) == 0 {
		p.Layers = other.Layers
	}
	if len(p.Subdivisions) == 0 {
		p.Subdivisions = other.Subdivisions
	}
	if len(p.LayerNames) == 0 {
		p.LayerNames = other.LayerNames
	}
	return p
}

// Load reads a parameter file, choosing the codec by extension
// (.json, .yaml/.yml, .toml).
func Load(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Params{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return Params{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	var p Params
	switch ext(path) {
	case ".json":
		err = json.Unmarshal(data, &p)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &p)
	case ".toml":
		err = toml.Unmarshal(data, &p)
	default:
		return Params{}, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported config format %q (use .json, .yaml, or .toml)", ext(path))
	}
	if err != nil {
		return Params{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return p, nil
}

// Save writes a parameter file, choosing the codec by extension and creating
// parent directories as needed.
func Save(p Params, path string) error {
	var (
		data []byte
		err  error
	)
	switch ext(path) {
	case ".json":
		data, err = json.MarshalIndent(p, "", "  ")
		data = append(data, '\n')
	case ".yaml", ".yml":
		data, err = yaml.Marshal(p)
	case ".toml":
		data, err = toml.Marshal(p)
	default:
		return errors.New(errors.ErrCodeInvalidFormat,
			"unsupported config format %q (use .json, .yaml, or .toml)", ext(path))
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create config directory")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write config %s", path)
	}
	return nil
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
