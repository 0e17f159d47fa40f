// Package config loads the YAML run configuration: the sampler controls
// (nos, nod, nob), the random seed, where the data lives and where results go.
package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/CraigKelly/bayesreg/model"
	"github.com/CraigKelly/bayesreg/rand"
	"github.com/CraigKelly/bayesreg/sampler"
)

// ErrInvalidConfig is the cause of every validation error
var ErrInvalidConfig = sampler.ErrInvalidConfig

// DefaultSeed keeps runs reproducible when no seed is configured
const DefaultSeed = 42

// Config holds all run configuration.
type Config struct {
	// Sampler controls
	NOS int `yaml:"nos"` // retained samples
	NOD int `yaml:"nod"` // thinning interval
	NOB int `yaml:"nob"` // burn-in

	Seed             int64    `yaml:"seed"`
	SeedKey          []uint64 `yaml:"seed_key"` // replaces seed when non-empty
	ProgressInterval int      `yaml:"progress_interval"`

	// Inputs and outputs
	Column string          `yaml:"column"`
	Data   model.DataPaths `yaml:"data"`
	Output string          `yaml:"output"`
}

// Default returns a config with every optional field filled in. The sampler
// controls are left at zero: they must always be given.
func Default() *Config {
	return &Config{
		Seed:             DefaultSeed,
		ProgressInterval: sampler.DefaultProgressInterval,
		Column:           model.DefaultColumn,
		Output:           model.DefaultOutput,
	}
}

// Load reads, parses and validates the config file
func Load(filename string) (*Config, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not READ config from %s", filename)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Config file %s", filename)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "Could not PARSE config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Sampling is the view of the config the sampler needs
func (c *Config) Sampling() sampler.Config {
	return sampler.Config{
		Samples: c.NOS,
		Thin:    c.NOD,
		BurnIn:  c.NOB,
	}
}

// Generator starts the random stream for a run: from seed_key when one is
// given, otherwise from seed.
func (c *Config) Generator() (*rand.Generator, error) {
	if len(c.SeedKey) > 0 {
		return rand.NewGeneratorSlice(c.SeedKey)
	}
	return rand.NewGenerator(c.Seed)
}

// Validate returns an error naming the first invalid field
func (c *Config) Validate() error {
	if err := c.Sampling().Check(); err != nil {
		return err
	}

	if c.ProgressInterval < 0 {
		return errors.Wrapf(ErrInvalidConfig, "progress_interval must not be negative, got %d", c.ProgressInterval)
	}
	if len(c.Column) < 1 {
		return errors.Wrap(ErrInvalidConfig, "column must not be empty")
	}
	if len(c.Output) < 1 {
		return errors.Wrap(ErrInvalidConfig, "output must not be empty")
	}

	return nil
}

// ValidateData checks that every data path is present. It is separate from
// Validate so the sampler controls can be checked without any data.
func (c *Config) ValidateData() error {
	paths := []struct {
		field string
		path  string
	}{
		{"data.sales", c.Data.Sales},
		{"data.display", c.Data.Display},
		{"data.coupon", c.Data.Coupon},
		{"data.price", c.Data.Price},
	}
	for _, p := range paths {
		if len(p.path) < 1 {
			return errors.Wrapf(ErrInvalidConfig, "%s is required", p.field)
		}
	}
	return nil
}
