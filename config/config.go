package config

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"
	"tlog.app/go/errors"

	"github.com/dustin-ward/dustinw-qc/compiler/back"
)

type (
	Config struct {
		MaxRounds         int     `yaml:"max_rounds"`
		NativeTolerance   float64 `yaml:"native_tolerance"`
		StrictConvergence bool    `yaml:"strict_convergence"`

		// Verbosity is a comma separated list of tlog topics, like "dump_round,dump_pass".
		Verbosity string `yaml:"verbosity"`
	}
)

func Default() Config {
	return Config{
		MaxRounds: back.DefaultMaxRounds,
	}
}

// Load reads a yaml file on top of Default.
// Unknown keys are an error.
func Load(name string) (c Config, err error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return c, errors.Wrap(err, "read file")
	}

	c, err = Parse(data)
	if err != nil {
		return c, errors.Wrap(err, "%v", name)
	}

	return c, nil
}

func Parse(data []byte) (c Config, err error) {
	c = Default()

	d := yaml.NewDecoder(bytes.NewReader(data))
	d.KnownFields(true)

	err = d.Decode(&c)
	if err != nil && err != io.EOF { // empty document
		return c, errors.Wrap(err, "decode yaml")
	}

	err = c.Validate()
	if err != nil {
		return c, err
	}

	return c, nil
}

func (c Config) Validate() error {
	if c.MaxRounds < 1 {
		return errors.New("max_rounds must be at least 1: %d", c.MaxRounds)
	}

	if c.NativeTolerance < 0 {
		return errors.New("negative native_tolerance: %v", c.NativeTolerance)
	}

	return nil
}

func (c Config) Options() []back.Option {
	return []back.Option{
		back.WithMaxRounds(c.MaxRounds),
		back.WithNativeTolerance(c.NativeTolerance),
		back.WithStrictConvergence(c.StrictConvergence),
	}
}
