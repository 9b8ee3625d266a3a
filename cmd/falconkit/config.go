package main

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"falcon-signer/pkg/params"
	"falcon-signer/pkg/rng"
)

// Config holds the settings that can come from the --config file.
// Command line flags take precedence.
type Config struct {
	Params  string  `yaml:"params"`
	Seed    string  `yaml:"seed"`
	PRNG    string  `yaml:"prng"`
	Samples int     `yaml:"samples"`
	Sigma   float64 `yaml:"sigma"`
	Mu      float64 `yaml:"mu"`
}

func defaultConfig() *Config {
	return &Config{
		Params:  params.Falcon512.Name,
		PRNG:    prngChaCha20,
		Samples: 10000,
		Sigma:   1.5,
	}
}

const (
	prngChaCha20 = "chacha20"
	prngLattigo  = "lattigo"
)

func readConfig(r io.Reader) (*Config, error) {
	cfg := defaultConfig()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}

func loadConfig(path string) (*Config, error) {
	if path == "" {
		return defaultConfig(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open config %s", path)
	}
	defer file.Close()
	return readConfig(file)
}

// configFromContext loads --config and applies the flags that were set.
func configFromContext(c *cli.Context) (*Config, error) {
	cfg, err := loadConfig(c.String(flagConfig))
	if err != nil {
		return nil, err
	}
	if c.IsSet(flagParams) {
		cfg.Params = c.String(flagParams)
	}
	if c.IsSet(flagSeed) {
		cfg.Seed = c.String(flagSeed)
	}
	if c.IsSet(flagPRNG) {
		cfg.PRNG = c.String(flagPRNG)
	}
	if c.IsSet(flagSamples) {
		cfg.Samples = c.Int(flagSamples)
	}
	if c.IsSet(flagSigma) {
		cfg.Sigma = c.Float64(flagSigma)
	}
	if c.IsSet(flagMu) {
		cfg.Mu = c.Float64(flagMu)
	}
	return cfg, nil
}

func (cfg *Config) paramSet() (params.Set, error) {
	return params.ByName(cfg.Params)
}

// randomness returns the system source when no seed is configured.
func (cfg *Config) randomness() (io.Reader, error) {
	if cfg.Seed == "" {
		return rng.System(), nil
	}
	seed, err := hex.DecodeString(cfg.Seed)
	if err != nil {
		return nil, errors.Wrap(err, "seed is not hex")
	}
	switch cfg.PRNG {
	case prngChaCha20:
		if len(seed) != rng.SeedLen {
			return nil, errors.Errorf("chacha20 seed must be %d bytes, got %d", rng.SeedLen, len(seed))
		}
		var s [rng.SeedLen]byte
		copy(s[:], seed)
		return rng.NewChaCha20(s), nil
	case prngLattigo:
		return rng.NewKeyed(seed)
	default:
		return nil, errors.Errorf("unknown prng %q", cfg.PRNG)
	}
}
