// Package config loads implementation-tuning knobs through a go.uber.org/config
// YAML provider. It never carries the simulation's domain inputs (truck period
// P and truck capacity C): those must come from the first stdin line, per
// the external interface contract, never from a file or the environment.
package config

import (
	"fmt"
	"os"

	"go.uber.org/config"
)

const (
	// EnvKey names the environment variable that selects which YAML file to
	// load (config/<env>.yaml).
	EnvKey = "PASTRYFORGE_ENV"

	defaultBlockSize  = 32
	defaultLoadFactor = 0.618
	defaultLogLevel   = "info"
)

// Env is the runtime environment name, used only to pick a config file.
type Env string

// LookupEnv reads PASTRYFORGE_ENV, defaulting to "development".
func LookupEnv() Env {
	env, exists := os.LookupEnv(EnvKey)
	if !exists || len(env) == 0 {
		return "development"
	}
	return Env(env)
}

// RuntimeConfig holds tunable knobs left to the implementation: hashmap
// growth block size, load factor, and log level.
// Zero-valued fields are replaced by the constants the original C reference
// implementation used (HASHMAP_BLOCK_SIZE=32, LOAD_FACTOR=0.618).
type RuntimeConfig struct {
	HashBlockSize  int     `yaml:"hash_block_size"`
	HashLoadFactor float64 `yaml:"hash_load_factor"`
	LogLevel       string  `yaml:"log_level"`
}

func (c RuntimeConfig) withDefaults() RuntimeConfig {
	if c.HashBlockSize <= 0 {
		c.HashBlockSize = defaultBlockSize
	}
	if c.HashLoadFactor <= 0 {
		c.HashLoadFactor = defaultLoadFactor
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	return c
}

// Load builds a config.Provider for env. A missing file is not an error --
// it simply means every knob falls back to its default, so the simulator
// runs identically whether or not a config file is present.
func Load(env Env) (config.Provider, error) {
	path := fmt.Sprintf("config/%s.yaml", env)
	if _, err := os.Stat(path); err != nil {
		return config.NewYAMLProviderFromBytes([]byte{})
	}
	return config.NewYAMLProviderFromFiles(path)
}

// Resolve populates a RuntimeConfig from provider's "runtime" key, applying
// defaults for anything left unset.
func Resolve(provider config.Provider) RuntimeConfig {
	var cfg RuntimeConfig
	_ = provider.Get("runtime").Populate(&cfg)
	return cfg.withDefaults()
}

// MustLoad loads and resolves env's RuntimeConfig in one step. A provider
// construction error falls back to every default, since no runtime knob here
// is essential to a correct run.
func MustLoad(env Env) RuntimeConfig {
	provider, err := Load(env)
	if err != nil {
		return RuntimeConfig{}.withDefaults()
	}
	return Resolve(provider)
}
