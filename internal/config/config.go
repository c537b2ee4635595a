// Package config loads the YAML configuration of the classical command-line
// tool: the default alphabet, the log level and named cipher profiles.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/vdparikh/classical"
	"gopkg.in/yaml.v3"
)

const (
	// LocalFile is looked up in the working directory.
	LocalFile = "classical.yml"

	envAlphabet = "CLASSICAL_ALPHABET"
	envLogLevel = "CLASSICAL_LOG_LEVEL"
)

// Config is the resolved tool configuration.
type Config struct {
	// Alphabet is used by profiles and flags that do not name one.
	Alphabet string `yaml:"alphabet"`
	LogLevel string `yaml:"log_level"`

	Profiles map[string]classical.Params `yaml:"profiles"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Alphabet: "latin",
		LogLevel: "info",
		Profiles: map[string]classical.Params{
			"caesar": {Cipher: classical.NameAffine, A: 1, B: 3},
			"lemon":  {Cipher: classical.NameVigenere, Key: "LEMON"},
			"zigzag": {Cipher: classical.NameRailFence, Rails: 3},
		},
	}
}

// Load resolves the configuration from defaults, one configuration file and
// environment overrides. The file is the first one found of:
//  1. path, when non-empty (it must exist)
//  2. ./classical.yml
//  3. ~/.classical/config.yml
//
// CLASSICAL_ALPHABET and CLASSICAL_LOG_LEVEL have the highest precedence.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return Config{}, err
		}
	} else {
		for _, candidate := range searchPaths() {
			err := loadFile(&cfg, candidate)
			if err == nil {
				break
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func searchPaths() []string {
	paths := []string{LocalFile}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".classical", "config.yml"))
	}
	return paths
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Parse(cfg, data); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Parse decodes YAML data over cfg. Keys absent from data keep their current
// values and unknown keys are rejected.
func Parse(cfg *Config, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if val := strings.TrimSpace(os.Getenv(envAlphabet)); val != "" {
		cfg.Alphabet = val
	}
	if val := strings.TrimSpace(os.Getenv(envLogLevel)); val != "" {
		cfg.LogLevel = val
	}
}

// Validate checks the log level, the default alphabet and every profile.
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := classical.ResolveAlphabet(c.Alphabet); err != nil {
		return fmt.Errorf("alphabet %q: %w", c.Alphabet, err)
	}
	for _, name := range c.ProfileNames() {
		if _, err := c.Profile(name); err != nil {
			return err
		}
	}
	return nil
}

// Level parses LogLevel. An empty level means info.
func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Profile returns the named cipher parameters with the default alphabet
// filled in. The parameters are checked by building the cipher once.
func (c Config) Profile(name string) (classical.Params, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return classical.Params{}, fmt.Errorf("unknown profile %q", name)
	}
	if p.Alphabet == "" {
		p.Alphabet = c.Alphabet
	}
	if _, err := classical.New(p); err != nil {
		return classical.Params{}, fmt.Errorf("profile %q: %w", name, err)
	}
	return p, nil
}

// ProfileNames lists the profiles in sorted order.
func (c Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
