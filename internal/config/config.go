package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/bookbuilder/internal/foundation/errors"
)

// DefaultConfigFile is the config file name used when none is given.
const DefaultConfigFile = "book-config.json"

// Config represents the bookbuilder configuration. The file is JSON; it is
// decoded with the YAML decoder, which accepts JSON documents unchanged.
type Config struct {
	Output OutputConfig `yaml:"output" json:"output"`
	Book   BookConfig   `yaml:"book,omitempty" json:"book,omitempty"`
	Source SourceConfig `yaml:"source,omitempty" json:"source,omitempty"`
	Watch  WatchConfig  `yaml:"watch,omitempty" json:"watch,omitempty"`

	// path is the absolute location of the file the config was loaded from.
	path string
}

// BookConfig carries descriptive metadata. It does not affect publishing.
type BookConfig struct {
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Author      string `yaml:"author,omitempty" json:"author,omitempty"`
}

// SourceConfig locates the book sources. Root defaults to the directory
// containing the config file.
type SourceConfig struct {
	Root string `yaml:"root,omitempty" json:"root,omitempty"`
}

// Path returns the absolute path of the loaded config file, or "" when the
// config was built in memory.
func (c *Config) Path() string { return c.path }

// Load reads, expands, defaults and validates the configuration at configPath.
// Variables from .env and .env.local next to the config file are loaded first;
// existing process variables win.
func Load(configPath string) (*Config, error) {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "resolve config path").
			WithContext("path", configPath).Build()
	}

	loadEnvFiles(filepath.Dir(abs))

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithContext("path", configPath).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	cfg.path = abs
	switch {
	case cfg.Source.Root == "":
		cfg.Source.Root = filepath.Dir(abs)
	case !filepath.IsAbs(cfg.Source.Root):
		cfg.Source.Root = filepath.Join(filepath.Dir(abs), cfg.Source.Root)
	}

	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a configuration document without defaults or validation.
// The YAML decoder handles both JSON and YAML; strict JSON decoding is the
// fallback for JSON the YAML scanner rejects, such as tab-indented files.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	yerr := yaml.Unmarshal(data, &cfg)
	if yerr == nil {
		return &cfg, nil
	}
	cfg = Config{}
	if jerr := json.Unmarshal(data, &cfg); jerr == nil {
		return &cfg, nil
	}
	return nil, errors.WrapError(yerr, errors.CategoryConfig, "failed to parse config").Build()
}
