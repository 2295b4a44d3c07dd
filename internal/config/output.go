package config

import "path/filepath"

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory     string `yaml:"directory" json:"directory"`
	BaseDirectory string `yaml:"base_directory,omitempty" json:"base_directory,omitempty"`
}

// ResolveOutputDir returns the effective output directory. An override (from
// the CLI) replaces output.directory. A relative result is joined onto
// output.base_directory when set, and then onto the source root.
func ResolveOutputDir(cfg *Config, override string) string {
	dir := cfg.Output.Directory
	if override != "" {
		dir = override
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	if cfg.Output.BaseDirectory != "" {
		dir = filepath.Join(cfg.Output.BaseDirectory, dir)
		if filepath.IsAbs(dir) {
			return dir
		}
	}
	if cfg.Source.Root != "" {
		return filepath.Join(cfg.Source.Root, dir)
	}
	return filepath.Clean(dir)
}
