package config

import (
	"encoding/json"
	"os"

	"git.home.luguber.info/inful/bookbuilder/internal/foundation/errors"
)

// Example returns the configuration written by `bookbuilder init`.
func Example() Config {
	return Config{
		Output: OutputConfig{Directory: "_site_src"},
		Book: BookConfig{
			Title:       "My Book",
			Description: "A book written in Markdown",
		},
		Watch: WatchConfig{
			Debounce: defaultDebounce,
			Ignore:   []string{"**/*.tmp"},
		},
	}
}

// Init writes an example configuration file. An existing file is only
// replaced when force is set.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).Build()
	}

	data, err := json.MarshalIndent(Example(), "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	data = append(data, '\n')

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).Build()
	}
	return nil
}
