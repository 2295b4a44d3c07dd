package config

import (
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/bookbuilder/internal/foundation/errors"
)

// ValidateConfig validates the complete configuration.
func ValidateConfig(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	return v.validate()
}

type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateOutput(); err != nil {
		return err
	}
	return cv.validateWatch()
}

func (cv *configurationValidator) validateOutput() error {
	if cv.config.Output.Directory == "" {
		return errors.ValidationError("output.directory is required").
			WithContext("field", "output.directory").Build()
	}
	if cv.config.Output.Directory == "." {
		return errors.ValidationError("output.directory must not be the source root").
			WithContext("field", "output.directory").Build()
	}
	if filepath.Dir(cv.config.Output.Directory) == cv.config.Output.Directory {
		return errors.ValidationError("output.directory must not be a filesystem root").
			WithContext("field", "output.directory").
			WithContext("value", cv.config.Output.Directory).Build()
	}
	return nil
}

func (cv *configurationValidator) validateWatch() error {
	w := cv.config.Watch
	if d, err := time.ParseDuration(w.Debounce); err != nil || d < 0 {
		return errors.ValidationError("watch.debounce must be a non-negative duration").
			WithContext("field", "watch.debounce").
			WithContext("value", w.Debounce).Build()
	}
	if w.RebuildInterval != "" {
		d, err := time.ParseDuration(w.RebuildInterval)
		if err != nil || d < 0 {
			return errors.ValidationError("watch.rebuild_interval must be a non-negative duration").
				WithContext("field", "watch.rebuild_interval").
				WithContext("value", w.RebuildInterval).Build()
		}
		if d > 0 && d < time.Second {
			return errors.ValidationError("watch.rebuild_interval must be at least 1s").
				WithContext("field", "watch.rebuild_interval").
				WithContext("value", w.RebuildInterval).Build()
		}
	}
	for _, pattern := range w.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.ValidationError("invalid watch.ignore pattern").
				WithContext("field", "watch.ignore").
				WithContext("value", pattern).Build()
		}
	}
	return nil
}
