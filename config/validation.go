package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/grovetools/joystick/errors"
)

// Validate checks if the configuration is valid. It expects SetDefaults to
// have run, so empty values are errors here.
func (c *Config) Validate() error {
	if c.Device.Index != nil && *c.Device.Index < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "device.index cannot be negative").
			WithDetail("index", *c.Device.Index)
	}

	if err := validateSampling(&c.Sampling); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid sampling configuration")
	}

	if err := validatePrefix(c.Export.Prefix); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid export configuration")
	}

	for name, keys := range map[string][]string{
		"next": c.Keys.Next,
		"stop": c.Keys.Stop,
		"help": c.Keys.Help,
	} {
		if err := validateKeys(name, keys); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid key bindings")
		}
	}

	return nil
}

func validateSampling(s *SamplingConfig) error {
	d, err := time.ParseDuration(s.Interval)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("sampling.interval %q is not a duration", s.Interval)).
			WithDetail("interval", s.Interval)
	}
	if d <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "sampling.interval must be positive").
			WithDetail("interval", s.Interval)
	}
	if s.Capacity < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "sampling.capacity cannot be negative").
			WithDetail("capacity", s.Capacity)
	}
	return nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return errors.New(errors.ErrCodeInvalidInput, "export.prefix cannot be empty")
	}
	// Both separators are rejected so a config is portable across platforms.
	if strings.ContainsAny(prefix, `/\`) {
		return errors.New(errors.ErrCodeInvalidInput, "export.prefix cannot contain path separators").
			WithDetail("prefix", prefix)
	}
	return nil
}

func validateKeys(name string, keys []string) error {
	if len(keys) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("keys.%s cannot be empty", name))
	}
	for _, k := range keys {
		if k == "" {
			return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("keys.%s contains an empty key", name))
		}
	}
	return nil
}
