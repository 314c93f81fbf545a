package config

import (
	"fmt"
	"time"

	"github.com/grovetools/joystick/trace"
	"github.com/mitchellh/mapstructure"
)

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

// Defaults applied by SetDefaults.
const (
	DefaultVersion     = "1.0"
	DefaultDeviceIndex = 1
	DefaultInterval    = "50ms"
	DefaultCapacity    = trace.DefaultCapacity
	DefaultExportDir   = "."
	DefaultPrefix      = "joystick"
)

// Default key bindings for the recorder commands.
var (
	DefaultNextKeys = []string{"n"}
	DefaultStopKeys = []string{"q", "ctrl+c"}
	DefaultHelpKeys = []string{"?"}
)

// DeviceConfig selects the joystick to sample.
type DeviceConfig struct {
	Index *int `yaml:"index,omitempty" toml:"index,omitempty" json:"index,omitempty" jsonschema:"minimum=0,description=Joystick index as enumerated by the driver (default: 1)"`
}

// SamplingConfig controls the sampling cadence and retention.
type SamplingConfig struct {
	Interval string `yaml:"interval,omitempty" toml:"interval,omitempty" json:"interval,omitempty" jsonschema:"description=Time between samples as a Go duration (default: 50ms)"`
	Capacity int    `yaml:"capacity,omitempty" toml:"capacity,omitempty" json:"capacity,omitempty" jsonschema:"minimum=0,description=Samples retained per trace before the oldest are dropped (default: 1000000)"`
}

// ExportConfig controls where traces are written on stop.
type ExportConfig struct {
	Dir     string `yaml:"dir,omitempty" toml:"dir,omitempty" json:"dir,omitempty" jsonschema:"description=Directory the trace files are written to (default: current directory)"`
	Prefix  string `yaml:"prefix,omitempty" toml:"prefix,omitempty" json:"prefix,omitempty" jsonschema:"description=File name prefix; trace i is written to <prefix><i>.csv (default: joystick)"`
	Session *bool  `yaml:"session,omitempty" toml:"session,omitempty" json:"session,omitempty" jsonschema:"description=Group the files of each run in a timestamped joystick_reader_<date> directory"`
}

// KeysConfig overrides the recorder key bindings. Each entry is a key name
// as reported by the terminal, e.g. "n", "ctrl+c", "esc".
type KeysConfig struct {
	Next []string `yaml:"next,omitempty" toml:"next,omitempty" json:"next,omitempty" jsonschema:"description=Keys that start a new trace"`
	Stop []string `yaml:"stop,omitempty" toml:"stop,omitempty" json:"stop,omitempty" jsonschema:"description=Keys that stop recording and export"`
	Help []string `yaml:"help,omitempty" toml:"help,omitempty" json:"help,omitempty" jsonschema:"description=Keys that toggle the help view"`
}

// Config is the joystick.yml configuration.
type Config struct {
	Version  string         `yaml:"version" toml:"version" json:"version" jsonschema:"description=Configuration version (e.g. '1.0')"`
	Device   DeviceConfig   `yaml:"device,omitempty" toml:"device,omitempty" json:"device" jsonschema:"description=Input device selection"`
	Sampling SamplingConfig `yaml:"sampling,omitempty" toml:"sampling,omitempty" json:"sampling" jsonschema:"description=Sampling cadence and retention"`
	Export   ExportConfig   `yaml:"export,omitempty" toml:"export,omitempty" json:"export" jsonschema:"description=Trace export"`
	Keys     KeysConfig     `yaml:"keys,omitempty" toml:"keys,omitempty" json:"keys" jsonschema:"description=Recorder key bindings"`

	// Extensions captures all other top-level keys, such as `logging` and `tui`.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Device.Index == nil {
		index := DefaultDeviceIndex
		c.Device.Index = &index
	}
	if c.Sampling.Interval == "" {
		c.Sampling.Interval = DefaultInterval
	}
	if c.Sampling.Capacity == 0 {
		c.Sampling.Capacity = DefaultCapacity
	}
	if c.Export.Dir == "" {
		c.Export.Dir = DefaultExportDir
	}
	if c.Export.Prefix == "" {
		c.Export.Prefix = DefaultPrefix
	}
	if c.Export.Session == nil {
		session := false
		c.Export.Session = &session
	}
	if len(c.Keys.Next) == 0 {
		c.Keys.Next = append([]string(nil), DefaultNextKeys...)
	}
	if len(c.Keys.Stop) == 0 {
		c.Keys.Stop = append([]string(nil), DefaultStopKeys...)
	}
	if len(c.Keys.Help) == 0 {
		c.Keys.Help = append([]string(nil), DefaultHelpKeys...)
	}
}

// DeviceIndex returns the configured joystick index.
func (c *Config) DeviceIndex() int {
	if c.Device.Index == nil {
		return DefaultDeviceIndex
	}
	return *c.Device.Index
}

// SampleInterval returns the parsed sampling interval. An unparseable value
// falls back to the default; Validate reports it.
func (c *Config) SampleInterval() time.Duration {
	d, err := time.ParseDuration(c.Sampling.Interval)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultInterval)
	}
	return d
}

// SessionEnabled reports whether exports go to a per-run session directory.
func (c *Config) SessionEnabled() bool {
	return c.Export.Session != nil && *c.Export.Session
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded joystick.yml into the provided target struct. The target must be a pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// ConfigSource identifies the origin of a configuration value.
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceGlobal  ConfigSource = "global"
	SourceProject ConfigSource = "project"
)

// LayeredConfig holds each configuration layer separately, plus the merged
// result, for `config show`.
type LayeredConfig struct {
	Default   *Config
	Global    *Config
	Project   *Config
	Final     *Config
	FilePaths map[ConfigSource]string
}
