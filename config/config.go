package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/joystick/errors"
	"github.com/grovetools/joystick/pkg/paths"
	"github.com/grovetools/joystick/util/pathutil"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configNames are the project config file names, in lookup order.
var configNames = []string{
	"joystick.yml",
	"joystick.yaml",
	".joystick.yml",
	".joystick.yaml",
	"joystick.toml",
}

// Load reads, validates and applies defaults to a single configuration file.
// The format is chosen from the file extension.
func Load(path string) (*Config, error) {
	cfg, err := readRaw(path)
	if err != nil {
		return nil, err
	}
	return finalize(cfg)
}

// LoadDefault finds and loads the configuration starting from the working
// directory:
// 1. Global config (<config dir>/config.yml) - base layer
// 2. Project config (joystick.yml) - overrides global
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}

	return LoadFrom(cwd)
}

// LoadFrom loads configuration with hierarchical merging starting from the given directory
func LoadFrom(startDir string) (*Config, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return LoadFromWithLogger(startDir, logger)
}

// LoadFromWithLogger loads configuration with hierarchical merging and logging
func LoadFromWithLogger(startDir string, logger *logrus.Logger) (*Config, error) {
	projectPath, err := FindConfigFile(startDir)
	if err != nil {
		return nil, err
	}

	var finalConfig *Config

	// 1. Global config, unless the project lookup already fell back to it.
	globalPath := paths.GlobalConfigFile()
	if globalPath != "" && !pathutil.Same(globalPath, projectPath) {
		if _, err := os.Stat(globalPath); err == nil {
			logger.WithField("path", globalPath).Debug("Loading global configuration")
			globalConfig, err := readRaw(globalPath)
			if err == nil {
				finalConfig = globalConfig
			} else {
				logger.WithError(err).Warn("Failed to parse global configuration, continuing without it")
			}
		}
	}

	// 2. Project config.
	logger.WithField("path", projectPath).Debug("Loading project configuration")
	projectConfig, err := readRaw(projectPath)
	if err != nil {
		return nil, err
	}

	if finalConfig == nil {
		finalConfig = projectConfig
	} else {
		logger.Debug("Merging project configuration over global configuration")
		finalConfig = mergeConfigs(finalConfig, projectConfig)
	}

	cfg, err := finalize(finalConfig)
	if err != nil {
		return nil, err
	}

	logger.Debug("Configuration loaded and validated successfully")

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		if data, err := yaml.Marshal(cfg); err == nil {
			logger.Debugf("Merged configuration:\n%s", string(data))
		}
	}

	return cfg, nil
}

// LoadOrDefault loads explicitPath when it is set. Otherwise it searches from
// startDir and falls back to Default when no configuration file exists.
func LoadOrDefault(startDir, explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return Load(explicitPath)
	}
	cfg, err := LoadFrom(startDir)
	if errors.Is(err, errors.ErrCodeConfigNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFromBytes parses YAML configuration from a byte array
func LoadFromBytes(data []byte) (*Config, error) {
	cfg, err := decode(data, formatYAML)
	if err != nil {
		return nil, err
	}
	return finalize(cfg)
}

// LoadFromTOMLBytes parses TOML configuration from a byte array
func LoadFromTOMLBytes(data []byte) (*Config, error) {
	cfg, err := decode(data, formatTOML)
	if err != nil {
		return nil, err
	}
	return finalize(cfg)
}

// finalize validates against the schema, applies defaults and runs the
// semantic checks.
func finalize(cfg *Config) (*Config, error) {
	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to create validator")
	}

	if err := validator.Validate(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "schema validation failed")
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

type format int

const (
	formatYAML format = iota
	formatTOML
)

func formatOf(path string) format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return formatTOML
	}
	return formatYAML
}

// readRaw reads and decodes a file without defaults or validation.
func readRaw(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := decode(data, formatOf(path))
	if err != nil {
		if ge, ok := errors.As(err); ok {
			return nil, ge.WithDetail("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// decode expands environment variables and parses data. TOML documents are
// re-encoded as YAML so that unknown top-level tables land in Extensions.
func decode(data []byte, f format) (*Config, error) {
	expanded := []byte(expandEnvVars(string(data)))

	if f == formatTOML {
		var doc map[string]interface{}
		if err := toml.Unmarshal(expanded, &doc); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
		converted, err := yaml.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to convert TOML configuration")
		}
		expanded = converted
	}

	var config Config
	if err := yaml.Unmarshal(expanded, &config); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
	}
	return &config, nil
}

// FindConfigFile searches for joystick configuration files with the following precedence:
// 1. Current directory up to filesystem root
// 2. Global config file (<config dir>/config.yml)
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if globalPath := paths.GlobalConfigFile(); globalPath != "" {
		if info, err := os.Stat(globalPath); err == nil && !info.IsDir() {
			return globalPath, nil
		}
	}

	return "", errors.ConfigNotFound(startDir).WithDetail("searchPath", startDir)
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}

// LoadLayered loads the default, global and project layers separately, for
// `config show`. It also computes the final merged config.
func LoadLayered(startDir string) (*LayeredConfig, error) {
	layered := &LayeredConfig{
		Default:   Default(),
		FilePaths: make(map[ConfigSource]string),
	}

	globalPath := paths.GlobalConfigFile()
	if globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			if globalConfig, err := readRaw(globalPath); err == nil {
				layered.Global = globalConfig
				layered.FilePaths[SourceGlobal] = globalPath
			}
		}
	}

	projectPath, err := FindConfigFile(startDir)
	switch {
	case err == nil && !pathutil.Same(projectPath, globalPath):
		projectConfig, err := readRaw(projectPath)
		if err != nil {
			return nil, err
		}
		layered.Project = projectConfig
		layered.FilePaths[SourceProject] = projectPath
	case err != nil && !errors.Is(err, errors.ErrCodeConfigNotFound):
		return nil, err
	}

	finalConfig := &Config{}
	if layered.Global != nil {
		finalConfig = mergeConfigs(finalConfig, layered.Global)
	}
	if layered.Project != nil {
		finalConfig = mergeConfigs(finalConfig, layered.Project)
	}

	final, err := finalize(finalConfig)
	if err != nil {
		return nil, err
	}
	layered.Final = final

	return layered, nil
}
