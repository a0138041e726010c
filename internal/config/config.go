// Package config loads storylint settings from the user config, a project
// overlay and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	appName = "storylint"

	// ProjectYAML and ProjectTOML are the project overlay file names, looked up
	// in the working directory. YAML wins when both exist.
	ProjectYAML = ".storylint.yaml"
	ProjectTOML = ".storylint.toml"
)

// Config represents the application configuration
type Config struct {
	Table        TableConfig       `yaml:"table" toml:"table"`
	Authors      AuthorsConfig     `yaml:"authors" toml:"authors"`
	Rules        map[string]string `yaml:"rules,omitempty" toml:"rules"`
	Lint         LintConfig        `yaml:"lint" toml:"lint"`
	DatabasePath string            `yaml:"database_path,omitempty" toml:"database_path"`
	LogDir       string            `yaml:"log_dir,omitempty" toml:"log_dir"`
	LogLevel     string            `yaml:"log_level" toml:"log_level"`
	KeyMappings  KeyMappings       `yaml:"key_mappings" toml:"key_mappings"`
	ColorScheme  ColorScheme       `yaml:"theme" toml:"theme"`

	// Sources lists the files that contributed to this config, in load order.
	Sources []string `yaml:"-" toml:"-"`
}

// TableConfig describes the expected story table header.
type TableConfig struct {
	Columns        []string `yaml:"columns" toml:"columns"`
	StoryNoAliases []string `yaml:"story_no_aliases" toml:"story_no_aliases"`
	FirstNumber    int      `yaml:"first_number" toml:"first_number"`
}

// AuthorsConfig describes valid author initials.
type AuthorsConfig struct {
	Pattern string   `yaml:"pattern" toml:"pattern"`
	Roster  []string `yaml:"roster,omitempty" toml:"roster"`
}

// LintConfig holds run-level lint settings.
type LintConfig struct {
	Strict        bool   `yaml:"strict" toml:"strict"`
	Workers       int    `yaml:"workers,omitempty" toml:"workers"`
	NarrativeGlob string `yaml:"narrative_glob" toml:"narrative_glob"`
}

// envOverrides are the STORYLINT_* variables.
type envOverrides struct {
	DatabasePath string `env:"STORYLINT_DB_PATH"`
	LogDir       string `env:"STORYLINT_LOG_DIR"`
	LogLevel     string `env:"STORYLINT_LOG_LEVEL"`
	Strict       *bool  `env:"STORYLINT_STRICT"`
	ThemeFile    string `env:"STORYLINT_THEME_FILE"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// loadThemeFile loads and merges theme from STORYLINT_THEME_FILE
func loadThemeFile(config *Config, themeFile string) {
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
		config.Sources = append(config.Sources, themeFile)
	}
}

// Load loads config from the user's config directory, overlays the project
// config found in the working directory and applies environment overrides.
// Missing files are not an error.
func Load() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	return LoadDir(wd)
}

// LoadDir is Load with the project overlay looked up in dir.
func LoadDir(dir string) (*Config, error) {
	config := &Config{}

	if configPath, err := getConfigPath(); err == nil {
		if err := decodeYAMLFile(configPath, config); err != nil {
			return nil, err
		}
	}

	if dir != "" {
		if err := loadProject(dir, config); err != nil {
			return nil, err
		}
	}

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	config.applyEnv(overrides)

	// Fill in any missing values with defaults
	config.applyDefaults()

	return config, nil
}

func loadProject(dir string, config *Config) error {
	yamlPath := filepath.Join(dir, ProjectYAML)
	if _, err := os.Stat(yamlPath); err == nil {
		return decodeYAMLFile(yamlPath, config)
	}

	tomlPath := filepath.Join(dir, ProjectTOML)
	if _, err := os.Stat(tomlPath); err != nil {
		return nil
	}
	if _, err := toml.DecodeFile(tomlPath, config); err != nil {
		return fmt.Errorf("parse %s: %w", tomlPath, err)
	}
	config.Sources = append(config.Sources, tomlPath)
	return nil
}

// decodeYAMLFile merges path into config. A missing file is skipped.
func decodeYAMLFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	config.Sources = append(config.Sources, path)
	return nil
}

func (c *Config) applyEnv(o envOverrides) {
	if o.DatabasePath != "" {
		c.DatabasePath = o.DatabasePath
	}
	if o.LogDir != "" {
		c.LogDir = o.LogDir
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.Strict != nil {
		c.Lint.Strict = *o.Strict
	}
	loadThemeFile(c, o.ThemeFile)
}

// Save saves the config to the user's config directory
func (c *Config) Save() (string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	return configPath, atomicWriteFile(configPath, data)
}

// Path returns the user config file location.
func Path() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

// dataDir is ~/.storylint, home of the catalog and logs.
func dataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(homeDir, "."+appName)
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if len(c.Table.Columns) == 0 {
		c.Table.Columns = defaultColumns()
	}
	if len(c.Table.StoryNoAliases) == 0 {
		c.Table.StoryNoAliases = defaultStoryNoAliases()
	}
	if c.Table.FirstNumber <= 0 {
		c.Table.FirstNumber = defaultFirstNumber
	}
	if c.Authors.Pattern == "" {
		c.Authors.Pattern = defaultAuthorPattern
	}
	if c.Lint.NarrativeGlob == "" {
		c.Lint.NarrativeGlob = "*.md"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(dataDir(), "stories.db")
	}
	if c.LogDir == "" {
		c.LogDir = filepath.Join(dataDir(), "logs")
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}
