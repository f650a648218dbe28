// Package config loads the YAML configuration shared by the CLI commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-plotly/internal/fileutil"
	"github.com/alnah/go-plotly/internal/i18n"
	"github.com/alnah/go-plotly/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid field value")
)

// Field length limits.
const (
	MaxLocaleLength   = 35   // BCP 47 tags are short; "zh-Hant-TW" is 10
	MaxTitleLength    = 200  // Page title
	MaxIDPrefixLength = 50   // Container id prefix
	MaxURLLength      = 2048 // Browser limit
	MaxPathLength     = 4096 // PATH_MAX on Linux
)

// configDirName is the directory under the user config dir searched by name.
const configDirName = "go-plotly"

// idPrefixPattern keeps generated container ids usable as HTML ids and in
// CSS selectors without escaping.
var idPrefixPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Config holds all configuration for chart and page rendering.
type Config struct {
	Locale string       `yaml:"locale"`
	Page   PageConfig   `yaml:"page"`
	Assets AssetsConfig `yaml:"assets"`
	Widget WidgetConfig `yaml:"widget"`
}

// PageConfig defines standalone page options.
type PageConfig struct {
	Title    string `yaml:"title"`    // Empty = derived from the input file name
	IDPrefix string `yaml:"idPrefix"` // Prefix of generated container ids (default: "plotly")
}

// AssetsConfig defines where pages reference and load assets from.
type AssetsConfig struct {
	StyleBase  string `yaml:"styleBase"`  // URL prefix of css/plotly.css (empty = default)
	ScriptBase string `yaml:"scriptBase"` // URL prefix of js/plotly.min.js (empty = default)
	BasePath   string `yaml:"basePath"`   // Custom asset directory (empty = embedded assets)
}

// WidgetConfig defines widget defaults.
type WidgetConfig struct {
	LoadingAnimation *bool `yaml:"loadingAnimation"` // nil = enabled
}

// ShowLoading reports whether the loading indicator is enabled.
func (w WidgetConfig) ShowLoading() bool {
	return w.LoadingAnimation == nil || *w.LoadingAnimation
}

// Validate checks field lengths and formats.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("locale", c.Locale, MaxLocaleLength); err != nil {
		return err
	}
	if c.Locale != "" && !i18n.ValidLocale(c.Locale) {
		return fmt.Errorf("%w: locale %q is not a language tag", ErrInvalidField, c.Locale)
	}

	if err := validateFieldLength("page.title", c.Page.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.idPrefix", c.Page.IDPrefix, MaxIDPrefixLength); err != nil {
		return err
	}
	if c.Page.IDPrefix != "" && !idPrefixPattern.MatchString(c.Page.IDPrefix) {
		return fmt.Errorf("%w: page.idPrefix %q (letters, digits, '-' and '_', starting with a letter)", ErrInvalidField, c.Page.IDPrefix)
	}

	if err := validateFieldLength("assets.styleBase", c.Assets.StyleBase, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.scriptBase", c.Assets.ScriptBase, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Locale: i18n.DefaultLocale,
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-plotly/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
