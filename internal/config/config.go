// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for rigrun-elements.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/rigrun-elements/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete rigrun-elements configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	UI        UIConfig        `toml:"ui" json:"ui"`
	Reasoning PanelConfig     `toml:"reasoning" json:"reasoning"`
	Chain     PanelConfig     `toml:"chain" json:"chain"`
	CodeBlock CodeBlockConfig `toml:"codeblock" json:"codeblock"`
	Shimmer   ShimmerConfig   `toml:"shimmer" json:"shimmer"`
	Model     ModelConfig     `toml:"model" json:"model"`
	Log       LogConfig       `toml:"log" json:"log"`

	// deepDiveDefined records whether the loaded file set ui.deep_dive.
	deepDiveDefined bool
}

// UIConfig contains display preferences.
type UIConfig struct {
	// Theme is "dark", "light" or "auto"
	Theme string `toml:"theme" json:"theme"`
	// DeepDive asks reasoning models to show their thinking
	DeepDive bool `toml:"deep_dive" json:"deep_dive"`
	// ShowLineNumbers turns on line numbers in code blocks
	ShowLineNumbers bool `toml:"show_line_numbers" json:"show_line_numbers"`
}

// PanelConfig tunes a disclosure panel.
type PanelConfig struct {
	// AutoCloseMs is the delay between the end of streaming and the collapse
	AutoCloseMs int `toml:"auto_close_ms" json:"auto_close_ms"`
}

// AutoCloseDelay returns AutoCloseMs as a duration.
func (p PanelConfig) AutoCloseDelay() time.Duration {
	return time.Duration(p.AutoCloseMs) * time.Millisecond
}

// CodeBlockConfig tunes code blocks.
type CodeBlockConfig struct {
	// CopyTimeoutMs is how long the "copied" state stays visible
	CopyTimeoutMs int `toml:"copy_timeout_ms" json:"copy_timeout_ms"`
	// StyleDark and StyleLight are chroma style names
	StyleDark  string `toml:"style_dark" json:"style_dark"`
	StyleLight string `toml:"style_light" json:"style_light"`
}

// CopyTimeout returns CopyTimeoutMs as a duration.
func (c CodeBlockConfig) CopyTimeout() time.Duration {
	return time.Duration(c.CopyTimeoutMs) * time.Millisecond
}

// ShimmerConfig tunes shimmer text.
type ShimmerConfig struct {
	// DurationMs is the length of one sweep
	DurationMs int `toml:"duration_ms" json:"duration_ms"`
	// Spread scales the highlight band with the text length
	Spread float64 `toml:"spread" json:"spread"`
}

// Duration returns DurationMs as a duration.
func (s ShimmerConfig) Duration() time.Duration {
	return time.Duration(s.DurationMs) * time.Millisecond
}

// ModelConfig selects the model used for prompt construction.
type ModelConfig struct {
	ID string `toml:"id" json:"id"`
	// Search enables the research tools
	Search bool `toml:"search" json:"search"`
	// Manual selects manual (prompt-only) tool handling
	Manual bool `toml:"manual" json:"manual"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	// File is empty for stderr
	File string `toml:"file" json:"file"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		UI: UIConfig{
			Theme:           "dark",
			DeepDive:        false,
			ShowLineNumbers: false,
		},

		Reasoning: PanelConfig{AutoCloseMs: 500},
		Chain:     PanelConfig{AutoCloseMs: 1000},

		CodeBlock: CodeBlockConfig{
			CopyTimeoutMs: 2000,
			StyleDark:     "monokai",
			StyleLight:    "github",
		},

		Shimmer: ShimmerConfig{
			DurationMs: 2000,
			Spread:     2,
		},

		Model: ModelConfig{
			ID:     "deepseek-r1:14b",
			Search: true,
		},

		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// EnvConfigPath points at an alternate config file.
const EnvConfigPath = "ELEMENTS_CONFIG"

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".rigrun-elements"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads .env (if present), then the config file, then environment
// overrides. A missing config file yields the defaults.
func Load() (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadDotEnv loads ./.env into the environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. A missing file is not an error.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	cfg.deepDiveDefined = md.IsDefined("ui", "deep_dive")
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path atomically with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# rigrun-elements configuration file\n")
	buf.WriteString("# Generated by elements - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// PREFERENCES
// =============================================================================

// EnsurePreferences loads path and, when the file does not record the
// DeepDive preference yet, writes it with the current (default) value.
func EnsurePreferences(path string) (*Config, error) {
	cfg, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	if cfg.deepDiveDefined {
		return cfg, nil
	}
	if err := SaveTOML(cfg, path); err != nil {
		return nil, err
	}
	cfg.deepDiveDefined = true
	return cfg, nil
}

// SetDeepDive persists the DeepDive preference to path.
func SetDeepDive(path string, on bool) (*Config, error) {
	cfg, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	cfg.UI.DeepDive = on
	if err := SaveTOML(cfg, path); err != nil {
		return nil, err
	}
	cfg.deepDiveDefined = true
	return cfg, nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	for field, ms := range map[string]int{
		"reasoning.auto_close_ms": c.Reasoning.AutoCloseMs,
		"chain.auto_close_ms":     c.Chain.AutoCloseMs,
	} {
		if ms < 50 || ms > 10000 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%d out of range, must be 50-10000", ms),
			})
		}
	}

	if c.CodeBlock.CopyTimeoutMs < 100 {
		errs = append(errs, ValidationError{
			Field:   "codeblock.copy_timeout_ms",
			Message: fmt.Sprintf("%d too short, must be at least 100", c.CodeBlock.CopyTimeoutMs),
		})
	}

	if c.Shimmer.DurationMs <= 0 {
		errs = append(errs, ValidationError{Field: "shimmer.duration_ms", Message: "must be positive"})
	}
	if c.Shimmer.Spread <= 0 || c.Shimmer.Spread > 10 {
		errs = append(errs, ValidationError{
			Field:   "shimmer.spread",
			Message: fmt.Sprintf("%g out of range, must be in (0, 10]", c.Shimmer.Spread),
		})
	}

	if strings.TrimSpace(c.Model.ID) == "" {
		errs = append(errs, ValidationError{Field: "model.id", Message: "must not be empty"})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero-value fields with defaults.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.Reasoning.AutoCloseMs == 0 {
		c.Reasoning.AutoCloseMs = d.Reasoning.AutoCloseMs
	}
	if c.Chain.AutoCloseMs == 0 {
		c.Chain.AutoCloseMs = d.Chain.AutoCloseMs
	}
	if c.CodeBlock.CopyTimeoutMs == 0 {
		c.CodeBlock.CopyTimeoutMs = d.CodeBlock.CopyTimeoutMs
	}
	if c.CodeBlock.StyleDark == "" {
		c.CodeBlock.StyleDark = d.CodeBlock.StyleDark
	}
	if c.CodeBlock.StyleLight == "" {
		c.CodeBlock.StyleLight = d.CodeBlock.StyleLight
	}
	if c.Shimmer.DurationMs == 0 {
		c.Shimmer.DurationMs = d.Shimmer.DurationMs
	}
	if c.Shimmer.Spread == 0 {
		c.Shimmer.Spread = d.Shimmer.Spread
	}
	if c.Model.ID == "" {
		c.Model.ID = d.Model.ID
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - ELEMENTS_THEME: overrides ui.theme
//   - ELEMENTS_DEEP_DIVE: "1" or "true" enables deep dive
//   - ELEMENTS_MODEL: overrides model.id
//   - ELEMENTS_SEARCH: "1" or "true" enables search tools
//   - ELEMENTS_REASONING_CLOSE_MS: overrides reasoning.auto_close_ms
//   - ELEMENTS_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	if theme := os.Getenv("ELEMENTS_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if dd := os.Getenv("ELEMENTS_DEEP_DIVE"); dd != "" {
		c.UI.DeepDive = envBool(dd)
	}
	if model := os.Getenv("ELEMENTS_MODEL"); model != "" {
		c.Model.ID = model
	}
	if search := os.Getenv("ELEMENTS_SEARCH"); search != "" {
		c.Model.Search = envBool(search)
	}
	if v := os.Getenv("ELEMENTS_REASONING_CLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.Reasoning.AutoCloseMs = ms
		}
	}
	if level := os.Getenv("ELEMENTS_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

func envBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "ui.theme").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value from its string form using dot notation.
func (c *Config) Set(key, value string) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: expected bool: %w", key, err)
		}
		field.SetBool(b)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: expected integer: %w", key, err)
		}
		field.SetInt(int64(n))
	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: expected number: %w", key, err)
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("%s: unsupported type %s", key, field.Kind())
	}
	return nil
}

// Keys returns every settable dot-notation key.
func Keys() []string {
	var keys []string
	walkKeys(reflect.TypeOf(Config{}), "", &keys)
	return keys
}

func walkKeys(t reflect.Type, prefix string, keys *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("toml")
		if tag == "" || !f.IsExported() {
			continue
		}
		if f.Type.Kind() == reflect.Struct {
			walkKeys(f.Type, prefix+tag+".", keys)
			continue
		}
		*keys = append(*keys, prefix+tag)
	}
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	v := reflect.ValueOf(c).Elem()
	for _, part := range strings.Split(key, ".") {
		if v.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("unknown config key: %s", key)
		}
		found := false
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).Tag.Get("toml") == part {
				v = v.Field(i)
				found = true
				break
			}
		}
		if !found {
			return reflect.Value{}, fmt.Errorf("unknown config key: %s", key)
		}
	}
	if v.Kind() == reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%s is a section, not a key", key)
	}
	return v, nil
}
