// Package config loads, validates and watches the ctxtree configuration file.
package config

// Config represents the complete configuration for ctxtree.
type Config struct {
	// Context controls navigation tracking and the context picker.
	Context    ContextConfig    `mapstructure:"context" yaml:"context" toml:"context" json:"context"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
	Appearance AppearanceConfig `mapstructure:"appearance" yaml:"appearance" toml:"appearance" json:"appearance"`
}

// SelectionFormat selects how a picked context is rendered for the chat consumer.
type SelectionFormat string

const (
	SelectionFormatMarkdown SelectionFormat = "markdown"
	SelectionFormatJSON     SelectionFormat = "json"
)

// ContextConfig holds context-mode preferences.
type ContextConfig struct {
	// TrackingEnabled is the context mode switch. Turning it off discards the tree.
	TrackingEnabled bool `mapstructure:"tracking_enabled" yaml:"tracking_enabled" toml:"tracking_enabled" json:"tracking_enabled"`
	// DefaultTitle is recorded when a navigation arrives before its page title.
	DefaultTitle string `mapstructure:"default_title" yaml:"default_title" toml:"default_title" json:"default_title"`
	// MaxTitleLength truncates titles in the picker and tree output (0 = no limit).
	MaxTitleLength int `mapstructure:"max_title_length" yaml:"max_title_length" toml:"max_title_length" json:"max_title_length"`
	// SelectionFormat is "markdown" or "json".
	SelectionFormat SelectionFormat `mapstructure:"selection_format" yaml:"selection_format" toml:"selection_format" json:"selection_format"`
}

// LoggingConfig controls log level, format and file output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" toml:"format" json:"format"`

	// File output configuration
	LogDir        string `mapstructure:"log_dir" yaml:"log_dir" toml:"log_dir" json:"log_dir"`
	EnableFileLog bool   `mapstructure:"enable_file_log" yaml:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
}

// AppearanceConfig holds terminal UI colors.
type AppearanceConfig struct {
	DarkPalette ColorPalette `mapstructure:"dark_palette" yaml:"dark_palette" toml:"dark_palette" json:"dark_palette"`
}

// ColorPalette contains semantic color tokens.
type ColorPalette struct {
	Background     string `mapstructure:"background" yaml:"background" toml:"background" json:"background"`
	Surface        string `mapstructure:"surface" yaml:"surface" toml:"surface" json:"surface"`
	SurfaceVariant string `mapstructure:"surface_variant" yaml:"surface_variant" toml:"surface_variant" json:"surface_variant"`
	Text           string `mapstructure:"text" yaml:"text" toml:"text" json:"text"`
	Muted          string `mapstructure:"muted" yaml:"muted" toml:"muted" json:"muted"`
	Accent         string `mapstructure:"accent" yaml:"accent" toml:"accent" json:"accent"`
	Border         string `mapstructure:"border" yaml:"border" toml:"border" json:"border"`
}
