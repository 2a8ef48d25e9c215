package config

import (
	"fmt"
	"regexp"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateContext(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateAppearance(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateContext(config *Config) []string {
	var validationErrors []string
	if config.Context.MaxTitleLength < 0 {
		validationErrors = append(validationErrors, "context.max_title_length must be non-negative")
	}
	switch config.Context.SelectionFormat {
	case SelectionFormatMarkdown, SelectionFormatJSON:
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("context.selection_format must be %q or %q", SelectionFormatMarkdown, SelectionFormatJSON))
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level %q must be one of trace, debug, info, warn, error, disabled", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
	default:
		validationErrors = append(validationErrors, "logging.format must be console or json")
	}
	if config.Logging.EnableFileLog && config.Logging.LogDir == "" {
		validationErrors = append(validationErrors, "logging.log_dir is required when logging.enable_file_log is true")
	}
	return validationErrors
}

func validateAppearance(config *Config) []string {
	var validationErrors []string
	p := config.Appearance.DarkPalette
	colors := []struct{ name, value string }{
		{"background", p.Background},
		{"surface", p.Surface},
		{"surface_variant", p.SurfaceVariant},
		{"text", p.Text},
		{"muted", p.Muted},
		{"accent", p.Accent},
		{"border", p.Border},
	}
	for _, c := range colors {
		if c.value != "" && !hexColorPattern.MatchString(c.value) {
			validationErrors = append(validationErrors,
				fmt.Sprintf("appearance.dark_palette.%s %q is not a hex color", c.name, c.value))
		}
	}
	return validationErrors
}
