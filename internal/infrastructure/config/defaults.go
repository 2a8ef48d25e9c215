package config

// Default configuration constants
const (
	defaultTrackingEnabled = true
	defaultNodeTitle       = "Untitled"
	defaultMaxTitleLength  = 120

	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	logDir, _ := GetLogDir()

	return &Config{
		Context: ContextConfig{
			TrackingEnabled: defaultTrackingEnabled,
			DefaultTitle:    defaultNodeTitle,
			MaxTitleLength:  defaultMaxTitleLength,
			SelectionFormat: SelectionFormatMarkdown,
		},
		Logging: LoggingConfig{
			Level:         defaultLogLevel,
			Format:        defaultLogFormat,
			LogDir:        logDir,
			EnableFileLog: false,
		},
		Appearance: AppearanceConfig{
			DarkPalette: ColorPalette{
				Background:     "#0a0a0b",
				Surface:        "#1a1a1b",
				SurfaceVariant: "#2d2d2d",
				Text:           "#ffffff",
				Muted:          "#909090",
				Accent:         "#4ade80",
				Border:         "#333333",
			},
		},
	}
}
