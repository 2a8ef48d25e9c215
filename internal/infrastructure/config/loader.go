package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	dir       string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	// skipNextReload is set by Save so the watcher does not re-read our own write.
	skipNextReload bool
}

// NewManager creates a configuration manager rooted at the XDG config directory.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return NewManagerForDir(configDir)
}

// NewManagerForDir creates a configuration manager reading config.toml from dir.
func NewManagerForDir(dir string) (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	// CTXTREE_CONTEXT_TRACKING_ENABLED, CTXTREE_LOGGING_LEVEL, ...
	v.SetEnvPrefix("CTXTREE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "CTXTREE_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind CTXTREE_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "CTXTREE_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind CTXTREE_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		dir:       dir,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
// A default config file is written when none exists.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			configFile := m.viper.ConfigFileUsed()
			if configFile == "" {
				configFile = m.ConfigFilePath()
			}
			return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
		}
		if createErr := m.createDefaultConfig(); createErr != nil {
			return fmt.Errorf(
				"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
				m.dir,
				createErr,
			)
		}
		if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
			return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
		}
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}
	if config.Logging.Level == "warning" {
		config.Logging.Level = "warn"
	}

	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "" {
		config.Logging.Format = defaultLogFormat
	}

	switch SelectionFormat(strings.ToLower(string(config.Context.SelectionFormat))) {
	case SelectionFormatJSON:
		config.Context.SelectionFormat = SelectionFormatJSON
	default:
		config.Context.SelectionFormat = SelectionFormatMarkdown
	}

	config.Context.DefaultTitle = strings.TrimSpace(config.Context.DefaultTitle)
	if config.Context.DefaultTitle == "" {
		config.Context.DefaultTitle = defaultNodeTitle
	}
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	// Return a copy to prevent external modification
	configCopy := *m.config
	return &configCopy
}

// SetTrackingEnabled flips the context mode switch and persists it.
func (m *Manager) SetTrackingEnabled(enabled bool) error {
	cfg := m.Get()
	cfg.Context.TrackingEnabled = enabled
	return m.Save(cfg)
}

// Save writes the provided configuration to disk.
func (m *Manager) Save(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	m.mu.Lock()

	// Validate before writing so callers get immediate errors.
	if err := validateConfig(cfg); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	data, err := EncodeTOML(cfg)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	if err := os.MkdirAll(m.dir, dirPerm); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(m.ConfigFilePath(), data, filePerm); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to write config: %w", err)
	}
	// viper.Set would shadow later file edits, so re-read instead.
	if err := m.viper.ReadInConfig(); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to re-read config after save: %w", err)
	}

	configCopy := *cfg
	m.config = &configCopy
	if m.watching {
		m.skipNextReload = true
	}
	m.notifyCallbacksLocked()
	return nil
}

// ConfigFilePath returns the path of config.toml in the managed directory.
func (m *Manager) ConfigFilePath() string {
	return filepath.Join(m.dir, configFileName)
}

// createDefaultConfig creates a default configuration file.
func (m *Manager) createDefaultConfig() error {
	if err := os.MkdirAll(m.dir, dirPerm); err != nil {
		return err
	}

	m.viper.SetConfigType("toml")
	if err := m.viper.SafeWriteConfigAs(m.ConfigFilePath()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setContextDefaults(defaults)
	m.setLoggingDefaults(defaults)
	m.setAppearanceDefaults(defaults)
}

func (m *Manager) setContextDefaults(defaults *Config) {
	m.viper.SetDefault("context.tracking_enabled", defaults.Context.TrackingEnabled)
	m.viper.SetDefault("context.default_title", defaults.Context.DefaultTitle)
	m.viper.SetDefault("context.max_title_length", defaults.Context.MaxTitleLength)
	m.viper.SetDefault("context.selection_format", string(defaults.Context.SelectionFormat))
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
}

func (m *Manager) setAppearanceDefaults(defaults *Config) {
	p := defaults.Appearance.DarkPalette
	m.viper.SetDefault("appearance.dark_palette.background", p.Background)
	m.viper.SetDefault("appearance.dark_palette.surface", p.Surface)
	m.viper.SetDefault("appearance.dark_palette.surface_variant", p.SurfaceVariant)
	m.viper.SetDefault("appearance.dark_palette.text", p.Text)
	m.viper.SetDefault("appearance.dark_palette.muted", p.Muted)
	m.viper.SetDefault("appearance.dark_palette.accent", p.Accent)
	m.viper.SetDefault("appearance.dark_palette.border", p.Border)
}
