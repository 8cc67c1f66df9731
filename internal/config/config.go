// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	AppName       = "aurioctl"
	ConfigType    = "yaml"
	DefaultConfig = `# aurioctl configuration

# Host/device selection
host: ""          # empty selects the platform default host
device_index: -1  # -1 for the host's default device

# Stream negotiation
sample_rate: 48000  # requested sample rate in Hz
channels: 2          # channel count
buffer_size: 0       # fixed frames per callback, 0 lets the backend choose

# tone demo
tone_frequency: 440  # Hz, for "aurioctl tone"
seconds: 3           # duration, for "aurioctl tone"

# Output
debug: false
`
)

// Settings holds all application configuration.
type Settings struct {
	Host        string  `mapstructure:"host"`
	DeviceIndex int     `mapstructure:"device_index"`
	SampleRate  float64 `mapstructure:"sample_rate"`
	Channels    int     `mapstructure:"channels"`
	BufferSize  int     `mapstructure:"buffer_size"`

	ToneFrequency float64 `mapstructure:"tone_frequency"`
	Seconds       float64 `mapstructure:"seconds"`

	Debug bool `mapstructure:"debug"`
}

// Init initializes Viper with defaults and config file.
// Config file search order: current directory, then ~/.config/aurioctl/
func Init() error {
	viper.SetDefault("host", "")
	viper.SetDefault("device_index", -1)
	viper.SetDefault("sample_rate", 48000)
	viper.SetDefault("channels", 2)
	viper.SetDefault("buffer_size", 0)
	viper.SetDefault("tone_frequency", 440)
	viper.SetDefault("seconds", 3)
	viper.SetDefault("debug", false)

	viper.SetConfigType(ConfigType)

	viper.AddConfigPath(".")

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	viper.AddConfigPath(filepath.Join(configDir, AppName))

	// Try .config.yaml first (hidden file), then config.yaml
	viper.SetConfigName(".config")
	if err = viper.ReadInConfig(); err != nil {
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}

	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			xdgConfigPath := filepath.Join(configDir, AppName)
			if err = ensureConfigExists(xdgConfigPath); err != nil {
				return err
			}
			if err = viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		} else {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

func ensureConfigExists(configPath string) error {
	configFile := filepath.Join(configPath, "config.yaml")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err = os.MkdirAll(configPath, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err = os.WriteFile(configFile, []byte(DefaultConfig), 0644); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}
	return nil
}

// Get returns the current settings.
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate checks that all settings are within acceptable ranges.
func (s *Settings) Validate() error {
	var errs []error

	if s.SampleRate < 8000 || s.SampleRate > 192000 {
		errs = append(errs, fmt.Errorf("sample_rate must be between 8000 and 192000 Hz, got %v", s.SampleRate))
	}
	if s.Channels < 1 || s.Channels > 8 {
		errs = append(errs, fmt.Errorf("channels must be between 1 and 8, got %d", s.Channels))
	}
	if s.BufferSize < 0 || (s.BufferSize != 0 && (s.BufferSize < 16 || s.BufferSize > 8192)) {
		errs = append(errs, fmt.Errorf("buffer_size must be 0 (backend default) or between 16 and 8192, got %d", s.BufferSize))
	}

	if s.ToneFrequency < 20 || s.ToneFrequency > 20000 {
		errs = append(errs, fmt.Errorf("tone_frequency must be between 20 and 20000 Hz, got %v", s.ToneFrequency))
	}
	if s.Seconds <= 0 || s.Seconds > 3600 {
		errs = append(errs, fmt.Errorf("seconds must be between 0 and 3600, got %v", s.Seconds))
	}
	if s.ToneFrequency >= s.SampleRate/2 {
		errs = append(errs, fmt.Errorf("tone_frequency (%v Hz) must be less than Nyquist frequency (%v Hz)", s.ToneFrequency, s.SampleRate/2))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
