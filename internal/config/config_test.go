package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func resetViper() {
	viper.Reset()
}

func TestInit_WithDefaults(t *testing.T) {
	resetViper()

	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	configDir := filepath.Join(tmpDir, ".config", AppName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(DefaultConfig), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	tests := []struct {
		key      string
		expected interface{}
	}{
		{"host", ""},
		{"device_index", -1},
		{"sample_rate", 48000},
		{"channels", 2},
		{"buffer_size", 0},
		{"tone_frequency", 440},
		{"seconds", 3},
		{"debug", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := viper.Get(tt.key)
			if got != tt.expected {
				t.Errorf("viper.Get(%q) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestInit_CreatesConfigIfMissing(t *testing.T) {
	resetViper()

	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	configPath := filepath.Join(tmpDir, ".config", AppName, "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("Init() did not create config file at %s", configPath)
	}
}

func TestInit_ReadsLocalConfigFirst(t *testing.T) {
	resetViper()

	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	xdgConfigDir := filepath.Join(tmpDir, ".config", AppName)
	if err := os.MkdirAll(xdgConfigDir, 0755); err != nil {
		t.Fatalf("failed to create XDG config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(xdgConfigDir, "config.yaml"), []byte("seconds: 20"), 0644); err != nil {
		t.Fatalf("failed to write XDG config: %v", err)
	}

	origDir, _ := os.Getwd()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(origDir); err != nil {
			t.Logf("failed to restore dir: %v", err)
		}
	}()

	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("seconds: 25"), 0644); err != nil {
		t.Fatalf("failed to write local config: %v", err)
	}

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if got := viper.GetInt("seconds"); got != 25 {
		t.Errorf("viper.GetInt(seconds) = %d, want 25 (local config)", got)
	}
}

func TestGet_ReturnsSettings(t *testing.T) {
	resetViper()

	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	configDir := filepath.Join(tmpDir, ".config", AppName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(DefaultConfig), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	settings, err := Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if settings.DeviceIndex != -1 {
		t.Errorf("Settings.DeviceIndex = %d, want -1", settings.DeviceIndex)
	}
	if settings.SampleRate != 48000 {
		t.Errorf("Settings.SampleRate = %f, want 48000", settings.SampleRate)
	}
	if settings.Channels != 2 {
		t.Errorf("Settings.Channels = %d, want 2", settings.Channels)
	}
	if settings.ToneFrequency != 440 {
		t.Errorf("Settings.ToneFrequency = %f, want 440", settings.ToneFrequency)
	}
	if settings.Debug != false {
		t.Errorf("Settings.Debug = %v, want false", settings.Debug)
	}
}

func TestGet_AllFields(t *testing.T) {
	resetViper()

	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	customConfig := `host: wasapi
device_index: 2
sample_rate: 96000
channels: 1
buffer_size: 256
tone_frequency: 880
seconds: 5
debug: true
`

	configDir := filepath.Join(tmpDir, ".config", AppName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(customConfig), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	settings, err := Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if settings.Host != "wasapi" {
		t.Errorf("Settings.Host = %q, want %q", settings.Host, "wasapi")
	}
	if settings.DeviceIndex != 2 {
		t.Errorf("Settings.DeviceIndex = %d, want 2", settings.DeviceIndex)
	}
	if settings.SampleRate != 96000 {
		t.Errorf("Settings.SampleRate = %f, want 96000", settings.SampleRate)
	}
	if settings.Channels != 1 {
		t.Errorf("Settings.Channels = %d, want 1", settings.Channels)
	}
	if settings.BufferSize != 256 {
		t.Errorf("Settings.BufferSize = %d, want 256", settings.BufferSize)
	}
	if settings.ToneFrequency != 880 {
		t.Errorf("Settings.ToneFrequency = %f, want 880", settings.ToneFrequency)
	}
	if settings.Seconds != 5 {
		t.Errorf("Settings.Seconds = %f, want 5", settings.Seconds)
	}
	if settings.Debug != true {
		t.Errorf("Settings.Debug = %v, want true", settings.Debug)
	}
}

func TestEnsureConfigExists_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config")

	if err := ensureConfigExists(configPath); err != nil {
		t.Fatalf("ensureConfigExists() error = %v", err)
	}

	configFile := filepath.Join(configPath, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		t.Errorf("ensureConfigExists() did not create %s", configFile)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}
	if string(content) != DefaultConfig {
		t.Errorf("config content does not match DefaultConfig")
	}
}

func TestEnsureConfigExists_DoesNotOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := tmpDir

	configFile := filepath.Join(configPath, "config.yaml")
	existingContent := "existing: true"
	if err := os.WriteFile(configFile, []byte(existingContent), 0644); err != nil {
		t.Fatalf("failed to write existing config: %v", err)
	}

	if err := ensureConfigExists(configPath); err != nil {
		t.Fatalf("ensureConfigExists() error = %v", err)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}
	if string(content) != existingContent {
		t.Errorf("ensureConfigExists() overwrote existing config")
	}
}

func TestConstants(t *testing.T) {
	if AppName != "aurioctl" {
		t.Errorf("AppName = %q, want %q", AppName, "aurioctl")
	}
	if ConfigType != "yaml" {
		t.Errorf("ConfigType = %q, want %q", ConfigType, "yaml")
	}
}

func TestDefaultConfig_ContainsExpectedKeys(t *testing.T) {
	expectedKeys := []string{
		"host",
		"device_index",
		"sample_rate",
		"channels",
		"buffer_size",
		"tone_frequency",
		"seconds",
		"debug",
	}

	for _, key := range expectedKeys {
		if !contains(DefaultConfig, key) {
			t.Errorf("DefaultConfig missing key: %s", key)
		}
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(s) > 0 && containsString(s, substr))
}

func containsString(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

func TestInit_InvalidConfigFile(t *testing.T) {
	resetViper()

	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	configDir := filepath.Join(tmpDir, ".config", AppName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	invalidYAML := "invalid: yaml: content: [[["
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write invalid config: %v", err)
	}

	err := Init()
	if err == nil {
		t.Error("Init() should return error for invalid YAML")
	}
}

func TestEnsureConfigExists_WriteError(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("skipping test when running as root")
	}

	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "readonly")
	if err := os.MkdirAll(configPath, 0555); err != nil {
		t.Fatalf("failed to create readonly dir: %v", err)
	}
	defer func() {
		if err := os.Chmod(configPath, 0755); err != nil {
			t.Logf("failed to restore permissions: %v", err)
		}
	}()

	err := ensureConfigExists(filepath.Join(configPath, "subdir"))
	if err == nil {
		t.Error("ensureConfigExists() should return error for read-only directory")
	}
}

// Validation tests

func validSettings() *Settings {
	return &Settings{
		Host:          "",
		DeviceIndex:   -1,
		SampleRate:    48000,
		Channels:      2,
		BufferSize:    0,
		ToneFrequency: 440,
		Seconds:       3,
		Debug:         false,
	}
}

func TestSettings_Validate_ValidSettings(t *testing.T) {
	if err := validSettings().Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil for valid settings", err)
	}
}

func TestSettings_Validate_SampleRate(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		wantErr    bool
	}{
		{"too low", 7999, true},
		{"minimum", 8000, false},
		{"typical 44100", 44100, false},
		{"typical 48000", 48000, false},
		{"maximum", 192000, false},
		{"too high", 192001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			s.SampleRate = tt.sampleRate
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettings_Validate_Channels(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		wantErr  bool
	}{
		{"zero", 0, true},
		{"mono", 1, false},
		{"stereo", 2, false},
		{"eight", 8, false},
		{"too many", 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			s.Channels = tt.channels
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettings_Validate_BufferSize(t *testing.T) {
	tests := []struct {
		name       string
		bufferSize int
		wantErr    bool
	}{
		{"backend default", 0, false},
		{"too small", 8, true},
		{"minimum", 16, false},
		{"typical 512", 512, false},
		{"maximum", 8192, false},
		{"too large", 8193, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			s.BufferSize = tt.bufferSize
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettings_Validate_ToneFrequency(t *testing.T) {
	tests := []struct {
		name          string
		toneFrequency float64
		wantErr       bool
	}{
		{"too low", 19, true},
		{"minimum", 20, false},
		{"typical 440", 440, false},
		{"maximum", 20000, false},
		{"above range", 20001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			s.ToneFrequency = tt.toneFrequency
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettings_Validate_Seconds(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		wantErr bool
	}{
		{"zero", 0, true},
		{"negative", -1, true},
		{"typical", 3, false},
		{"maximum", 3600, false},
		{"too long", 3601, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			s.Seconds = tt.seconds
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettings_Validate_NyquistFrequency(t *testing.T) {
	tests := []struct {
		name          string
		sampleRate    float64
		toneFrequency float64
		wantErr       bool
	}{
		{"well below nyquist", 48000, 440, false},
		{"near max tone freq", 48000, 19999, false},
		{"at nyquist", 8000, 4000, true},
		{"above nyquist", 8000, 5000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			s.SampleRate = tt.sampleRate
			s.ToneFrequency = tt.toneFrequency
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettings_Validate_MultipleErrors(t *testing.T) {
	s := &Settings{
		SampleRate:    0,
		Channels:      0,
		BufferSize:    10,
		ToneFrequency: 0,
		Seconds:       0,
	}

	err := s.Validate()
	if err == nil {
		t.Fatal("Validate() should return error for multiple invalid fields")
	}

	errStr := err.Error()
	expectedSubstrings := []string{"sample_rate", "channels", "buffer_size", "tone_frequency", "seconds"}
	for _, substr := range expectedSubstrings {
		if !contains(errStr, substr) {
			t.Errorf("Validate() error should mention %q, got: %v", substr, errStr)
		}
	}
}
