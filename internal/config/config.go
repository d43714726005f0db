package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/PixPMusic/pushmap/internal/midi"
	"github.com/google/uuid"
)

// ParamConfig declares one parameter of a host module
type ParamConfig struct {
	ID        int     `json:"id" validate:"gte=0"`
	Name      string  `json:"name" validate:"required"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Default   float64 `json:"default"`
	Unbounded bool    `json:"unbounded,omitempty"` // no finite range; never driven
}

// ModuleConfig declares a host module and its parameters
type ModuleConfig struct {
	ID     int64         `json:"id" validate:"gte=0"`
	Name   string        `json:"name" validate:"required"`
	Params []ParamConfig `json:"params" validate:"dive"`
}

// Config holds application configuration
type Config struct {
	InstanceID          string          `json:"instance_id" validate:"required"`
	InPort              string          `json:"in_port"`
	OutPort             string          `json:"out_port"`
	DeviceType          midi.DeviceType `json:"device_type" validate:"oneof=push2 generic"`
	UpdateRateHz        float64         `json:"update_rate_hz" validate:"gt=0,lte=10000"`
	TimeConstantSeconds float64         `json:"time_constant_seconds" validate:"gte=0"`
	EncoderScale        float64         `json:"encoder_scale" validate:"gt=0"`
	MappingFile         string          `json:"mapping_file" validate:"required"`
	WatchMappingFile    bool            `json:"watch_mapping_file"`
	MetricsAddr         string          `json:"metrics_addr" validate:"omitempty,hostname_port"`
	LogLevel            string          `json:"log_level" validate:"oneof=debug info warn warning error"`
	Modules             []ModuleConfig  `json:"modules" validate:"dive"`
}

// DefaultModules is the demo host used when the config declares none.
func DefaultModules() []ModuleConfig {
	return []ModuleConfig{
		{ID: 1, Name: "VCO", Params: []ParamConfig{
			{ID: 0, Name: "Frequency", Min: -54, Max: 54},
			{ID: 1, Name: "Fine", Min: -1, Max: 1},
			{ID: 2, Name: "Pulse width", Min: 0.01, Max: 0.99, Default: 0.5},
		}},
		{ID: 2, Name: "VCF", Params: []ParamConfig{
			{ID: 0, Name: "Cutoff", Min: 0, Max: 1, Default: 0.5},
			{ID: 1, Name: "Resonance", Min: 0, Max: 1},
			{ID: 2, Name: "Drive", Min: 0, Max: 1},
		}},
		{ID: 3, Name: "ADSR", Params: []ParamConfig{
			{ID: 0, Name: "Attack", Min: 0, Max: 1, Default: 0.1},
			{ID: 1, Name: "Decay", Min: 0, Max: 1, Default: 0.3},
			{ID: 2, Name: "Sustain", Min: 0, Max: 1, Default: 0.7},
			{ID: 3, Name: "Release", Min: 0, Max: 1, Default: 0.4},
		}},
		{ID: 4, Name: "Clock", Params: []ParamConfig{
			{ID: 0, Name: "Tempo", Unbounded: true, Default: 120},
		}},
	}
}

// Default returns a config with stock settings and a fresh instance ID.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults(configDirOrEmpty())
	return cfg
}

func (c *Config) applyDefaults(dir string) {
	if c.InstanceID == "" {
		c.InstanceID = uuid.New().String()
	}
	if c.DeviceType == "" {
		c.DeviceType = midi.DeviceTypePush2
	}
	if c.UpdateRateHz <= 0 {
		c.UpdateRateHz = 400
	}
	if c.TimeConstantSeconds <= 0 {
		c.TimeConstantSeconds = 1.0 / 30
	}
	if c.EncoderScale == 0 {
		c.EncoderScale = 2.0 / 3
	}
	if c.MappingFile == "" && dir != "" {
		c.MappingFile = filepath.Join(dir, "mappings.json")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if len(c.Modules) == 0 {
		c.Modules = DefaultModules()
	}
}

// configDir returns the platform-appropriate config directory
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "pushmap"), nil
}

func configDirOrEmpty() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return dir
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, returning defaults if not found
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads the config at path, returning defaults if not found.
// Missing fields are filled with defaults.
func LoadFrom(path string) (*Config, error) {
	dir := filepath.Dir(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := &Config{}
		cfg.applyDefaults(dir)
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults(dir)
	return &cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the config to path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetModule returns a module declaration by ID, or nil if not found
func (c *Config) GetModule(id int64) *ModuleConfig {
	for i := range c.Modules {
		if c.Modules[i].ID == id {
			return &c.Modules[i]
		}
	}
	return nil
}
