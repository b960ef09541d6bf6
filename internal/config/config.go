package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

// BackendConfig represents the hosted data backend connection
type BackendConfig struct {
	URL               string `mapstructure:"url"`
	APIKey            string `mapstructure:"api_key"`
	ScheduleProcedure string `mapstructure:"schedule_procedure"`
	HolidayTable      string `mapstructure:"holiday_table"`
	MaxRows           int    `mapstructure:"max_rows"`
	Timeout           string `mapstructure:"timeout"`
}

// ServerConfig represents the HTTP serving surface
type ServerConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.schedule-viewer")
		v.AddConfigPath("/etc/schedule-viewer")
	}

	v.SetDefault("backend.schedule_procedure", "get_schedule_by_range")
	v.SetDefault("backend.holiday_table", "holidays")
	v.SetDefault("backend.max_rows", 10001)
	v.SetDefault("backend.timeout", "30s")
	v.SetDefault("server.listen_addr", ":8080")
	v.SetDefault("log.level", "info")

	// Read environment variables
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("backend.url is required")
	}
	if c.Backend.APIKey == "" {
		return fmt.Errorf("backend.api_key is required")
	}
	if c.Backend.MaxRows <= 0 {
		return fmt.Errorf("backend.max_rows must be positive")
	}
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}
	return nil
}

// GetTimeout returns the backend request timeout duration
func (c *BackendConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 30 * time.Second
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return duration
}

// ExpandEnvVars expands environment variables in config strings.
// Lets the API key live in the environment instead of the config file.
func (c *Config) ExpandEnvVars() {
	c.Backend.APIKey = os.ExpandEnv(c.Backend.APIKey)
}
