package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the demo server configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Geometry GeometryConfig `mapstructure:"geometry"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type GeometryConfig struct {
	DefaultSegments int     `mapstructure:"default_segments"`
	MaxSegments     int     `mapstructure:"max_segments"`
	MercatorFactor  float64 `mapstructure:"mercator_factor"`
	DefaultDatum    string  `mapstructure:"default_datum"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("geometry.default_segments", 36)
	v.SetDefault("geometry.max_segments", 3600)
	v.SetDefault("geometry.mercator_factor", 1000.0)
	v.SetDefault("geometry.default_datum", "WGS84")
}

// loadConfig reads configuration from an optional file and environment
// variables (ORTHODROME_SERVER_PORT -> server.port).
func loadConfig(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		_ = v.ReadInConfig() // OK if missing
	}

	v.SetEnvPrefix("ORTHODROME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that configuration values are sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Geometry.DefaultSegments <= 0 {
		errs = append(errs, "geometry.default_segments must be positive")
	}
	if c.Geometry.MaxSegments < c.Geometry.DefaultSegments {
		errs = append(errs, "geometry.max_segments must not be below geometry.default_segments")
	}
	if c.Geometry.MercatorFactor <= 0 {
		errs = append(errs, "geometry.mercator_factor must be positive")
	}
	if c.Geometry.DefaultDatum == "" {
		errs = append(errs, "geometry.default_datum is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
