package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, 36, cfg.Geometry.DefaultSegments)
	require.Equal(t, 3600, cfg.Geometry.MaxSegments)
	require.Equal(t, 1000.0, cfg.Geometry.MercatorFactor)
	require.Equal(t, "WGS84", cfg.Geometry.DefaultDatum)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
geometry:
  default_segments: 72
  default_datum: NAD27
`), 0o600))

	t.Setenv("ORTHODROME_LOG_LEVEL", "debug")

	cfg, err := loadConfig(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 72, cfg.Geometry.DefaultSegments)
	require.Equal(t, "NAD27", cfg.Geometry.DefaultDatum)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Port: 8080, ReadTimeout: 10, WriteTimeout: 10},
			Log:      LogConfig{Level: "info"},
			Geometry: testGeometryConfig(),
		}
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 0 }},
		{"read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }},
		{"segments", func(c *Config) { c.Geometry.DefaultSegments = 0 }},
		{"max below default", func(c *Config) { c.Geometry.MaxSegments = 10 }},
		{"mercator factor", func(c *Config) { c.Geometry.MercatorFactor = -1 }},
		{"datum", func(c *Config) { c.Geometry.DefaultDatum = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestNewLogger(t *testing.T) {
	log, err := newLogger("debug")
	require.NoError(t, err)
	require.NotNil(t, log)

	_, err = newLogger("verbose")
	require.Error(t, err)
}
