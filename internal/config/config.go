package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the service.
type Config struct {
	Addr         string        `envconfig:"WMS_ADDR" default:":8080"`
	DBPath       string        `envconfig:"WMS_DB" default:"wms.sqlite3"`
	LogPath      string        `envconfig:"WMS_LOG" default:""`
	AdminUser    string        `envconfig:"WMS_ADMIN_USER" default:"manager"`
	ReadTimeout  time.Duration `envconfig:"WMS_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"WMS_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout  time.Duration `envconfig:"WMS_IDLE_TIMEOUT" default:"120s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
