package config

import (
	"errors"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port int    `yaml:"port" env:"PORT" env-default:"4000"`
		Env  string `yaml:"env" env:"ENV" env-default:"development"`
	} `yaml:"server"`
	Database struct {
		DSN          string `yaml:"dsn" env:"DSN"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"MAXOPENCONNS" env-default:"25"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"MAXIDLECONNS" env-default:"25"`
		MaxIdleTime  string `yaml:"max_idle_time" env:"MAXIDLETIME" env-default:"15m"`
	} `yaml:"database"`
	OpenLibrary struct {
		BaseURL   string  `yaml:"base_url" env:"OPENLIBRARYBASEURL" env-default:"https://openlibrary.org"`
		UserAgent string  `yaml:"user_agent" env:"OPENLIBRARYUSERAGENT" env-default:"libris/1.0"`
		RPS       float64 `yaml:"rps" env:"OPENLIBRARYRPS" env-default:"2"`
	} `yaml:"openlibrary"`
	Limiter struct {
		RPS     float64 `yaml:"rps" env:"LIMITERRPS" env-default:"4"`
		Burst   int     `yaml:"burst" env:"LIMITERBURST" env-default:"8"`
		Enabled bool    `yaml:"enabled" env:"LIMITERENABLED" env-default:"true"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"TRUSTEDORIGINS"`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"METRICSENABLED" env-default:"false"`
	} `yaml:"metrics"`
}

// Decode reads the configuration from config.yml (or the file named by the
// CONFIG_PATH environment variable) with environment variable overrides.
// When no config file exists, the configuration comes from the environment
// and defaults alone.
func Decode() (Config, error) {
	var cfg Config
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yml"
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist):
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, err
	}
	return cfg, nil
}
