package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Config holds every runtime setting. Values come from environment variables,
// optionally seeded from a .env file in the working directory.
type Config struct {
	Port         int
	Env          string
	DatabaseURL  string
	DBMaxConns   int32
	DBMinConns   int32
	JWTSecret    string
	CORSOrigins  []string
	MLServiceURL string
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from the environment. A missing .env file is fine;
// a missing required value is not.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("ML_SERVICE_URL", "")

	cfg := &Config{
		Port:         v.GetInt("PORT"),
		Env:          v.GetString("ENV"),
		DatabaseURL:  v.GetString("DATABASE_URL"),
		DBMaxConns:   v.GetInt32("DB_MAX_CONNS"),
		DBMinConns:   v.GetInt32("DB_MIN_CONNS"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		CORSOrigins:  splitOrigins(v.GetString("CORS_ORIGINS")),
		MLServiceURL: v.GetString("ML_SERVICE_URL"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
