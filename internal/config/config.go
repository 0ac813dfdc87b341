// Package config loads service settings from the environment, an optional
// .env file and an optional config file.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Port string `mapstructure:"port"`

	DBDriver    string `mapstructure:"db_driver"`
	DBPath      string `mapstructure:"db_path"`
	DatabaseURL string `mapstructure:"database_url"`
	SeedPath    string `mapstructure:"seed_path"`

	DepotLat   float64 `mapstructure:"depot_lat"`
	DepotLon   float64 `mapstructure:"depot_lon"`
	DepotLabel string  `mapstructure:"depot_label"`

	MaxStops      int     `mapstructure:"max_stops"`
	MaxDistanceKm float64 `mapstructure:"max_distance_km"`

	ORSAPIKey string `mapstructure:"ors_api_key"`
	RedisURL  string `mapstructure:"redis_url"`

	PlanSchedule string `mapstructure:"plan_schedule"`

	LogLevel string `mapstructure:"log_level"`
	LogJSON  bool   `mapstructure:"log_json"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_path", "data/app.db")
	v.SetDefault("database_url", "")
	v.SetDefault("seed_path", "data/seeds/shops.json")
	v.SetDefault("depot_lat", 52.3702)
	v.SetDefault("depot_lon", 4.8952)
	v.SetDefault("depot_label", "Roastery")
	v.SetDefault("max_stops", 25)
	v.SetDefault("max_distance_km", 150.0)
	v.SetDefault("ors_api_key", "")
	v.SetDefault("redis_url", "")
	// robfig/cron six-field spec: Mondays at 06:00.
	v.SetDefault("plan_schedule", "0 0 6 * * 1")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
}

// Load reads .env (if present), then the config file at path (if non-empty),
// then environment variables, which take precedence.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found (using environment variables)")
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load config: read %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &cfg, nil
}

// Validate checks settings that would otherwise fail later at startup.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite":
		if strings.TrimSpace(c.DBPath) == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	case "postgres":
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.DBDriver)
	}

	if c.MaxStops < 1 {
		return fmt.Errorf("MAX_STOPS must be positive, got %d", c.MaxStops)
	}
	if c.MaxDistanceKm <= 0 {
		return fmt.Errorf("MAX_DISTANCE_KM must be positive, got %v", c.MaxDistanceKm)
	}

	return nil
}

// DSN returns the data source for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DBPath
}
