// Package config loads runtime configuration from environment variables
// and an optional config file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server needs at startup.
type Config struct {
	Env        string        `mapstructure:"env"`
	ListenAddr string        `mapstructure:"listen_addr"`
	DBDriver   string        `mapstructure:"db_driver"`
	DBDSN      string        `mapstructure:"db_dsn"`
	JWTSecret  string        `mapstructure:"jwt_secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	LoginRate  int           `mapstructure:"login_rate"` // login attempts per hour per IP
	SweepCron  string        `mapstructure:"sweep_cron"`
}

// Load reads configuration with the TICKDESK_ env prefix. If path is
// non-empty it must point at a readable config file; otherwise an
// optional tickdesk.yaml in the working directory is picked up.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TICKDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "dev")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("db_driver", "sqlite3")
	v.SetDefault("db_dsn", "tickdesk.db")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("login_rate", 30)
	v.SetDefault("sweep_cron", "@every 5m")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("tickdesk")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.JWTSecret == "" {
		if cfg.Env != "dev" {
			return nil, fmt.Errorf("jwt_secret is required outside dev")
		}
		cfg.JWTSecret = "development-secret-change-in-production"
	}

	return &cfg, nil
}
