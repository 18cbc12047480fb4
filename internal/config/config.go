package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is process-level configuration for the serve command. Per-user
// settings (units, burned-calorie crediting) live in the database, not
// here.
type Config struct {
	Env    string
	DBPath string
	Server struct {
		Addr string
	}
	ShutdownTimeout time.Duration
}

// Load reads config.yaml from the working directory or ~/.macroday,
// falling back to environment variables (MACRODAY_ prefix). A missing
// config file is fine; defaults cover everything.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.macroday")

	v.SetDefault("Env", "development")
	v.SetDefault("Server.Addr", ":8080")
	v.SetDefault("ShutdownTimeout", 10*time.Second)

	v.SetEnvPrefix("MACRODAY")
	// Nested keys map to underscored env vars: Server.Addr is
	// MACRODAY_SERVER_ADDR.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = os.Getenv("MACRODAY_DB_PATH")
	}
	if cfg.Env != "development" && cfg.Env != "staging" && cfg.Env != "production" {
		return nil, fmt.Errorf("env must be one of development, staging, production; got %q", cfg.Env)
	}
	return &cfg, nil
}
