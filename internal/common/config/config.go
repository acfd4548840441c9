package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ============================================================
// Configuration
// ============================================================

// Config собирается из .bedrot.yaml, переменных BEDROT_* и флагов.
type Config struct {
	Port           string        `mapstructure:"port"`
	Environment    string        `mapstructure:"env"`
	ReadTimeout    int           `mapstructure:"read_timeout"`
	WriteTimeout   int           `mapstructure:"write_timeout"`
	LogLevel       string        `mapstructure:"log_level"`
	DBPath         string        `mapstructure:"db_path"`
	MigrationsPath string        `mapstructure:"migrations_path"`
	ExportDir      string        `mapstructure:"export_dir"`
	AssetRoot      string        `mapstructure:"asset_root"`
	AssetBaseURL   string        `mapstructure:"asset_base_url"`
	SessionIdleTTL time.Duration `mapstructure:"session_idle_ttl"`
	SweepInterval  time.Duration `mapstructure:"sweep_interval"`
	ShareURL       string        `mapstructure:"share_url"`
	PixelRatio     int           `mapstructure:"pixel_ratio"`
}

// SetDefaults регистрирует значения по умолчанию в экземпляре viper.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("env", "development")
	v.SetDefault("read_timeout", 10)
	v.SetDefault("write_timeout", 10)
	v.SetDefault("log_level", "info")
	v.SetDefault("db_path", "data/db/bedrot.db")
	v.SetDefault("migrations_path", "migrations/001_init_exports.sql")
	v.SetDefault("export_dir", "data/exports")
	v.SetDefault("asset_root", "public")
	v.SetDefault("asset_base_url", "")
	v.SetDefault("session_idle_ttl", 2*time.Hour)
	v.SetDefault("sweep_interval", 5*time.Minute)
	v.SetDefault("share_url", "https://dessert-shop-demo.vercel.app")
	v.SetDefault("pixel_ratio", 2)
}

// Load читает конфигурацию из viper, подставляя значения по умолчанию.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("config: port is required")
	}
	if c.PixelRatio < 1 || c.PixelRatio > 4 {
		return fmt.Errorf("config: pixel_ratio must be in [1,4], got %d", c.PixelRatio)
	}
	if c.SessionIdleTTL <= 0 || c.SweepInterval <= 0 {
		return fmt.Errorf("config: session_idle_ttl and sweep_interval must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
