package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/matst80/slask-catalog/pkg/common"
)

type Config struct {
	ListenAddress string `mapstructure:"listen_address"`
	DataDir       string `mapstructure:"data_dir"`
	Country       string `mapstructure:"country"`

	Redis  RedisConfig  `mapstructure:",squash"`
	Rabbit RabbitConfig `mapstructure:",squash"`
	Log    LogConfig    `mapstructure:",squash"`

	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	HookTimeout       time.Duration `mapstructure:"hook_timeout"`
}

type RedisConfig struct {
	Address    string        `mapstructure:"redis_url"`
	Password   string        `mapstructure:"redis_password"`
	DB         int           `mapstructure:"redis_db"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// Enabled is false when no redis address is configured, sessions are then
// kept in memory.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

type RabbitConfig struct {
	Url string `mapstructure:"rabbit_url"`
}

func (r RabbitConfig) Enabled() bool {
	return r.Url != ""
}

type LogConfig struct {
	Level  string `mapstructure:"log_level"`
	Format string `mapstructure:"log_format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_address", ":8080")
	v.SetDefault("data_dir", "")
	v.SetDefault("country", "se")

	v.SetDefault("redis_url", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("session_ttl", "24h")

	v.SetDefault("rabbit_url", "")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("read_header_timeout", "5s")
	v.SetDefault("read_timeout", "15s")
	v.SetDefault("write_timeout", "30s")
	v.SetDefault("idle_timeout", "60s")
	v.SetDefault("shutdown_timeout", "15s")
	v.SetDefault("hook_timeout", "5s")
}

// Load reads configuration from the environment (LISTEN_ADDRESS, REDIS_URL,
// ...) and, when file is not empty, from that config file first.
func Load(file string) (*Config, error) {
	return load(viper.New(), file)
}

func load(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config %s: %w", file, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.ListenAddress == "" {
		return nil, errors.New("listen address must not be empty")
	}
	if cfg.Country == "" {
		return nil, errors.New("country must not be empty")
	}
	return &cfg, nil
}

func (c *Config) Timeouts() common.TimeoutConfig {
	return common.TimeoutConfig{
		ReadHeader: c.ReadHeaderTimeout,
		Read:       c.ReadTimeout,
		Write:      c.WriteTimeout,
		Idle:       c.IdleTimeout,
		Shutdown:   c.ShutdownTimeout,
		Hook:       c.HookTimeout,
	}
}
