package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Booking   BookingConfig   `mapstructure:"booking"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Addr    string `mapstructure:"addr"`
	GinMode string `mapstructure:"gin_mode"`
}

type DatabaseConfig struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Name     string `mapstructure:"name"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type BookingConfig struct {
	// AutoConfirm makes new bookings start confirmed instead of pending.
	AutoConfirm bool `mapstructure:"auto_confirm"`
	// CommissionRate is the booking-man dashboard commission share of
	// confirmed revenue. Treated as a placeholder until product confirms it.
	CommissionRate float64 `mapstructure:"commission_rate"`
}

type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

// Load reads config/config.yaml when present and lets APP_* environment
// variables override individual keys. Missing file falls back to defaults so
// a bare binary still boots against localhost.
func Load() (*Config, error) {
	v := viper.New()

	v.AddConfigPath("./config")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.gin_mode", "")

	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.name", "bus_booking")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime", 10*time.Minute)
	v.SetDefault("database.conn_max_idle_time", 5*time.Minute)

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "super-secret-key-change-me")
	v.SetDefault("auth.token_ttl", 24*time.Hour)

	v.SetDefault("booking.auto_confirm", false)
	v.SetDefault("booking.commission_rate", 0.05)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.limit", 120)
	v.SetDefault("rate_limit.window", time.Minute)
}
