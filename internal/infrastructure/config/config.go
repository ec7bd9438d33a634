package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root of all runtime settings.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	HTTP     HTTPConfig     `mapstructure:"http"`
}

// AppConfig identifies the service instance.
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

// DatabaseConfig holds PostgreSQL connection and pool settings.
// Lifetime values are minutes.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret                 string        `mapstructure:"secret"`
	RefreshSecret          string        `mapstructure:"refresh_secret"`
	AccessTokenExpiration  time.Duration `mapstructure:"access_token_expiration"`
	RefreshTokenExpiration time.Duration `mapstructure:"refresh_token_expiration"`
	Issuer                 string        `mapstructure:"issuer"`
}

// AuthConfig holds account lockout settings.
type AuthConfig struct {
	MaxLoginAttempts int           `mapstructure:"max_login_attempts"`
	LockDuration     time.Duration `mapstructure:"lock_duration"`
}

// LogConfig controls the logger. Level is one of debug, info, warn, error;
// Format is json or console; Output is stdout, stderr or a file path.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// HTTPConfig holds server and CORS settings.
type HTTPConfig struct {
	ReadTimeout      time.Duration `mapstructure:"read_timeout"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout"`
	IdleTimeout      time.Duration `mapstructure:"idle_timeout"`
	MaxHeaderBytes   int           `mapstructure:"max_header_bytes"`
	CORSAllowOrigins []string      `mapstructure:"cors_allow_origins"`
	CORSAllowMethods []string      `mapstructure:"cors_allow_methods"`
	CORSAllowHeaders []string      `mapstructure:"cors_allow_headers"`
	TrustedProxies   []string      `mapstructure:"trusted_proxies"`
}

// defaults is keyed by the dotted config path. cors_allow_origins has no
// entry on purpose: an empty origin list blocks cross-origin requests until
// a deployment configures one.
var defaults = map[string]any{
	"app.name": "pharmacy-api",
	"app.env":  "development",
	"app.port": "8080",

	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.dbname":             "pharmacy",
	"database.sslmode":            "disable",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  60,
	"database.conn_max_idle_time": 30,

	"redis.host": "localhost",
	"redis.port": 6379,

	"jwt.access_token_expiration":  15 * time.Minute,
	"jwt.refresh_token_expiration": 168 * time.Hour,
	"jwt.issuer":                   "pharmacy-api",

	"auth.max_login_attempts": 5,
	"auth.lock_duration":      15 * time.Minute,

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout":       15 * time.Second,
	"http.write_timeout":      15 * time.Second,
	"http.idle_timeout":       60 * time.Second,
	"http.max_header_bytes":   1 << 20,
	"http.cors_allow_methods": []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
	"http.cors_allow_headers": []string{"Content-Type", "Authorization", "X-Request-ID"},
}

// Load resolves configuration in priority order: environment variables with
// the PHARMACY_ prefix (e.g. PHARMACY_DATABASE_PASSWORD) override config.toml,
// which overrides the built-in defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	// Registering defaults also makes every key visible to AutomaticEnv.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("PHARMACY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Running without a config file is supported.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.App.Env != "production" {
		return nil
	}

	// Production refuses to start on credentials or transport settings that
	// are only acceptable on a developer machine.
	switch {
	case c.JWT.Secret == "":
		return fmt.Errorf("jwt.secret is required in production")
	case len(c.JWT.Secret) < 32:
		return fmt.Errorf("jwt.secret must be at least 32 characters in production")
	case c.Database.Password == "":
		return fmt.Errorf("database.password is required in production")
	case c.Database.SSLMode == "disable":
		return fmt.Errorf("database.sslmode cannot be 'disable' in production")
	}
	for _, origin := range c.HTTP.CORSAllowOrigins {
		if origin == "*" {
			return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
		}
	}
	return nil
}

// DSN returns the PostgreSQL connection URL with escaped credentials.
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the Redis address in host:port form.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
