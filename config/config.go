package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	API      APIConfig      `koanf:"api"`
	Storage  StorageConfig  `koanf:"storage"`
	Redis    RedisConfig    `koanf:"redis"`
	Logging  LoggingConfig  `koanf:"logging"`
	Seed     SeedConfig     `koanf:"seed"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Environment     string        `koanf:"environment"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// TokenRateLimit is the number of token requests allowed per client IP
	// per minute. Zero disables the limiter.
	TokenRateLimit int `koanf:"token_rate_limit"`
	TokenRateBurst int `koanf:"token_rate_burst"`
}

type DatabaseConfig struct {
	URL         string `koanf:"url"`
	Host        string `koanf:"host"`
	Port        int    `koanf:"port"`
	User        string `koanf:"user"`
	Password    string `koanf:"password"`
	Name        string `koanf:"name"`
	SSLMode     string `koanf:"sslmode"`
	AutoMigrate bool   `koanf:"auto_migrate"`
}

// DSN returns URL when set, otherwise a key/value postgres DSN.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

type AuthConfig struct {
	JWTSecret            string        `koanf:"jwt_secret"`
	AccessTokenLifetime  time.Duration `koanf:"access_token_lifetime"`
	RefreshTokenLifetime time.Duration `koanf:"refresh_token_lifetime"`
	// RotateRefreshTokens makes the refresh endpoint return a new refresh
	// token and blacklist the one it was given.
	RotateRefreshTokens bool `koanf:"rotate_refresh_tokens"`
	UpdateLastLogin     bool `koanf:"update_last_login"`
}

type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// StorageConfig describes the S3-compatible bucket that holds post images.
// Leaving Bucket empty disables image uploads.
type StorageConfig struct {
	Endpoint        string `koanf:"endpoint"`
	AccountID       string `koanf:"account_id"`
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key"`
	Bucket          string `koanf:"bucket"`
	PublicURL       string `koanf:"public_url"`
	Region          string `koanf:"region"`
	UsePathStyle    bool   `koanf:"use_path_style"`
	MaxImageSize    int64  `koanf:"max_image_size"`
}

// Enabled reports whether a bucket is configured.
func (s StorageConfig) Enabled() bool {
	return s.Bucket != ""
}

// RedisConfig selects the Redis token blacklist when Addr is set.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SeedConfig drives the seed bot.
type SeedConfig struct {
	NumberOfUsers   int `koanf:"number_of_users"`
	MaxPostsPerUser int `koanf:"max_posts_per_user"`
	MaxLikesPerUser int `koanf:"max_likes_per_user"`
}

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/social-api/config.yaml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Environment:     "development",
			ShutdownTimeout: 15 * time.Second,
			TokenRateLimit:  30,
			TokenRateBurst:  10,
		},
		Database: DatabaseConfig{
			Host:        "localhost",
			Port:        5432,
			User:        "postgres",
			Password:    "postgres",
			Name:        "social",
			SSLMode:     "disable",
			AutoMigrate: true,
		},
		Auth: AuthConfig{
			AccessTokenLifetime:  5 * time.Minute,
			RefreshTokenLifetime: 24 * time.Hour,
			RotateRefreshTokens:  false,
			UpdateLastLogin:      true,
		},
		API: APIConfig{
			DefaultPageSize: 10,
			MaxPageSize:     100,
		},
		Storage: StorageConfig{
			Region:       "auto",
			MaxImageSize: 10 << 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Seed: SeedConfig{
			NumberOfUsers:   10,
			MaxPostsPerUser: 5,
			MaxLikesPerUser: 10,
		},
	}
}

// Default returns the built-in configuration without reading files or env.
func Default() *Config {
	return defaultConfig()
}

// Load layers defaults, an optional YAML file and environment variables, in
// that order of increasing priority. An empty path searches CONFIG_PATH and
// DefaultConfigPaths; a non-empty path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envAliases maps the flat variable names used in deployments onto config
// paths. Anything else must use the SOCIAL_ prefix form, e.g.
// SOCIAL_API__MAX_PAGE_SIZE -> api.max_page_size.
var envAliases = map[string]string{
	"PORT":                         "server.port",
	"HOST":                         "server.host",
	"ENVIRONMENT":                  "server.environment",
	"DATABASE_URL":                 "database.url",
	"DB_HOST":                      "database.host",
	"DB_PORT":                      "database.port",
	"DB_USER":                      "database.user",
	"DB_PASSWORD":                  "database.password",
	"DB_NAME":                      "database.name",
	"DB_SSLMODE":                   "database.sslmode",
	"JWT_SECRET":                   "auth.jwt_secret",
	"ACCESS_TOKEN_LIFETIME":        "auth.access_token_lifetime",
	"REFRESH_TOKEN_LIFETIME":       "auth.refresh_token_lifetime",
	"ROTATE_REFRESH_TOKENS":        "auth.rotate_refresh_tokens",
	"CLOUDFLARE_ACCOUNT_ID":        "storage.account_id",
	"CLOUDFLARE_ACCESS_KEY_ID":     "storage.access_key_id",
	"CLOUDFLARE_SECRET_ACCESS_KEY": "storage.secret_access_key",
	"CLOUDFLARE_BUCKET_NAME":       "storage.bucket",
	"CLOUDFLARE_PUBLIC_URL":        "storage.public_url",
	"S3_ENDPOINT":                  "storage.endpoint",
	"REDIS_ADDR":                   "redis.addr",
	"REDIS_PASSWORD":               "redis.password",
	"LOG_LEVEL":                    "logging.level",
	"LOG_FORMAT":                   "logging.format",
	"SEED_NUMBER_OF_USERS":         "seed.number_of_users",
	"SEED_MAX_POSTS_PER_USER":      "seed.max_posts_per_user",
	"SEED_MAX_LIKES_PER_USER":      "seed.max_likes_per_user",
}

const envPrefix = "SOCIAL_"

// envTransformFunc returns "" for variables that should be ignored.
func envTransformFunc(key string) string {
	if path, ok := envAliases[key]; ok {
		return path
	}
	if strings.HasPrefix(key, envPrefix) {
		key = strings.TrimPrefix(key, envPrefix)
		return strings.ToLower(strings.ReplaceAll(key, "__", "."))
	}
	return ""
}

// Validate checks settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret (JWT_SECRET) is required"))
	}
	if c.Auth.AccessTokenLifetime <= 0 || c.Auth.RefreshTokenLifetime <= 0 {
		errs = append(errs, errors.New("token lifetimes must be positive"))
	}
	if c.API.DefaultPageSize <= 0 {
		errs = append(errs, errors.New("api.default_page_size must be positive"))
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		errs = append(errs, errors.New("api.max_page_size must be >= api.default_page_size"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	return errors.Join(errs...)
}

// Validate checks the seed bot parameters.
func (s SeedConfig) Validate() error {
	if s.NumberOfUsers < 1 || s.MaxPostsPerUser < 1 || s.MaxLikesPerUser < 1 {
		return fmt.Errorf("seed parameters must be >= 1 (users=%d posts=%d likes=%d)",
			s.NumberOfUsers, s.MaxPostsPerUser, s.MaxLikesPerUser)
	}
	return nil
}
