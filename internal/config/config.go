package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	MinBcryptCost = 10

	DefaultAdminPassword = "admin123"
)

type Config struct {
	Env     string        `mapstructure:"env"`
	Port    string        `mapstructure:"port"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"db"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Admin   AdminConfig   `mapstructure:"admin"`
	Uploads UploadsConfig `mapstructure:"uploads"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Server  ServerConfig  `mapstructure:"server"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DBConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
	// ResetToken enables POST /api/auth/reset-admin when non-empty.
	ResetToken string `mapstructure:"reset_token"`
}

type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type UploadsConfig struct {
	Dir       string `mapstructure:"dir"`
	URLPrefix string `mapstructure:"url_prefix"`
	MaxBytes  int64  `mapstructure:"max_bytes"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
}

// legacyEnv lists the plain environment names accepted next to the
// dotted-key form (AUTH_JWT_SECRET etc.).
var legacyEnv = map[string]string{
	"port":            "PORT",
	"env":             "APP_ENV",
	"db.dsn":          "DATABASE_URL",
	"auth.jwt_secret": "JWT_SECRET",
	"admin.email":     "ADMIN_EMAIL",
	"admin.password":  "ADMIN_PASSWORD",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("port", "5000")
	v.SetDefault("log.level", "info")

	v.SetDefault("db.driver", "")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.bcrypt_cost", MinBcryptCost)
	v.SetDefault("auth.reset_token", "")

	v.SetDefault("admin.email", "admin@example.com")
	v.SetDefault("admin.password", DefaultAdminPassword)

	v.SetDefault("uploads.dir", "uploads")
	v.SetDefault("uploads.url_prefix", "/uploads")
	v.SetDefault("uploads.max_bytes", 5<<20)

	v.SetDefault("cors.allowed_origins", []string{})

	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
}

// Load reads .env (if present), then config.yml from the given directories
// (default "configs", optional), then the environment.
func Load(configDirs ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	if len(configDirs) == 0 {
		configDirs = []string{"configs"}
	}
	for _, dir := range configDirs {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envKey, legacy); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDerived fills values that depend on other keys.
func (c *Config) applyDerived() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.DB.Driver == "" {
		if strings.HasPrefix(c.DB.DSN, "postgres://") || strings.HasPrefix(c.DB.DSN, "postgresql://") {
			c.DB.Driver = "postgres"
		} else {
			c.DB.Driver = "sqlite"
		}
	}
	if len(c.CORS.AllowedOrigins) == 0 && !c.IsProduction() {
		c.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if c.Uploads.URLPrefix != "" && !strings.HasPrefix(c.Uploads.URLPrefix, "/") {
		c.Uploads.URLPrefix = "/" + c.Uploads.URLPrefix
	}
	c.Uploads.URLPrefix = strings.TrimRight(c.Uploads.URLPrefix, "/")
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("auth.jwt_secret (JWT_SECRET) is required")
	}
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("db.driver %q is not supported", c.DB.Driver)
	}
	if c.Auth.BcryptCost < MinBcryptCost {
		return fmt.Errorf("auth.bcrypt_cost must be at least %d", MinBcryptCost)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}
	if c.Uploads.MaxBytes <= 0 {
		return fmt.Errorf("uploads.max_bytes must be positive")
	}
	if c.Uploads.URLPrefix == "" {
		return fmt.Errorf("uploads.url_prefix is required")
	}
	if c.Admin.Email == "" || c.Admin.Password == "" {
		return fmt.Errorf("admin.email and admin.password are required")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// UsesDefaultAdminPassword reports whether the bootstrap admin would get the
// well-known default password.
func (c *Config) UsesDefaultAdminPassword() bool {
	return c.Admin.Password == DefaultAdminPassword
}
