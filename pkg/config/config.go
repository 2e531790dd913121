package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	CORS       CORSConfig       `mapstructure:"cors"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Validation ValidationConfig `mapstructure:"validation"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

type AppConfig struct {
	Name      string `mapstructure:"name"`
	Version   string `mapstructure:"version"`
	APIPrefix string `mapstructure:"api_prefix"`
	LogLevel  string `mapstructure:"log_level"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

type RateLimitConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	ReadLimit     int    `mapstructure:"read_limit"`
	WriteLimit    int    `mapstructure:"write_limit"`
	AuthLimit     int    `mapstructure:"auth_limit"`
	Window        string `mapstructure:"window"`
	RetryAfterSec int    `mapstructure:"retry_after_seconds"`
}

type AuthConfig struct {
	Required               bool   `mapstructure:"required"`
	SecretKey              string `mapstructure:"secret_key"`
	AccessTokenExpiryMins  int    `mapstructure:"access_token_expiry_minutes"`
	RefreshTokenExpiryDays int    `mapstructure:"refresh_token_expiry_days"`
	PasswordMinLength      int    `mapstructure:"password_min_length"`
	BcryptCost             int    `mapstructure:"bcrypt_cost"`
}

// ValidationConfig drives the request validation pipeline. It is loaded once
// at startup and must not be mutated afterwards; every component holds a
// read-only reference.
type ValidationConfig struct {
	MaxBodySize       int64    `mapstructure:"max_body_size"`
	HTMLCheckEnabled  bool     `mapstructure:"html_check_enabled"`
	SQLCheckEnabled   bool     `mapstructure:"sql_check_enabled"`
	ForbiddenWords    []string `mapstructure:"forbidden_words"`
	LoggingEnabled    bool     `mapstructure:"logging_enabled"`
	TitleMaxLength    int      `mapstructure:"title_max_length"`
	DescriptionMaxLen int      `mapstructure:"description_max_length"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

var globalConfig Config

func Load(configPath string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No file is fine, environment variables still apply.
	}

	if err := viper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	setDefaultValues()

	return nil
}

func setDefaultValues() {
	if globalConfig.App.Name == "" {
		globalConfig.App.Name = "Task Tracker API"
	}
	if globalConfig.App.Version == "" {
		globalConfig.App.Version = "1.0.0"
	}
	if globalConfig.App.APIPrefix == "" {
		globalConfig.App.APIPrefix = "/api/v1"
	}
	if globalConfig.App.LogLevel == "" {
		globalConfig.App.LogLevel = "info"
	}
	if globalConfig.Server.Port == 0 {
		globalConfig.Server.Port = 8080
	}
	if globalConfig.Database.SSLMode == "" {
		globalConfig.Database.SSLMode = "disable"
	}
	if globalConfig.RateLimit.ReadLimit == 0 {
		globalConfig.RateLimit.ReadLimit = 200
	}
	if globalConfig.RateLimit.WriteLimit == 0 {
		globalConfig.RateLimit.WriteLimit = 50
	}
	if globalConfig.RateLimit.AuthLimit == 0 {
		globalConfig.RateLimit.AuthLimit = 10
	}
	if globalConfig.RateLimit.Window == "" {
		globalConfig.RateLimit.Window = "1m"
	}
	if globalConfig.RateLimit.RetryAfterSec == 0 {
		globalConfig.RateLimit.RetryAfterSec = 60
	}
	if globalConfig.Auth.AccessTokenExpiryMins == 0 {
		globalConfig.Auth.AccessTokenExpiryMins = 30
	}
	if globalConfig.Auth.RefreshTokenExpiryDays == 0 {
		globalConfig.Auth.RefreshTokenExpiryDays = 7
	}
	if globalConfig.Auth.PasswordMinLength == 0 {
		globalConfig.Auth.PasswordMinLength = 8
	}
	if globalConfig.Auth.BcryptCost == 0 {
		globalConfig.Auth.BcryptCost = 12
	}
	if globalConfig.Metrics.Port == 0 {
		globalConfig.Metrics.Port = 9090
	}
	applyValidationDefaults(&globalConfig.Validation)
}

func applyValidationDefaults(v *ValidationConfig) {
	if v.MaxBodySize == 0 {
		v.MaxBodySize = 1048576 // 1MB
	}
	if v.TitleMaxLength == 0 {
		v.TitleMaxLength = 200
	}
	if v.DescriptionMaxLen == 0 {
		v.DescriptionMaxLen = 1000
	}
}

func GetConfig() *Config {
	return &globalConfig
}

// DefaultValidationConfig returns a ValidationConfig with every check
// enabled and the documented defaults applied.
func DefaultValidationConfig() *ValidationConfig {
	v := &ValidationConfig{
		HTMLCheckEnabled: true,
		SQLCheckEnabled:  true,
		LoggingEnabled:   true,
	}
	applyValidationDefaults(v)
	return v
}
