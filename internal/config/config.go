package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the YAML config is looked up when CONFIG_PATH is unset
const DefaultPath = "configs/config.yaml"

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		URL             string        `yaml:"url" env:"DATABASE_URL"`
		Host            string        `yaml:"host" env:"DB_HOST"`
		Port            string        `yaml:"port" env:"DB_PORT"`
		User            string        `yaml:"user" env:"DB_USER"`
		Password        string        `yaml:"password" env:"DB_PASSWORD"`
		DBName          string        `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string        `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret    string        `yaml:"secret" env:"JWT_SECRET"`
		ExpiresIn time.Duration `yaml:"expires_in" env:"JWT_EXPIRES"`
		Issuer    string        `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Cookie struct {
		Name      string        `yaml:"name" env:"COOKIE_NAME"`
		ExpiresIn time.Duration `yaml:"expires_in" env:"COOKIE_EXPIRE,days"`
		Secure    bool          `yaml:"secure" env:"COOKIE_SECURE"`
		Domain    string        `yaml:"domain" env:"COOKIE_DOMAIN"`
	} `yaml:"cookie"`

	Auth struct {
		BcryptCost int `yaml:"bcrypt_cost" env:"BCRYPT_COST"`
	} `yaml:"auth"`

	OTP struct {
		Length int           `yaml:"length" env:"OTP_LENGTH"`
		TTL    time.Duration `yaml:"ttl" env:"OTP_TTL"`
	} `yaml:"otp"`

	Email struct {
		Host        string        `yaml:"host" env:"SMTP_HOST"`
		Port        int           `yaml:"port" env:"SMTP_PORT"`
		Username    string        `yaml:"username" env:"SMTP_USER"`
		Password    string        `yaml:"password" env:"SMTP_PASSWORD"`
		FromName    string        `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail   string        `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
		UseTLS      bool          `yaml:"use_tls" env:"SMTP_USE_TLS"`
		SendTimeout time.Duration `yaml:"send_timeout" env:"SMTP_SEND_TIMEOUT"`
	} `yaml:"email"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	} `yaml:"cors"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Seed struct {
		Enabled          bool   `yaml:"enabled" env:"SEED_ENABLED"`
		LecturerEmail    string `yaml:"lecturer_email" env:"SEED_LECTURER_EMAIL"`
		LecturerPassword string `yaml:"lecturer_password" env:"SEED_LECTURER_PASSWORD"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults and env vars still apply.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "attendance"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = time.Hour

	config.JWT.ExpiresIn = 2 * time.Hour
	config.JWT.Issuer = "attendance-system"

	config.Cookie.Name = "token"
	config.Cookie.ExpiresIn = 24 * time.Hour

	config.Auth.BcryptCost = 8

	config.OTP.Length = 6
	config.OTP.TTL = 10 * time.Minute

	config.Email.Port = 587
	config.Email.FromName = "Attendance System"
	config.Email.SendTimeout = 15 * time.Second

	config.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Seed.LecturerEmail = "demo.lecturer@example.com"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.URL == "" && config.Database.Host == "" {
		return fmt.Errorf("database url or host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if config.JWT.ExpiresIn <= 0 {
		return fmt.Errorf("JWT expiration must be positive, got %s", config.JWT.ExpiresIn)
	}

	if config.Cookie.Name == "" {
		return fmt.Errorf("cookie name is required")
	}

	if config.Cookie.ExpiresIn <= 0 {
		return fmt.Errorf("cookie expiration must be positive, got %s", config.Cookie.ExpiresIn)
	}

	if config.Auth.BcryptCost < bcrypt.MinCost || config.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if config.OTP.Length < 4 || config.OTP.Length > 10 {
		return fmt.Errorf("otp length must be between 4 and 10, got %d", config.OTP.Length)
	}

	if config.OTP.TTL <= 0 {
		return fmt.Errorf("otp ttl must be positive, got %s", config.OTP.TTL)
	}

	if config.Seed.Enabled && len(config.Seed.LecturerPassword) < 8 {
		return fmt.Errorf("seed lecturer password must be at least 8 characters when seeding is enabled")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string.
// An explicit database url wins over the discrete fields.
func (c *Config) GetPostgresConnectionString() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in release mode
func (c *Config) IsProduction() bool {
	mode := strings.ToLower(c.Server.Mode)
	return mode == "production" || mode == "release"
}

// Path returns the config file location, honouring CONFIG_PATH
func Path() string {
	if p, ok := os.LookupEnv("CONFIG_PATH"); ok && p != "" {
		return p
	}
	return DefaultPath
}
