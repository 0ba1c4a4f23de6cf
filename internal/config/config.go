package config

import (
	"errors"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Seed     SeedConfig
}

type ServerConfig struct {
	Host         string        `env:"SERVER_HOST" env-default:"0.0.0.0"`
	Port         int           `env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"30s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
}

type DatabaseConfig struct {
	Host         string `env:"DB_HOST" env-default:"localhost"`
	Port         int    `env:"DB_PORT" env-default:"5432"`
	User         string `env:"DB_USER" env-default:"postgres"`
	Password     string `env:"DB_PASSWORD" env-default:"postgres"`
	Database     string `env:"DB_NAME" env-default:"taskmanager"`
	SSLMode      string `env:"DB_SSL_MODE" env-default:"disable"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
}

// JWTConfig carries the token signing parameters. Secret, Issuer and
// Audience have no defaults: a deployment that omits them must not start.
type JWTConfig struct {
	Secret        string `env:"JWT_SECRET"`
	Issuer        string `env:"JWT_ISSUER"`
	Audience      string `env:"JWT_AUDIENCE"`
	ExpiryMinutes int    `env:"JWT_EXPIRY_MINUTES" env-default:"60"`
}

// SeedConfig describes the two accounts created when the users table is
// empty. Seeding is the only path that produces an Admin account.
type SeedConfig struct {
	AdminEmail    string `env:"SEED_ADMIN_EMAIL" env-default:"admin@taskmanager.com"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD" env-default:"Admin@123"`
	UserEmail     string `env:"SEED_USER_EMAIL" env-default:"user@taskmanager.com"`
	UserPassword  string `env:"SEED_USER_PASSWORD" env-default:"User@123"`
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	if cfg.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	if cfg.JWT.Issuer == "" {
		return nil, errors.New("JWT_ISSUER must be set")
	}
	if cfg.JWT.Audience == "" {
		return nil, errors.New("JWT_AUDIENCE must be set")
	}
	if cfg.JWT.ExpiryMinutes <= 0 {
		return nil, errors.New("JWT_EXPIRY_MINUTES must be positive")
	}

	return &cfg, nil
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Database +
		" sslmode=" + c.SSLMode
}
