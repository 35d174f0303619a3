package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

var ErrUnsupportedDatabaseURL = errors.New("DATABASE_URL must be a mongodb:// or postgres:// connection string")

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort      string        `env:"HTTP_PORT" envDefault:"3000"`
	AppEnv        string        `env:"APP_ENV" envDefault:"development"`
	DatabaseURL   string        `env:"DATABASE_URL,required,notEmpty"`
	MongoDatabase string        `env:"MONGO_DATABASE" envDefault:"blog"`
	JWTSecret     string        `env:"JWT_TOKEN_KEY,required,notEmpty"`
	JWTTTL        time.Duration `env:"JWT_TTL" envDefault:"120h"`
	JWTGoogleTTL  time.Duration `env:"JWT_GOOGLE_TTL" envDefault:"48h"`
	StaticDir     string        `env:"STATIC_DIR" envDefault:"client/dist"`
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	SigninWindow  time.Duration `env:"SIGNIN_RATE_WINDOW" envDefault:"15m"`
	SigninMax     int           `env:"SIGNIN_RATE_MAX" envDefault:"10"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.DatabaseDriver(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction indica si las cookies deben marcarse Secure.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.AppEnv), "production")
}

// DatabaseDriver deduce el backend a partir del esquema de DATABASE_URL.
func (c *Config) DatabaseDriver() (string, error) {
	url := strings.ToLower(strings.TrimSpace(c.DatabaseURL))
	switch {
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		return DriverMongo, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DriverPostgres, nil
	default:
		return "", ErrUnsupportedDatabaseURL
	}
}
