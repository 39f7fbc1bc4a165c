package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	GinMode     string   `env:"GIN_MODE" env-default:"debug"`
	ServerAddr  string   `env:"SERVER_ADDR" env-default:":8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" env-default:"http://localhost:5173,http://127.0.0.1:5173"`

	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"taskuser"`
	DBPassword string `env:"DB_PASSWORD" env-default:"taskpassword"`
	DBName     string `env:"DB_NAME" env-default:"task_tracking"`
	DBSSLMode  string `env:"DB_SSL_MODE" env-default:"disable"`

	JWTSecret      string        `env:"JWT_SECRET" env-default:"dev-secret-change-me"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" env-default:"8h"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
