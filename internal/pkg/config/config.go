package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	SMTP    SMTPConfig
	S3      S3Config
	Paypack PaypackConfig
	Auth    AuthConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=movie_api"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host    string `env:"SMTP_HOST, default=smtp.gmail.com"`
	Port    string `env:"SMTP_PORT, default=587"`
	User    string `env:"SMTP_USER"`
	Pass    string `env:"SMTP_PASS"`
	From    string `env:"SMTP_FROM"`
	Workers int    `env:"MAIL_WORKERS, default=4"`
}

type S3Config struct {
	Region          string `env:"S3_REGION,   default=us-east-1"`
	Bucket          string `env:"S3_BUCKET,   default=movie-api"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	Endpoint        string `env:"S3_ENDPOINT"`
}

type PaypackConfig struct {
	BaseURL      string `env:"PAYPACK_BASE_URL,    default=https://payments.paypack.rw/api"`
	ClientID     string `env:"PAYPACK_CLIENT_ID"`
	ClientSecret string `env:"PAYPACK_CLIENT_SECRET"`
	Environment  string `env:"PAYPACK_ENVIRONMENT, default=production"`
}

type AuthConfig struct {
	OTPTTL        time.Duration `env:"OTP_TTL,        default=5m"`
	ResetCooldown time.Duration `env:"RESET_COOLDOWN, default=60s"`
	BcryptCost    int           `env:"BCRYPT_COST,    default=10"`
}

// IsDevelopment reports whether the process runs with ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
