package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting, decoded from the environment.
type Config struct {
	Port     string `env:"PORT,default=3000"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	MongoURI string `env:"MONGO_URI,default=mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB,default=unlinked"`

	JWTSecret string `env:"JWT_SECRET,default=fallback-secret-key"`

	// Base URL of the web client, used to build profile/post links in emails.
	ClientURL string `env:"CLIENT_URL,default=http://localhost:5173"`

	ResendAPIKey  string `env:"RESEND_API_KEY"`
	EmailFrom     string `env:"EMAIL_FROM,default=no-reply@unlinked.local"`
	EmailFromName string `env:"EMAIL_FROM_NAME,default=UnLinked"`

	RedisAddr string `env:"REDIS_ADDR"`

	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET,default=unlinked-media"`
	MinioSecure    bool   `env:"MINIO_SECURE,default=false"`
	// Public base URL for uploaded objects. Defaults to the endpoint itself.
	MinioPublicURL string `env:"MINIO_PUBLIC_URL"`
}

// Load reads .env (when present) and decodes the environment into a Config.
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.MinioPublicURL == "" && cfg.MinioEndpoint != "" {
		scheme := "http"
		if cfg.MinioSecure {
			scheme = "https"
		}
		cfg.MinioPublicURL = fmt.Sprintf("%s://%s", scheme, cfg.MinioEndpoint)
	}

	return &cfg, nil
}
