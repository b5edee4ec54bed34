package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MaxStateTokenTTL bounds the OAuth state lifetime to a plausible round trip.
const MaxStateTokenTTL = 30 * time.Minute

type DB struct {
	DbHOST     string `env:"DB_HOST" envDefault:"localhost"`
	DbPORT     string `env:"DB_PORT" envDefault:"5432"`
	DbUSER     string `env:"DB_USER" envDefault:"postgres"`
	DbPASSWORD string `env:"DB_PASSWORD" envDefault:"password"`
	DbNAME     string `env:"DB_NAME" envDefault:"socialdash"`
	DbSSLMODE  string `env:"DB_SSLMODE" envDefault:"disable"`
}

type MinIO struct {
	Endpoint   string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	AccessKey  string `env:"MINIO_ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey  string `env:"MINIO_SECRET_KEY" envDefault:"minioadmin"`
	BucketName string `env:"MINIO_BUCKET_NAME" envDefault:"media"`
	UseSSL     bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	Region     string `env:"MINIO_REGION" envDefault:"us-east-1"`
	// PublicURL is the base the platforms fetch media from; empty means derive from Endpoint.
	PublicURL string `env:"MINIO_PUBLIC_URL"`
}

type Redis struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	LockTTL  time.Duration `env:"PUBLISH_LOCK_TTL" envDefault:"30s"`
}

// Platform holds the OAuth client registration of one social platform.
type Platform struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	// APIBaseURL overrides the platform API host (graph / api), mostly for tests.
	APIBaseURL string
}

type platformsEnv struct {
	FacebookAppID        string `env:"FB_APP_ID"`
	FacebookAppSecret    string `env:"FB_APP_SECRET"`
	FacebookRedirectURI  string `env:"FB_REDIRECT_URI"`
	FacebookGraphURL     string `env:"FB_GRAPH_URL"`
	InstagramAppID       string `env:"INSTAGRAM_APP_ID"`
	InstagramAppSecret   string `env:"INSTAGRAM_APP_SECRET"`
	InstagramRedirectURI string `env:"INSTAGRAM_REDIRECT_URI"`
	InstagramGraphURL    string `env:"INSTAGRAM_GRAPH_URL"`
	TwitterClientID      string `env:"TWITTER_CLIENT_ID"`
	TwitterClientSecret  string `env:"TWITTER_CLIENT_SECRET"`
	TwitterRedirectURI   string `env:"TWITTER_REDIRECT_URI"`
	TwitterAPIURL        string `env:"TWITTER_API_URL"`
}

type Config struct {
	ServerPort  int    `env:"SERVER_PORT" envDefault:"5000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	DB    DB
	MinIO MinIO
	Redis Redis

	JWTSecretKey        string        `env:"JWT_SECRET_KEY"`
	AccessTokenDuration time.Duration `env:"ACCESS_TOKEN_DURATION" envDefault:"168h"`
	StateSecretKey      string        `env:"STATE_SECRET"`
	StateTokenTTL       time.Duration `env:"STATE_TOKEN_TTL" envDefault:"10m"`
	// TokenEncryptionKey is a hex encoded 32 byte key for platform tokens at rest.
	TokenEncryptionKey string `env:"TOKEN_ENCRYPTION_KEY"`
	MaxUploadSize      int64  `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`

	Platforms map[string]Platform `env:"-"`
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка чтения конфигурации: %w", err)
	}

	var raw platformsEnv
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("ошибка чтения конфигурации платформ: %w", err)
	}
	cfg.Platforms = buildPlatforms(raw)

	if cfg.StateSecretKey == "" {
		cfg.StateSecretKey = cfg.JWTSecretKey
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the process cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecretKey == "" {
		return errors.New("JWT_SECRET_KEY не установлен")
	}
	if c.StateSecretKey == "" {
		return errors.New("STATE_SECRET не установлен")
	}
	if c.StateTokenTTL <= 0 || c.StateTokenTTL > MaxStateTokenTTL {
		return fmt.Errorf("STATE_TOKEN_TTL должен быть в диапазоне (0, %s]", MaxStateTokenTTL)
	}
	if c.AccessTokenDuration <= 0 {
		return errors.New("ACCESS_TOKEN_DURATION должен быть положительным")
	}
	return nil
}

func buildPlatforms(raw platformsEnv) map[string]Platform {
	platforms := make(map[string]Platform)

	if raw.FacebookAppID != "" {
		platforms["facebook"] = Platform{
			ClientID:     raw.FacebookAppID,
			ClientSecret: raw.FacebookAppSecret,
			RedirectURI:  raw.FacebookRedirectURI,
			APIBaseURL:   raw.FacebookGraphURL,
		}
	}
	if raw.InstagramAppID != "" {
		platforms["instagram"] = Platform{
			ClientID:     raw.InstagramAppID,
			ClientSecret: raw.InstagramAppSecret,
			RedirectURI:  raw.InstagramRedirectURI,
			APIBaseURL:   raw.InstagramGraphURL,
		}
	}
	if raw.TwitterClientID != "" {
		platforms["twitter"] = Platform{
			ClientID:     raw.TwitterClientID,
			ClientSecret: raw.TwitterClientSecret,
			RedirectURI:  raw.TwitterRedirectURI,
			APIBaseURL:   raw.TwitterAPIURL,
		}
	}

	return platforms
}
