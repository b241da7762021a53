package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName             string
	AppEnv              string
	AppPort             string
	DatabaseURL         string
	RedisURL            string
	NATSURL             string
	CORSOrigins         string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	StorageBucket       string
	SignedURLTTL        time.Duration
	StatsCacheTTL       time.Duration
	JWTSecret           string
	JWTExpiration       time.Duration
	EmailAPIKey         string
	EmailFromAddress    string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("EXAMVAULT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "ExamVault API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("cors.origins", "*")
	v.SetDefault("storage.bucket", "exam-pdfs")
	v.SetDefault("signed_url.ttl", "1h")
	v.SetDefault("stats.cache_ttl", "5m")
	v.SetDefault("jwt.expiration", "24h")

	signedTTL, err := time.ParseDuration(v.GetString("signed_url.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid signed url ttl: %w", err)
	}

	statsTTL, err := time.ParseDuration(v.GetString("stats.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid stats cache ttl: %w", err)
	}

	jwtExpiration, err := time.ParseDuration(v.GetString("jwt.expiration"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt expiration: %w", err)
	}

	cfg := Config{
		AppName:             v.GetString("app.name"),
		AppEnv:              v.GetString("app.env"),
		AppPort:             v.GetString("app.port"),
		DatabaseURL:         v.GetString("database.url"),
		RedisURL:            v.GetString("redis.url"),
		NATSURL:             v.GetString("nats.url"),
		CORSOrigins:         v.GetString("cors.origins"),
		CloudinaryCloudName: v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:    v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret: v.GetString("cloudinary.api_secret"),
		StorageBucket:       v.GetString("storage.bucket"),
		SignedURLTTL:        signedTTL,
		StatsCacheTTL:       statsTTL,
		JWTSecret:           v.GetString("jwt.secret"),
		JWTExpiration:       jwtExpiration,
		EmailAPIKey:         v.GetString("email.api_key"),
		EmailFromAddress:    v.GetString("email.from_address"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	if cfg.SignedURLTTL <= 0 {
		cfg.SignedURLTTL = time.Hour
	}

	return cfg, nil
}
