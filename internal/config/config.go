package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Firestore FirestoreConfig
	JWT       JWTConfig
	CORS      CORSConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// FirestoreConfig holds the connection settings for the document store.
// BaseURL is overridable so tests and emulators can point the client at
// a local endpoint.
type FirestoreConfig struct {
	ProjectID string
	Database  string
	BaseURL   string

	// Static bearer token for the store. When empty, the refresh-token
	// flow below is used instead.
	AccessToken string

	ClientID     string
	ClientSecret string
	RefreshToken string
	TokenURL     string
}

// JWTConfig holds JWT configuration for the API's own bearer tokens
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Document store configuration
	config.Firestore = FirestoreConfig{
		ProjectID:    getEnv("FIRESTORE_PROJECT_ID", ""),
		Database:     getEnv("FIRESTORE_DATABASE", "(default)"),
		BaseURL:      getEnv("FIRESTORE_BASE_URL", "https://firestore.googleapis.com/v1"),
		AccessToken:  getEnv("FIRESTORE_ACCESS_TOKEN", ""),
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RefreshToken: getEnv("REFRESH_TOKEN", ""),
		TokenURL:     getEnv("TOKEN_URL", "https://oauth2.googleapis.com/token"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}
	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Firestore.ProjectID == "" {
		return fmt.Errorf("FIRESTORE_PROJECT_ID is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Firestore.AccessToken == "" && c.Firestore.RefreshToken == "" {
		return fmt.Errorf("either FIRESTORE_ACCESS_TOKEN or REFRESH_TOKEN is required")
	}
	if c.Firestore.RefreshToken != "" {
		if c.Firestore.ClientID == "" {
			return fmt.Errorf("CLIENT_ID is required when using REFRESH_TOKEN")
		}
		if c.Firestore.ClientSecret == "" {
			return fmt.Errorf("CLIENT_SECRET is required when using REFRESH_TOKEN")
		}
	}
	return nil
}

// DocumentsRoot returns the resource path prefix for documents in the
// configured project and database.
func (c *FirestoreConfig) DocumentsRoot() string {
	return fmt.Sprintf("projects/%s/databases/%s/documents", c.ProjectID, c.Database)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string = strings.Split(value, ",")
	return result
}
