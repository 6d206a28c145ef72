package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	DBSource      string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	RefreshSecret string
	TokenTTL      time.Duration
	UploadDir     string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Load() (*Config, error) {
	// Optional; real deployments set the environment directly.
	_ = godotenv.Load()

	dbSource := os.Getenv("DB_SOURCE")
	if dbSource == "" {
		return nil, fmt.Errorf("DB_SOURCE environment variable is required")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	ttlHours := 24
	if v := os.Getenv("JWT_TTL_HOURS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_TTL_HOURS: %w", err)
		}
		ttlHours = n
	}

	return &Config{
		Port:          getenv("SERVER_PORT", "8080"),
		Env:           getenv("ENVIRONMENT", "development"),
		DBSource:      dbSource,
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getenv("MONGO_DATABASE", "leafloop"),
		JWTSecret:     secret,
		RefreshSecret: getenv("JWT_REFRESH_SECRET", secret),
		TokenTTL:      time.Duration(ttlHours) * time.Hour,
		UploadDir:     getenv("UPLOAD_DIR", "uploads"),
	}, nil
}
