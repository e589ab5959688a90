package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	OIDC_ISSUER        string
	OIDC_CLIENT_ID     string
	OIDC_CLIENT_SECRET string
	OIDC_REDIRECT_URL  string
	FRONTEND_REDIRECT  string

	GCS_BUCKET string

	CORS_ORIGIN string

	PHOTOS_LIVE bool
	VIDEOS_LIVE bool

	DEMO_MODE bool
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	JWT_SECRET = mustEnv("JWT_SECRET")

	DEMO_MODE = getBool("DEMO_MODE", false)

	if DEMO_MODE {
		// Demo mode runs on an embedded database and the demo sign-in
		// endpoint, so the external collaborators are optional.
		DB_URL = getEnv("DB_URL", "")
		OIDC_ISSUER = getEnv("OIDC_ISSUER", "")
		OIDC_CLIENT_ID = getEnv("OIDC_CLIENT_ID", "")
		OIDC_CLIENT_SECRET = getEnv("OIDC_CLIENT_SECRET", "")
		OIDC_REDIRECT_URL = getEnv("OIDC_REDIRECT_URL", "")
	} else {
		DB_URL = mustEnv("DB_URL")
		OIDC_ISSUER = mustEnv("OIDC_ISSUER")
		OIDC_CLIENT_ID = mustEnv("OIDC_CLIENT_ID")
		OIDC_CLIENT_SECRET = mustEnv("OIDC_CLIENT_SECRET")
		OIDC_REDIRECT_URL = mustEnv("OIDC_REDIRECT_URL")
	}

	FRONTEND_REDIRECT = getEnv("FRONTEND_REDIRECT", "")
	GCS_BUCKET = getEnv("GCS_BUCKET", "")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")

	PHOTOS_LIVE = getBool("PHOTOS_LIVE", false)
	VIDEOS_LIVE = getBool("VIDEOS_LIVE", false)
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Fatalf("Invalid boolean for %s: %q", key, value)
	}
	return b
}
