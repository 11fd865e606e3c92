package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	GuestDBPath     string
	JWTSecret       string
	ServerPort      string
	SitePassword    string
	GeminiAPIKey    string
	EuroparlBaseURL string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "eurolens"),
		GuestDBPath:     getEnv("GUEST_DB_PATH", "guest.db"),
		JWTSecret:       getEnv("JWT_SECRET", "secret"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		SitePassword:    getEnv("SITE_PASSWORD", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		EuroparlBaseURL: getEnv("EUROPARL_BASE_URL", "https://data.europarl.europa.eu/api/v2"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
