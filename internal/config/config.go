package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	Store StoreConfig
	Keys  APIKeys
	Ai    AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	BoardEventTopic    string
}

type StoreConfig struct {
	// Driver selects the key-value backend: "file" (default) or "memory".
	Driver  string
	DataDir string
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	GeminiModel    string
	GeminiBaseURL  string
	DocumentAiURL  string
	RequestTimeout int // seconds
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			BoardEventTopic:    getEnv("BOARD_EVENT_TOPIC_NAME", "BOARD_CHANGED"),
		},
		Store: StoreConfig{
			Driver:  getEnv("STORE_DRIVER", "file"),
			DataDir: getEnv("STORE_DATA_DIR", "./data"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			GeminiBaseURL:  getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			DocumentAiURL:  getEnv("DOCUMENT_AI_URL", "http://localhost:5001/api"),
			RequestTimeout: getEnvAsInt("AI_REQUEST_TIMEOUT_SECONDS", 120),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
