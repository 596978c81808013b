package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Rules    Rules
}

type AppConfig struct {
	Port               string
	ClientURL          string
	Environment        string
	LogFilePath        string
	NotificationLog    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
	JwtTTL             time.Duration
	RealtimeTopic      string
}

type DatabaseConfig struct {
	// Connection is a Postgres DSN. When empty the SQLite file at SQLitePath is used.
	Connection string
	SQLitePath string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	LLMProvider  string // "gemini" or "ollama"
	LLMModel     string
	OllamaURL    string
	MLServiceURL string
	Timeout      time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	rules, err := LoadRules()
	if err != nil {
		log.Printf("[WARN] Failed to load gamification rules, using defaults: %v", err)
		rules = DefaultRules()
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("PORT", "5001"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			NotificationLog:    getEnv("NOTIFICATION_LOG_PATH", "logs/notification.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			JwtSecret:          getEnv("JWT_SECRET", "collabhub-dev-secret"),
			JwtTTL:             getEnvAsDuration("JWT_TTL", 30*24*time.Hour),
			RealtimeTopic:      getEnv("REALTIME_TOPIC", "notifications.realtime"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			SQLitePath: getEnv("SQLITE_PATH", "collabhub.db"),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "CollabHub"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:  getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:     getEnv("LLM_MODEL", "gemini-1.5-flash"),
			OllamaURL:    getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			MLServiceURL: getEnv("ML_SERVICE_URL", "http://localhost:5008"),
			Timeout:      getEnvAsDuration("AI_TIMEOUT", 60*time.Second),
		},
		Rules: rules,
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
