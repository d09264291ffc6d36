package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string
	HTTPAddr     string
	JWTSecret    string

	// LLM providers
	GeminiAPIKey    string
	GroqAPIKey      string
	AdviceCachePath string

	// External food database (optional)
	FoodAPIURL string
	FoodAPIKey string

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	groqAPIKey := os.Getenv("GROQ_API_KEY")
	if geminiAPIKey == "" && groqAPIKey == "" {
		return nil, fmt.Errorf("no LLM provider configured: set GEMINI_API_KEY or GROQ_API_KEY")
	}

	dbPath := os.Getenv("AYURDIET_DB_PATH")
	if dbPath == "" {
		dbPath = "data/ayurdiet.db"
	}

	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	cachePath := os.Getenv("ADVICE_CACHE_PATH")
	if cachePath == "" {
		cachePath = "data/advice_cache.json"
	}

	// Telegram config (optional for CLI and API, required for the bot)
	var allowedIDs []int64
	if raw := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q: %w", part, err)
			}
			allowedIDs = append(allowedIDs, id)
		}
	}

	return &Config{
		DatabasePath:           dbPath,
		HTTPAddr:               httpAddr,
		JWTSecret:              jwtSecret,
		GeminiAPIKey:           geminiAPIKey,
		GroqAPIKey:             groqAPIKey,
		AdviceCachePath:        cachePath,
		FoodAPIURL:             os.Getenv("FOOD_API_URL"),
		FoodAPIKey:             os.Getenv("FOOD_API_KEY"),
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowedIDs,
	}, nil
}
