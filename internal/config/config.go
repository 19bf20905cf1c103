package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// LLM provider selection: "openai" (default) or "gemini"
	Provider string

	// OpenAI
	OpenAIAPIKey string
	OpenAIModel  string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// RAG index
	DataPath       string
	IndexPath      string
	CollectionName string
	RetrieveN      int
	ContextK       int

	// Completion settings
	Temperature float64
	MaxTokens   int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:           getEnvOrDefault("PORT", "8000"),
		Env:            getEnvOrDefault("ENV", "development"),
		Provider:       getEnvOrDefault("LLM_PROVIDER", "openai"),
		OpenAIModel:    getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiModel:    getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		DataPath:       getEnvOrDefault("DATA_PATH", "./data"),
		IndexPath:      getEnvOrDefault("INDEX_PATH", "./chroma_db"),
		CollectionName: getEnvOrDefault("COLLECTION_NAME", "books"),
		RetrieveN:      getEnvAsIntOrDefault("RAG_TOP_N", 3),
		ContextK:       getEnvAsIntOrDefault("RAG_TOP_K", 3),
		Temperature:    getEnvAsFloatOrDefault("LLM_TEMPERATURE", 0.2),
		MaxTokens:      getEnvAsIntOrDefault("LLM_MAX_TOKENS", 500),
		FrontendURL:    getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	// The embedding function always needs OpenAI; the chat provider may not.
	cfg.OpenAIAPIKey = mustGetEnv("OPENAI_API_KEY")
	if cfg.Provider == "gemini" {
		cfg.GeminiAPIKey = mustGetEnv("GEMINI_API_KEY")
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}
