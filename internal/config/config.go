package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	ModeStructured = "structured"
	ModeText       = "text"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	// Server
	Port         string
	Env          string
	MaxBodyBytes int64

	// Chat
	ChatMode        string
	Provider        string
	ProviderTimeout time.Duration

	// OpenAI
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// Gemini AI
	GeminiAPIKey string
	GeminiModel  string
}

// MissingError reports a required setting that is absent from the
// environment.
type MissingError struct {
	Key string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s is not set on the server", e.Key)
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:            getEnvOrDefault("PORT", "8000"),
		Env:             getEnvOrDefault("ENV", "development"),
		MaxBodyBytes:    int64(getEnvAsIntOrDefault("MAX_BODY_BYTES", 1<<20)),
		ChatMode:        getEnvOrDefault("CHAT_MODE", ModeStructured),
		Provider:        getEnvOrDefault("MODEL_PROVIDER", ProviderOpenAI),
		ProviderTimeout: getEnvAsDurationOrDefault("PROVIDER_TIMEOUT_SECONDS", 60*time.Second),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
	}

	return cfg
}

// CredentialEnv is the environment variable holding the selected
// provider's key.
func (c *Config) CredentialEnv() string {
	if c.Provider == ProviderGemini {
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}

// Credential returns the selected provider's key, or a *MissingError.
func (c *Config) Credential() (string, error) {
	key := c.OpenAIAPIKey
	if c.Provider == ProviderGemini {
		key = c.GeminiAPIKey
	}
	if key == "" {
		return "", &MissingError{Key: c.CredentialEnv()}
	}
	return key, nil
}

// Validate rejects unknown modes and providers. A missing credential is
// not fatal here; callers check Credential so the server can still answer
// health checks.
func (c *Config) Validate() error {
	switch c.ChatMode {
	case ModeStructured, ModeText:
	default:
		return fmt.Errorf("CHAT_MODE must be %q or %q, got %q", ModeStructured, ModeText, c.ChatMode)
	}

	switch c.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("MODEL_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, c.Provider)
	}

	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT_SECONDS must be positive")
	}
	return nil
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

// getEnvAsDurationOrDefault reads a whole number of seconds.
func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	n := getEnvAsIntOrDefault(key, -1)
	if n < 0 {
		return defaultVal
	}
	return time.Duration(n) * time.Second
}
