package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	MongoURI       string
	RedisURI       string
	Port           string
	FrontendURL    string
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
	Environment    string   // ENV: production, development, etc.

	LLMAPIKey  string // Resolved via ResolveLLMKey: LLM_API_KEY, else LLM_API_KEY_FILE
	LLMBaseURL string // OpenAI-compatible endpoint base URL
	LLMModel   string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	// CORS: allow multiple origins so production and local frontends both work
	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	return &Config{
		MongoURI:       getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/platewise")),
		RedisURI:       getEnv("REDIS_URI", "redis://localhost:6379/0"),
		Environment:    env,
		Port:           getEnv("PORT", "8080"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins: allowedOrigins,
		LLMAPIKey:      resolveLLMKey(),
		LLMBaseURL:     getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMModel:       getEnv("LLM_MODEL", "gpt-4o-mini"),
	}
}

// resolveLLMKey resolves the text-generation API key with a single precedence
// order: the LLM_API_KEY environment variable wins; otherwise the key is read
// from the file named by LLM_API_KEY_FILE. An empty result means plan
// generation is unavailable and signup/signin still work.
func resolveLLMKey() string {
	if key := strings.TrimSpace(os.Getenv("LLM_API_KEY")); key != "" {
		return key
	}
	if path := strings.TrimSpace(os.Getenv("LLM_API_KEY_FILE")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(data))
	}
	return ""
}

// Validate reports configuration problems that should stop startup.
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.RedisURI == "" {
		return fmt.Errorf("REDIS_URI is required")
	}
	return nil
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
