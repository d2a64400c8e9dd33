package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

// SessionTTL is the canonical session lifetime, applied to both the stored
// expiry and the cookie max-age.
const SessionTTL = 2 * time.Hour

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	Env          string
	CORSOrigin   string

	// AI Text Service settings
	AIProvider    string
	AIServiceURL  string
	AITimeout     time.Duration
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
}

// ParseFlags validates flags and fills the config, falling back to
// environment variables for anything not given on the command line.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var aiTimeoutSec int

	fs := flag.NewFlagSet("skillcheck", flag.ContinueOnError)

	// Network config (can be CLI args or env). Each option has a long name
	// plus the short form bound to the same variable.
	fs.IntVar(&cfg.Port, "port", 0, "Server port")
	fs.IntVar(&cfg.Port, "p", 0, "Server port (shorthand)")
	fs.StringVar(&cfg.DatabaseURL, "database-url", "", "Database URL")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (shorthand)")
	fs.StringVar(&cfg.DatabaseType, "database-type", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (shorthand)")

	// AI Text Service config
	fs.StringVar(&cfg.AIProvider, "ai-provider", "", "AI provider (http, gemini, openai, mock)")
	fs.StringVar(&cfg.AIServiceURL, "ai-url", "", "AI text service URL (http provider)")
	fs.IntVar(&aiTimeoutSec, "ai-timeout", 0, "AI call timeout in seconds")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8080 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -database-url or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}

	cfg.Env = os.Getenv("ENV")
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	cfg.CORSOrigin = os.Getenv("CORS_ORIGIN")
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "http://localhost:5173"
	}

	if cfg.AIProvider == "" {
		cfg.AIProvider = os.Getenv("AI_PROVIDER")
		if cfg.AIProvider == "" {
			cfg.AIProvider = "http"
		}
	}

	if cfg.AIServiceURL == "" {
		cfg.AIServiceURL = os.Getenv("AI_SERVICE_URL")
	}
	if cfg.AIProvider == "http" && cfg.AIServiceURL == "" {
		return Config{}, errors.New("AI_SERVICE_URL required for the http AI provider")
	}

	if aiTimeoutSec == 0 {
		if s := os.Getenv("AI_TIMEOUT"); s != "" {
			sec, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid AI_TIMEOUT env variable")
			}
			aiTimeoutSec = sec
		} else {
			aiTimeoutSec = 30
		}
	}
	cfg.AITimeout = time.Duration(aiTimeoutSec) * time.Second

	// Provider credentials come from env only
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = os.Getenv("GEMINI_MODEL")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIModel = os.Getenv("OPENAI_MODEL")
	cfg.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")

	switch cfg.AIProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return Config{}, errors.New("GEMINI_API_KEY required for the gemini AI provider")
		}
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return Config{}, errors.New("OPENAI_API_KEY required for the openai AI provider")
		}
	case "http", "mock":
		// No credentials needed.
	default:
		return Config{}, errors.New("unknown AI provider: " + cfg.AIProvider)
	}

	return cfg, nil
}
