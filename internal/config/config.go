package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains runtime settings for the MCP server
type Config struct {
	LogLevel string
	Host     string // default 0.0.0.0
	Port     string // default PORT env or 8080
	API      struct {
		BaseURL string
		Timeout time.Duration
	}
	Session struct {
		File     string // JSON file holding the recruiter session
		RedisURL string // wins over File when both are set
	}
	Neo4j struct {
		URI      string
		Username string
		Password string
		Database string
	} // optional job snapshot cache
	SheetsCredentialsPath string
	FinalDecisions        bool
}

// Neo4jEnabled reports whether the snapshot cache is configured
func (c Config) Neo4jEnabled() bool {
	return c.Neo4j.URI != ""
}

// Load populates config from environment variables. A .env file in the
// working directory is read first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		LogLevel: "info",
		Host:     "0.0.0.0",
		Port:     "8080",
	}
	cfg.API.Timeout = 10 * time.Second

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("MCP_HOST"); v != "" {
		cfg.Host = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	var missingVars []string

	cfg.API.BaseURL = strings.TrimSpace(os.Getenv("API_BASE_URL"))
	if cfg.API.BaseURL == "" {
		missingVars = append(missingVars, "API_BASE_URL")
	}

	if v := os.Getenv("API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid API_TIMEOUT %q: expected a positive duration such as 10s", v)
		}
		cfg.API.Timeout = d
	}

	cfg.Session.File = os.Getenv("SESSION_FILE")
	cfg.Session.RedisURL = os.Getenv("REDIS_URL")

	cfg.Neo4j.URI = os.Getenv("NEO4J_URI")
	cfg.Neo4j.Username = os.Getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")
	cfg.Neo4j.Database = os.Getenv("NEO4J_DATABASE")

	// Neo4j is optional but partial settings are a mistake
	if cfg.Neo4j.URI != "" || cfg.Neo4j.Username != "" || cfg.Neo4j.Password != "" {
		if cfg.Neo4j.URI == "" {
			missingVars = append(missingVars, "NEO4J_URI")
		}
		if cfg.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if cfg.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
	}

	cfg.SheetsCredentialsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")

	if v := os.Getenv("RECRUITER_FINAL_DECISIONS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid RECRUITER_FINAL_DECISIONS %q: %w", v, err)
		}
		cfg.FinalDecisions = b
	}

	if len(missingVars) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	return cfg, nil
}
