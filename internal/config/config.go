package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

const (
	AuthModeJWT   = "jwt"
	AuthModeSlack = "slack"
)

// Slack holds the workspace app credentials. TeamID pins the workspace whose
// members are accepted as players.
type Slack struct {
	ClientID     string
	ClientSecret string
	TeamID       string
	APIURL       string
}

type Config struct {
	DBPath     string
	ServerPort string
	LogLevel   string
	AuthMode   string
	JWTSecret  string
	Slack      Slack
}

func Load() (*Config, error) {
	// a missing .env is fine, the environment may carry everything
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:     getEnv("DB_PATH", "beam.db"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		AuthMode:   getEnv("AUTH_MODE", AuthModeJWT),
		JWTSecret:  getEnv("JWT_SECRET", ""),
		Slack: Slack{
			ClientID:     getEnv("SLACK_CLIENT_ID", ""),
			ClientSecret: getEnv("SLACK_CLIENT_SECRET", ""),
			TeamID:       getEnv("SLACK_TEAM_ID", ""),
			APIURL:       getEnv("SLACK_API_URL", "https://slack.com/api"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AuthMode {
	case AuthModeJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=%s", AuthModeJWT)
		}
	case AuthModeSlack:
		if c.Slack.TeamID == "" {
			return fmt.Errorf("SLACK_TEAM_ID is required when AUTH_MODE=%s", AuthModeSlack)
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
