package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	CreatorID string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("RLMATCHUP_SERVER", "http://localhost:3000"),
		CreatorID: os.Getenv("RLMATCHUP_CREATOR_ID"),
		Output:    "text",
		Verbose:   false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
