package roster

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the Canvas connection settings.
type Config struct {
	// BaseURL is the Canvas instance root, e.g. https://school.instructure.com.
	BaseURL string
	// Token is the API access token sent as a bearer credential.
	Token     string
	TimeoutMs int // per request
	PerPage   int
}

// DefaultConfig returns a Config with no instance configured.
func DefaultConfig() Config {
	return Config{
		TimeoutMs: 15000,
		PerPage:   100,
	}
}

// LoadConfig reads Canvas configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("GRADECELL_CANVAS_URL"); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("GRADECELL_CANVAS_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("GRADECELL_CANVAS_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("GRADECELL_CANVAS_PER_PAGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PerPage = n
		}
	}

	return cfg
}

// Configured reports whether both the instance URL and the token are set.
func (c Config) Configured() bool {
	return c.BaseURL != "" && c.Token != ""
}
