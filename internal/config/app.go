package config

import (
	"log"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
)

// DefaultAllowedOrigins are always accepted by the CORS policy: the local
// development frontend and the deployed one.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"https://assignment-job-manag-a41e5.vercel.app",
}

type AppConfig struct {
	Name            string
	Env             string
	Port            string
	FrontendURL     string
	AllowedOrigins  []string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		frontendURL := os.Getenv("FRONTEND_URL")
		appConfig = &AppConfig{
			Name:            getEnvString("APP_NAME", "job-portal"),
			Env:             env,
			Port:            getEnvString("PORT", "5000"),
			FrontendURL:     frontendURL,
			AllowedOrigins:  AllowedOrigins(getEnvList("CORS_ALLOWED_ORIGINS"), frontendURL),
			RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 50),
			RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// ListenAddr binds every interface on the configured port.
func (c *AppConfig) ListenAddr() string {
	return "0.0.0.0:" + strings.TrimPrefix(c.Port, ":")
}

// AllowedOrigins merges the fixed allow-list with configured origins.
// Trailing slashes are dropped and duplicates removed; empty entries are
// skipped, and malformed ones are logged and skipped.
func AllowedOrigins(extra []string, frontendURL string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(origin string) {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "" || seen[origin] {
			return
		}
		if !validOrigin(origin) {
			log.Printf("Warning: ignoring invalid CORS origin %q", origin)
			return
		}
		seen[origin] = true
		out = append(out, origin)
	}
	for _, o := range DefaultAllowedOrigins {
		add(o)
	}
	for _, o := range extra {
		add(o)
	}
	add(frontendURL)
	return out
}

// validOrigin accepts scheme://host[:port] with an http or https scheme.
func validOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != "" && u.Hostname() != "" && u.User == nil &&
		u.Path == "" && u.RawQuery == "" && u.Fragment == "" && !u.ForceQuery
}
