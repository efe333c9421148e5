package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ClientConfig configures the command-line client of the API.
type ClientConfig struct {
	APIURL   string
	Timeout  time.Duration
	DraftDir string
}

var (
	clientConfig *ClientConfig
	clientOnce   sync.Once
)

func LoadClientConfig() *ClientConfig {
	clientOnce.Do(func() {
		clientConfig = &ClientConfig{
			APIURL:   getEnvString("API_URL", "http://localhost:5000"),
			Timeout:  getEnvDuration("API_TIMEOUT", 10*time.Second),
			DraftDir: getEnvString("DRAFT_DIR", defaultDraftDir()),
		}
	})
	return clientConfig
}

func defaultDraftDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".jobboard"
	}
	return filepath.Join(dir, "jobboard")
}
