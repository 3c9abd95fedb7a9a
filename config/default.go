package config

import (
	"os"
	"path/filepath"
	"time"
)

// DefaultAPIVersion is used when neither the config nor the org's stored
// session names one.
const DefaultAPIVersion = "59.0"

func New() *Config {
	return &Config{
		Compare: Compare{
			APIVersion:      DefaultAPIVersion,
			AuthFile:        defaultAuthFile(),
			PollInterval:    3 * time.Second,
			RetrieveTimeout: 120 * time.Second,
		},
	}
}

func defaultAuthFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".orgdiff", "orgs.yaml")
	}
	return filepath.Join(home, ".orgdiff", "orgs.yaml")
}
