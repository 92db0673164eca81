package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// ServiceKeyEnvVar names the environment variable that can point at the
// service key file directly.
const ServiceKeyEnvVar = "GENAIHUB_SERVICE_KEY"

const serviceKeyFilename = "service_key.json"

// ServiceKeyCandidates returns the paths searched for a service key file,
// in order of precedence.
func ServiceKeyCandidates() []string {
	var candidates []string

	if p := os.Getenv(ServiceKeyEnvVar); p != "" {
		candidates = append(candidates, p)
	}

	// Working directory, then the XDG config dir
	candidates = append(candidates, serviceKeyFilename)
	candidates = append(candidates, filepath.Join(xdg.ConfigHome, "genaihub", serviceKeyFilename))

	return candidates
}

// FindServiceKey locates the service key file, returning the first candidate
// that exists on disk.
func FindServiceKey() (string, error) {
	candidates := ServiceKeyCandidates()
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no service key found (searched %v)", candidates)
}

// GetDefaultStatePath returns the directory for runtime state such as the
// invocation history database, following the XDG base directory spec.
func GetDefaultStatePath() string {
	return filepath.Join(xdg.StateHome, "genaihub")
}

// GetDefaultHistoryPath returns the default path of the invocation history
// database.
func GetDefaultHistoryPath() string {
	return filepath.Join(GetDefaultStatePath(), "history.db")
}
