package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// AppConfig holds all application configuration loaded from environment variables.
// These are populated at startup by the LoadConfig function.
var (
	// WatchedAddresses is the list of portfolio addresses the tracker refreshes
	// on every cycle, comma-separated in PORTFOLIO_ADDRESSES.
	WatchedAddresses []string

	// RefreshInterval is how often the tracker re-evaluates watched portfolios.
	RefreshInterval time.Duration

	// FetchTimeout bounds a single subgraph request.
	FetchTimeout time.Duration
)

// LoadConfig loads configuration from environment variables and sets the global config vars.
func LoadConfig() error {
	log.Info().Msg("Loading application configuration from environment variables...")

	addresses, err := getEnv("PORTFOLIO_ADDRESSES")
	if err != nil {
		return err
	}
	WatchedAddresses = WatchedAddresses[:0]
	for _, addr := range strings.Split(addresses, ",") {
		addr = strings.ToLower(strings.TrimSpace(addr))
		if addr == "" {
			continue
		}
		if !IsValidAddress(addr) {
			return errors.New("PORTFOLIO_ADDRESSES contains an invalid address: " + addr)
		}
		WatchedAddresses = append(WatchedAddresses, addr)
	}
	if len(WatchedAddresses) == 0 {
		return errors.New("PORTFOLIO_ADDRESSES must contain at least one address")
	}

	refreshSeconds, err := getEnvAsInt("REFRESH_INTERVAL_SECONDS")
	if err != nil {
		return err
	}
	if refreshSeconds <= 0 {
		return errors.New("REFRESH_INTERVAL_SECONDS must be positive")
	}
	RefreshInterval = time.Duration(refreshSeconds) * time.Second

	fetchTimeoutSeconds, err := getEnvAsInt("FETCH_TIMEOUT_SECONDS")
	if err != nil {
		return err
	}
	if fetchTimeoutSeconds <= 0 {
		return errors.New("FETCH_TIMEOUT_SECONDS must be positive")
	}
	FetchTimeout = time.Duration(fetchTimeoutSeconds) * time.Second

	// Load endpoint configuration
	if err := loadEndpointConfig(); err != nil {
		return err
	}

	log.Debug().
		Int("watchedAddresses", len(WatchedAddresses)).
		Dur("refreshInterval", RefreshInterval).
		Dur("fetchTimeout", FetchTimeout).
		Msg("Configuration loaded successfully.")

	return nil
}

// IsValidAddress reports whether s looks like a lowercased Ethereum address.
func IsValidAddress(s string) bool {
	if len(s) != 42 || !strings.HasPrefix(s, "0x") {
		return false
	}
	for _, c := range s[2:] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// getEnv retrieves a string environment variable. Returns error if not set.
func getEnv(key string) (string, error) {
	if value, exists := os.LookupEnv(key); exists {
		return value, nil
	}
	return "", errors.New("environment variable " + key + " is required but not set")
}

// getEnvAsInt retrieves an environment variable as an int. Returns error if not set or invalid.
func getEnvAsInt(key string) (int, error) {
	valueStr, err := getEnv(key)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, errors.New("environment variable " + key + " must be a valid int, got: " + valueStr)
	}
	return value, nil
}
