package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the CLI configuration, loaded from the environment.
type Config struct {
	Keystore KeystoreConfig
	Gateway  GatewayConfig
	Logger   LoggerConfig
}

// KeystoreConfig selects and configures the key loader backend.
type KeystoreConfig struct {
	// Backend: "file", "vault" or "aws"
	Backend string

	// KeyName is the keystore alias of the bundle key
	KeyName string

	// File backend: directory the key files live in
	Path string

	// Vault backend
	VaultAddress   string
	VaultToken     string
	VaultMount     string
	VaultKVVersion string
	VaultPrefix    string

	// AWS backend
	AWSRegion  string
	AWSProfile string
	AWSPrefix  string
}

// GatewayConfig holds the per-transaction inputs.
type GatewayConfig struct {
	BundlePath  string // encrypted resource bundle (resource.cgn)
	Alias       string // terminal alias inside the bundle
	Amount      string // decimal amount to charge
	Language    string // "en" or "ar"
	Currency    string // ISO 4217 alphabetic code
	TrackingID  string // optional; defaults to a timestamp
	ResponseURL string
	ErrorURL    string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Keystore: KeystoreConfig{
			Backend:        getEnv("IPAY_KEYSTORE_BACKEND", "file"),
			KeyName:        getEnv("IPAY_KEY_NAME", "pgkey"),
			Path:           getEnv("IPAY_KEYSTORE_PATH", "."),
			VaultAddress:   getEnv("VAULT_ADDR", ""),
			VaultToken:     getEnv("VAULT_TOKEN", ""),
			VaultMount:     getEnv("VAULT_MOUNT", "secret"),
			VaultKVVersion: getEnv("VAULT_KV_VERSION", "v2"),
			VaultPrefix:    getEnv("VAULT_KEY_PREFIX", "ipay/terminals"),
			AWSRegion:      getEnv("AWS_REGION", ""),
			AWSProfile:     getEnv("AWS_PROFILE", ""),
			AWSPrefix:      getEnv("AWS_SECRET_PREFIX", "ipay/terminals/"),
		},
		Gateway: GatewayConfig{
			BundlePath:  getEnv("IPAY_BUNDLE_PATH", "resource.cgn"),
			Alias:       getEnv("IPAY_ALIAS", ""),
			Amount:      getEnv("IPAY_AMOUNT", ""),
			Language:    getEnv("IPAY_LANGUAGE", "en"),
			Currency:    getEnv("IPAY_CURRENCY", "KWD"),
			TrackingID:  getEnv("IPAY_TRACKING_ID", ""),
			ResponseURL: getEnv("IPAY_RESPONSE_URL", ""),
			ErrorURL:    getEnv("IPAY_ERROR_URL", ""),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	if cfg.Gateway.Alias == "" {
		return nil, fmt.Errorf("IPAY_ALIAS is required")
	}
	switch cfg.Keystore.Backend {
	case "file", "vault", "aws":
	default:
		return nil, fmt.Errorf("IPAY_KEYSTORE_BACKEND must be file, vault or aws, got %q", cfg.Keystore.Backend)
	}
	if cfg.Keystore.Backend == "vault" && cfg.Keystore.VaultAddress == "" {
		return nil, fmt.Errorf("VAULT_ADDR is required for the vault backend")
	}
	if cfg.Keystore.Backend == "aws" && cfg.Keystore.AWSRegion == "" {
		return nil, fmt.Errorf("AWS_REGION is required for the aws backend")
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
