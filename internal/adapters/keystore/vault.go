package keystore

import (
	"context"
	"fmt"

	vault "github.com/hashicorp/vault/api"
	"go.uber.org/zap"

	"github.com/fsspay/ipay-go/internal/domain"
	"github.com/fsspay/ipay-go/internal/domain/ports"
)

// VaultConfig contains configuration for the HashiCorp Vault key loader.
type VaultConfig struct {
	// Vault server address (e.g. "https://vault.example.com:8200")
	Address string

	// Authentication method: "token" or "approle"
	AuthMethod string

	// Token for token authentication
	Token string

	// AppRole credentials (if using AppRole auth)
	RoleID   string
	SecretID string

	// Vault namespace (Vault Enterprise)
	Namespace string

	// KV secrets engine mount path (default: "secret")
	MountPath string

	// KV version: "v1" or "v2" (default: "v2")
	KVVersion string

	// Path prefix the terminal keys live under, e.g. "ipay/terminals"
	PathPrefix string

	// TLS configuration
	TLSSkipVerify bool
}

// DefaultVaultConfig returns default configuration for the Vault key loader.
func DefaultVaultConfig(address string) *VaultConfig {
	return &VaultConfig{
		Address:    address,
		AuthMethod: "token",
		MountPath:  "secret",
		KVVersion:  "v2",
	}
}

// vaultKeyLoader implements the KeyLoader port for HashiCorp Vault. It is
// read-only: the library never writes or rotates keys.
type vaultKeyLoader struct {
	client *vault.Client
	config *VaultConfig
	logger *zap.Logger
}

// NewVaultKeyLoader creates a Vault-backed key loader.
func NewVaultKeyLoader(ctx context.Context, cfg *VaultConfig, logger *zap.Logger) (ports.KeyLoader, error) {
	vaultConfig := vault.DefaultConfig()
	vaultConfig.Address = cfg.Address

	if cfg.TLSSkipVerify {
		tlsConfig := &vault.TLSConfig{
			Insecure: true,
		}
		if err := vaultConfig.ConfigureTLS(tlsConfig); err != nil {
			return nil, fmt.Errorf("failed to configure TLS: %w", err)
		}
	}

	client, err := vault.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}

	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}

	if err := authenticate(client, cfg); err != nil {
		return nil, fmt.Errorf("failed to authenticate with Vault: %w", err)
	}

	logger.Info("Vault key loader initialized",
		zap.String("address", cfg.Address),
		zap.String("auth_method", cfg.AuthMethod),
		zap.String("mount_path", cfg.MountPath),
		zap.String("kv_version", cfg.KVVersion),
	)

	return &vaultKeyLoader{
		client: client,
		config: cfg,
		logger: logger,
	}, nil
}

func authenticate(client *vault.Client, cfg *VaultConfig) error {
	switch cfg.AuthMethod {
	case "token":
		if cfg.Token == "" {
			return fmt.Errorf("token is required for token auth")
		}
		client.SetToken(cfg.Token)
		return nil

	case "approle":
		if cfg.RoleID == "" || cfg.SecretID == "" {
			return fmt.Errorf("role_id and secret_id are required for AppRole auth")
		}
		data := map[string]interface{}{
			"role_id":   cfg.RoleID,
			"secret_id": cfg.SecretID,
		}
		resp, err := client.Logical().Write("auth/approle/login", data)
		if err != nil {
			return fmt.Errorf("AppRole login failed: %w", err)
		}
		if resp.Auth == nil {
			return fmt.Errorf("AppRole login returned no auth info")
		}
		client.SetToken(resp.Auth.ClientToken)
		return nil

	default:
		return fmt.Errorf("unsupported auth method: %s", cfg.AuthMethod)
	}
}

// LoadKey reads the named key from the KV secrets engine. The key material
// is expected under the "value" field, hex-encoded or raw.
func (l *vaultKeyLoader) LoadKey(ctx context.Context, name string) ([]byte, error) {
	secretPath := name
	if l.config.PathPrefix != "" {
		secretPath = l.config.PathPrefix + "/" + name
	}

	var fullPath string
	if l.config.KVVersion == "v2" {
		fullPath = fmt.Sprintf("%s/data/%s", l.config.MountPath, secretPath)
	} else {
		fullPath = fmt.Sprintf("%s/%s", l.config.MountPath, secretPath)
	}

	l.logger.Debug("reading key from Vault", zap.String("path", secretPath))

	secret, err := l.client.Logical().ReadWithContext(ctx, fullPath)
	if err != nil {
		return nil, domain.WrapError(domain.ErrorCodeResourceRead, "reading key from Vault", err)
	}
	if secret == nil {
		return nil, domain.NewDomainError(domain.ErrorCodeKeyNotFound,
			fmt.Sprintf("key %q not found in Vault", name))
	}

	secretData := secret.Data
	if l.config.KVVersion == "v2" {
		data, ok := secret.Data["data"].(map[string]interface{})
		if !ok {
			return nil, domain.NewDomainError(domain.ErrorCodeKeyNotFound, "unexpected secret format from Vault")
		}
		secretData = data
	}

	value, ok := secretData["value"].(string)
	if !ok || value == "" {
		return nil, domain.NewDomainError(domain.ErrorCodeKeyNotFound,
			fmt.Sprintf("key %q has no value field in Vault", name))
	}

	return decodeKeyMaterial([]byte(value)), nil
}
