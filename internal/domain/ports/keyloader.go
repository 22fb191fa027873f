package ports

import "context"

// KeyLoader is the port for retrieving the resource-bundle decryption key
// from a keystore. The container format (Java keystore, Vault KV path, AWS
// secret, plain file) is an implementation detail of the adapter; the
// library only needs the raw key bytes for a named key.
//
// Implementations must:
//   - return the key bytes exactly as stored (no re-encoding)
//   - fail with a KEY_NOT_FOUND coded error when the name has no entry
type KeyLoader interface {
	// LoadKey retrieves the raw bytes of the named secret key.
	LoadKey(ctx context.Context, name string) ([]byte, error)
}

// DefaultKeyName is the key alias the bank provisions the bundle key under.
const DefaultKeyName = "pgkey"
