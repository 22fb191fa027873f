// Package keystore provides KeyLoader adapters for the places a merchant
// keeps the bundle decryption key: a file on disk, a HashiCorp Vault KV
// secret, or AWS Secrets Manager.
package keystore

import (
	"encoding/hex"
	"strings"
)

// decodeKeyMaterial turns stored key material into raw key bytes. Keys are
// conventionally stored hex-encoded; anything that does not parse as hex is
// treated as raw bytes. A raw key that happens to be valid even-length hex
// (such as "aaaabbbbccccdddd") is indistinguishable from an encoded one and
// gets decoded to half its length — store such keys hex-encoded.
func decodeKeyMaterial(data []byte) []byte {
	trimmed := strings.TrimSpace(string(data))
	if raw, err := hex.DecodeString(trimmed); err == nil && len(raw) > 0 {
		return raw
	}
	return []byte(trimmed)
}
