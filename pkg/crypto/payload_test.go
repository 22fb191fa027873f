package crypto_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsspay/ipay-go/internal/domain"
	"github.com/fsspay/ipay-go/pkg/crypto"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]+$`)

func TestEncryptPayload_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		plaintext string
	}{
		{
			name:      "AES-128 key",
			key:       "0123456789abcdef",
			plaintext: "action=1&id=T001&amt=10.500",
		},
		{
			name:      "AES-192 key",
			key:       "0123456789abcdef01234567",
			plaintext: "trackid=1693295000&udf1=order 42",
		},
		{
			name:      "AES-256 key",
			key:       "0123456789abcdef0123456789abcdef",
			plaintext: "responseURL=https://example.com/response",
		},
		{
			name:      "empty plaintext",
			key:       "0123456789abcdef",
			plaintext: "",
		},
		{
			name:      "plaintext exactly one block",
			key:       "0123456789abcdef",
			plaintext: "0123456789abcdef",
		},
		{
			name:      "non-ASCII plaintext",
			key:       "0123456789abcdef",
			plaintext: "udf1=عربي",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encrypted, err := crypto.EncryptPayload(tt.plaintext, tt.key)
			require.NoError(t, err)

			assert.Regexp(t, hexPattern, encrypted, "wire format should be lowercase hex")
			assert.Equal(t, 0, len(encrypted)%32, "ciphertext should be whole AES blocks")

			decrypted, err := crypto.DecryptPayload(encrypted, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, decrypted)
		})
	}
}

func TestEncryptPayload_Deterministic(t *testing.T) {
	// Key-as-IV has no randomness: the same input must always produce the
	// same wire payload, which is what the gateway's servers rely on.
	key := "0123456789abcdef"
	first, err := crypto.EncryptPayload("action=1&id=T001", key)
	require.NoError(t, err)

	second, err := crypto.EncryptPayload("action=1&id=T001", key)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEncryptPayload_InvalidKeySize(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "empty key", key: ""},
		{name: "too short", key: "short"},
		{name: "17 bytes", key: "0123456789abcdefX"},
		{name: "too long", key: strings.Repeat("k", 33)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := crypto.EncryptPayload("data", tt.key)
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, domain.ErrorCodeInvalidKeySize))
		})
	}
}

func TestDecryptPayload_InvalidInput(t *testing.T) {
	key := "0123456789abcdef"

	tests := []struct {
		name    string
		hexText string
		code    domain.ErrorCode
	}{
		{
			name:    "not hex",
			hexText: "zzzz",
			code:    domain.ErrorCodeDecryptionFailed,
		},
		{
			name:    "odd length hex",
			hexText: "abc",
			code:    domain.ErrorCodeDecryptionFailed,
		},
		{
			name:    "empty",
			hexText: "",
			code:    domain.ErrorCodeDecryptionFailed,
		},
		{
			name:    "not block aligned",
			hexText: "abcdef",
			code:    domain.ErrorCodeDecryptionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := crypto.DecryptPayload(tt.hexText, key)
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, tt.code), "got %v", err)
		})
	}
}

func TestDecryptPayload_TamperedCiphertext(t *testing.T) {
	key := "0123456789abcdef"

	// A 16-byte plaintext encrypts to two blocks: the data block and a full
	// padding block. Dropping the padding block leaves a ciphertext whose
	// decryption ends in 'f' (0x66), which can never be valid padding.
	encrypted, err := crypto.EncryptPayload("0123456789abcdef", key)
	require.NoError(t, err)
	require.Len(t, encrypted, 64)

	_, err = crypto.DecryptPayload(encrypted[:32], key)
	require.Error(t, err)
	assert.True(t, domain.IsCryptoError(err), "got %v", err)
}

func TestDecryptPayload_WrongKeySize(t *testing.T) {
	encrypted, err := crypto.EncryptPayload("data", "0123456789abcdef")
	require.NoError(t, err)

	_, err = crypto.DecryptPayload(encrypted, "bad")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrorCodeInvalidKeySize))
}
