// Package crypto implements the two symmetric transforms of the terminal
// integration kit: the AES payload cipher carried in the trandata parameter
// and the TripleDES cipher protecting the resource bundle.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"errors"

	"github.com/fsspay/ipay-go/internal/domain"
)

// EncryptPayload encrypts a handshake payload for the trandata parameter.
// The key is taken as UTF-8 bytes and must be a valid AES key size (16, 24
// or 32 bytes). The gateway reuses the key verbatim as the CBC
// initialization vector; that is a known-weak construction, but it is what
// the bank's servers implement, so it is preserved bit-for-bit for wire
// compatibility. The ciphertext is returned lowercase hex-encoded.
func EncryptPayload(plaintext, key string) (string, error) {
	block, err := newAESCipher(key)
	if err != nil {
		return "", err
	}
	keyBytes := []byte(key)

	padded := padPKCS7([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	mode := cipher.NewCBCEncrypter(block, keyBytes[:aes.BlockSize])
	mode.CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(ciphertext), nil
}

// DecryptPayload is the inverse of EncryptPayload: hex-decode, AES-CBC
// decrypt with the key-as-IV, strip padding, return the plaintext as text.
// Padding validation failure signals a tampered or wrong-key payload.
func DecryptPayload(hexText, key string) (string, error) {
	block, err := newAESCipher(key)
	if err != nil {
		return "", err
	}
	keyBytes := []byte(key)

	raw, err := hex.DecodeString(hexText)
	if err != nil {
		return "", domain.WrapError(domain.ErrorCodeDecryptionFailed, "payload is not valid hex", err)
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", domain.NewDomainError(domain.ErrorCodeDecryptionFailed, "payload length is not a multiple of the AES block size").
			WithDetail("length", len(raw))
	}

	plaintext := make([]byte, len(raw))
	mode := cipher.NewCBCDecrypter(block, keyBytes[:aes.BlockSize])
	mode.CryptBlocks(plaintext, raw)

	unpadded, err := unpadPKCS7(plaintext, aes.BlockSize)
	if err != nil {
		return "", domain.WrapError(domain.ErrorCodeDecryptionFailed, "payload padding validation failed", err)
	}
	return string(unpadded), nil
}

func newAESCipher(key string) (cipher.Block, error) {
	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		var sizeErr aes.KeySizeError
		if errors.As(err, &sizeErr) {
			return nil, domain.WrapError(domain.ErrorCodeInvalidKeySize, "AES key must be 16, 24 or 32 bytes", err).
				WithDetail("key_length", len(key))
		}
		return nil, err
	}
	return block, nil
}
