package crypto

import (
	"crypto/cipher"
	"crypto/des"

	"github.com/fsspay/ipay-go/internal/domain"
)

// The resource bundle is protected with TripleDES in ECB mode with PKCS#5
// padding, applied twice: once over the whole bundle file and once over the
// per-terminal entry inside the decrypted archive.

// DecryptBundle decrypts a resource-bundle blob with the keystore key and
// returns the padding-stripped plaintext. Keys of 16 bytes are extended to
// the two-key 3DES form (K1 K2 K1); 24-byte keys are used as-is.
func DecryptBundle(key, ciphertext []byte) ([]byte, error) {
	block, err := newTripleDESCipher(key)
	if err != nil {
		return nil, err
	}
	bs := block.BlockSize()
	if len(ciphertext) == 0 || len(ciphertext)%bs != 0 {
		return nil, domain.NewDomainError(domain.ErrorCodeDecryptionFailed, "bundle length is not a multiple of the DES block size").
			WithDetail("length", len(ciphertext))
	}

	plaintext := make([]byte, len(ciphertext))
	for i := 0; i < len(ciphertext); i += bs {
		block.Decrypt(plaintext[i:i+bs], ciphertext[i:i+bs])
	}

	unpadded, err := unpadPKCS7(plaintext, bs)
	if err != nil {
		return nil, domain.WrapError(domain.ErrorCodeDecryptionFailed, "bundle padding validation failed; wrong key or corrupted file", err)
	}
	return unpadded, nil
}

// EncryptBundle is the inverse transform. The production bundles are
// encrypted by the bank; this direction exists for building test bundles.
func EncryptBundle(key, plaintext []byte) ([]byte, error) {
	block, err := newTripleDESCipher(key)
	if err != nil {
		return nil, err
	}
	bs := block.BlockSize()

	padded := padPKCS7(plaintext, bs)
	ciphertext := make([]byte, len(padded))
	for i := 0; i < len(padded); i += bs {
		block.Encrypt(ciphertext[i:i+bs], padded[i:i+bs])
	}
	return ciphertext, nil
}

func newTripleDESCipher(key []byte) (cipher.Block, error) {
	switch len(key) {
	case 16:
		// two-key variant: K1 K2 K1
		key = append(append([]byte{}, key...), key[:8]...)
	case 24:
	default:
		return nil, domain.NewDomainError(domain.ErrorCodeInvalidKeySize, "TripleDES key must be 16 or 24 bytes").
			WithDetail("key_length", len(key))
	}
	block, err := des.NewTripleDESCipher(key)
	if err != nil {
		return nil, domain.WrapError(domain.ErrorCodeInvalidKeySize, "building TripleDES cipher", err)
	}
	return block, nil
}
