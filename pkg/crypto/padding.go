package crypto

import (
	"bytes"
	"fmt"
)

// padPKCS7 appends PKCS#7 padding. padLen is always in 1..blockSize, so
// aligned input gains a full padding block and the length stays recoverable.
func padPKCS7(b []byte, blockSize int) []byte {
	padLen := blockSize - (len(b) % blockSize)
	return append(b, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

// unpadPKCS7 validates and strips PKCS#7 padding. A validation failure
// signals a wrong key or a tampered ciphertext.
func unpadPKCS7(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, fmt.Errorf("plaintext length %d is not a multiple of the block size", len(b))
	}
	padLen := int(b[len(b)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, fmt.Errorf("invalid padding length %d", padLen)
	}
	for _, p := range b[len(b)-padLen:] {
		if int(p) != padLen {
			return nil, fmt.Errorf("inconsistent padding bytes")
		}
	}
	return b[:len(b)-padLen], nil
}
