// Package cryptoutil holds the crypto primitives shared across format
// packages: AES-128-ECB (no third-party ECB-mode package exists in the
// ecosystem the rest of this module draws from, so this is plain
// crypto/aes block-by-block), PKCS#7 unpadding, and Tencent-TEA.
package cryptoutil

import (
	"crypto/aes"
	"fmt"
)

// DecryptAES128ECB decrypts data (whose length must be a multiple of the
// AES block size) under key with no padding removal of its own; callers
// strip PKCS#7 separately via PKCS7Unpad.
func DecryptAES128ECB(data, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes128ecb: %w", err)
	}
	blockSize := block.BlockSize()
	if len(data)%blockSize != 0 {
		return nil, fmt.Errorf("aes128ecb: input length %d not a multiple of block size %d", len(data), blockSize)
	}
	out := make([]byte, len(data))
	for offset := 0; offset < len(data); offset += blockSize {
		block.Decrypt(out[offset:offset+blockSize], data[offset:offset+blockSize])
	}
	return out, nil
}

// PKCS7Unpad reads the last byte as the pad length and truncates it off.
func PKCS7Unpad(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	padLen := int(data[len(data)-1])
	if padLen > len(data) {
		return data
	}
	return data[:len(data)-padLen]
}
