package qmc

import (
	"encoding/base64"
	"fmt"
	"math"

	"omnicrypt.dev/core/internal/cryptoutil"
)

var rawKeyPrefixV2 = []byte("QQMusic EncV2,Key:")

var deriveV2Key1 = []byte{
	0x33, 0x38, 0x36, 0x5A, 0x4A, 0x59, 0x21, 0x40, 0x23, 0x2A, 0x24, 0x25, 0x5E, 0x26, 0x29, 0x28,
}
var deriveV2Key2 = []byte{
	0x2A, 0x2A, 0x23, 0x21, 0x28, 0x23, 0x24, 0x25, 0x26, 0x5E, 0x61, 0x31, 0x63, 0x5A, 0x2C, 0x54,
}

// simpleMakeKey recreates QQ Music's trig-derived byte stream:
// key[i] = floor(|tan(salt + i*0.1)| * 100).
func simpleMakeKey(salt byte, length int) []byte {
	out := make([]byte, length)
	for i := 0; i < length; i++ {
		tmp := math.Tan(float64(salt) + float64(i)*0.1)
		out[i] = byte(math.Abs(tmp) * 100.0)
	}
	return out
}

func deriveKey(rawKey []byte) ([]byte, error) {
	rawKeyDec := make([]byte, base64.StdEncoding.DecodedLen(len(rawKey)))
	n, err := base64.StdEncoding.Decode(rawKeyDec, rawKey)
	if err != nil {
		return nil, fmt.Errorf("qmc: derive key: base64 decode failed: %w", err)
	}
	rawKeyDec = rawKeyDec[:n]

	outputKey := rawKeyDec
	if checkPrefix(rawKeyDec, rawKeyPrefixV2) {
		outputKey, err = deriveKeyV2(rawKeyDec[len(rawKeyPrefixV2):])
		if err != nil {
			return nil, err
		}
	}
	return deriveKeyV1(outputKey)
}

func deriveKeyV1(rawKeyDec []byte) ([]byte, error) {
	if len(rawKeyDec) < 16 {
		return nil, fmt.Errorf("qmc: derive key v1: raw key too short")
	}

	simpleKey := simpleMakeKey(106, 8)
	var teaKey [16]byte
	for i := 0; i < 8; i++ {
		teaKey[i<<1] = simpleKey[i]
		teaKey[(i<<1)+1] = rawKeyDec[i]
	}

	rest, err := cryptoutil.DecryptTencentTEA(rawKeyDec[8:], teaKey[:])
	if err != nil {
		return nil, fmt.Errorf("qmc: derive key v1: %w", err)
	}

	out := make([]byte, 0, 8+len(rest))
	out = append(out, rawKeyDec[:8]...)
	out = append(out, rest...)
	return out, nil
}

func deriveKeyV2(rawKeyDec []byte) ([]byte, error) {
	buf, err := cryptoutil.DecryptTencentTEA(rawKeyDec, deriveV2Key1)
	if err != nil {
		return nil, fmt.Errorf("qmc: derive key v2: %w", err)
	}
	buf, err = cryptoutil.DecryptTencentTEA(buf, deriveV2Key2)
	if err != nil {
		return nil, fmt.Errorf("qmc: derive key v2: %w", err)
	}

	out := make([]byte, base64.StdEncoding.DecodedLen(len(buf)))
	n, err := base64.StdEncoding.Decode(out, buf)
	if err != nil {
		return nil, fmt.Errorf("qmc: derive key v2: base64 decode failed: %w", err)
	}
	return out[:n], nil
}

func checkPrefix(input, prefix []byte) bool {
	if len(input) < len(prefix) {
		return false
	}
	for i := range prefix {
		if input[i] != prefix[i] {
			return false
		}
	}
	return true
}
