package kgm

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"testing"

	"omnicrypt.dev/core/algo/common"
)

// invertNibbleXor undoes cryptoV3.Decrypt's `b ^= b << 4` step bit by bit:
// for bit i<4 the shifted-in bit is always 0 so x_i = y_i; for i>=4,
// y_i = x_i ^ x_(i-4), solved incrementally from the low nibble up.
func invertNibbleXor(y byte) byte {
	var x byte
	for i := uint(0); i < 8; i++ {
		bit := (y >> i) & 1
		if i >= 4 {
			bit ^= (x >> (i - 4)) & 1
		}
		x |= bit << i
	}
	return x
}

// encryptV3 is cryptoV3.Decrypt's inverse, built by reversing each XOR step
// in order, used to construct a ciphertext fixture for a chosen plaintext
// (no captured .kgm sample was available to test against directly).
func encryptV3(c *cryptoV3, plain []byte) []byte {
	out := append([]byte(nil), plain...)
	for i := range out {
		out[i] ^= xorCollapseU32(uint32(i))
		out[i] ^= c.slotBox[i%16]
		out[i] = invertNibbleXor(out[i])
		out[i] ^= c.fileBox[i%len(c.fileBox)]
	}
	return out
}

func buildHeader(cryptoVersion, cryptoSlot uint32, cryptoKey [16]byte, audioOffset uint32) []byte {
	buf := make([]byte, headerLen)
	copy(buf[0x00:0x10], kgmMagic[:])
	binary.LittleEndian.PutUint32(buf[0x10:0x14], audioOffset)
	binary.LittleEndian.PutUint32(buf[0x14:0x18], cryptoVersion)
	binary.LittleEndian.PutUint32(buf[0x18:0x1c], cryptoSlot)
	copy(buf[0x2c:0x3c], cryptoKey[:])
	return buf
}

func TestDecoderValidateAndDecodeV3(t *testing.T) {
	var cryptoKey [16]byte
	copy(cryptoKey[:], []byte("0123456789abcdef"))

	header := buildHeader(3, 1, cryptoKey, headerLen)
	h, err := parseHeader(header)
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	cipher, err := newCryptoV3(&h)
	if err != nil {
		t.Fatalf("newCryptoV3: %v", err)
	}

	plain := []byte("this is thirty-two bytes long!!!")
	cipherText := encryptV3(cipher, plain)

	buf := append(append([]byte{}, header...), cipherText...)
	d := &Decoder{cursor: common.NewCursor(buf)}

	if err := d.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	got, err := d.DecodeBytes()
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if !bytes.Equal(got, plain) {
		t.Errorf("decoded = %q, want %q", got, plain)
	}
}

func TestDecoderValidateRejectsUnsupportedVersion(t *testing.T) {
	var cryptoKey [16]byte
	header := buildHeader(5, 1, cryptoKey, headerLen)
	d := &Decoder{cursor: common.NewCursor(header)}
	if err := d.Validate(); err == nil {
		t.Error("expected an error for an unsupported crypto version")
	}
}

func TestKugoMD5TailSwap(t *testing.T) {
	digest := md5.Sum([]byte("slotkey"))
	got := kugoMD5([]byte("slotkey"))
	for i := 0; i < 16; i += 2 {
		if got[i] != digest[14-i] || got[i+1] != digest[15-i] {
			t.Fatalf("kugoMD5 swap mismatch at i=%d", i)
		}
	}
}
