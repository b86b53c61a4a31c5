package cryptoutil

import (
	"crypto/cipher"
	"errors"
	"fmt"

	"golang.org/x/crypto/tea"
)

// NewTEACipher builds a Tencent-TEA block cipher with the given round
// count (must be even); QMC's key-derivation pipeline uses 32 rounds
// rather than the library's 64-round default.
func NewTEACipher(key []byte, rounds int) (cipher.Block, error) {
	blk, err := tea.NewCipherWithRounds(key, rounds)
	if err != nil {
		return nil, fmt.Errorf("tea: %w", err)
	}
	return blk, nil
}

func decryptTEABlock(blk cipher.Block, src []byte) [8]byte {
	var dst [8]byte
	blk.Decrypt(dst[:], src)
	return dst
}

// DecryptTencentTEA implements Tencent's TEA-CBC-with-salt framing used by
// QMC key derivation: decrypt the first block to recover a pad length,
// XOR-chain subsequent ciphertext blocks against the running plaintext
// buffer, and verify the trailing zero-check bytes against the previous
// ciphertext block. inbuf must be at least 16 bytes and a multiple of 8.
func DecryptTencentTEA(inbuf []byte, key []byte) ([]byte, error) {
	const saltLen = 2
	const zeroLen = 7

	if len(inbuf)%8 != 0 {
		return nil, errors.New("tencent-tea: input size not a multiple of the block size")
	}
	if len(inbuf) < 16 {
		return nil, errors.New("tencent-tea: input size too small")
	}

	blk, err := NewTEACipher(key, 32)
	if err != nil {
		return nil, err
	}

	dest := decryptTEABlock(blk, inbuf[0:8])
	padLen := int(dest[0] & 0x7)
	outLen := len(inbuf) - 1 - padLen - saltLen - zeroLen
	if outLen < 0 {
		return nil, errors.New("tencent-tea: invalid pad length")
	}
	out := make([]byte, outLen)

	var ivPrev [8]byte
	var ivCur [8]byte
	copy(ivCur[:], inbuf[0:8])

	inPos := 8
	destIdx := 1 + padLen

	cryptBlock := func() {
		ivPrev = ivCur
		copy(ivCur[:], inbuf[inPos:inPos+8])
		var xored [8]byte
		for i := 0; i < 8; i++ {
			xored[i] = dest[i] ^ inbuf[inPos+i]
		}
		dest = decryptTEABlock(blk, xored[:])
		inPos += 8
		destIdx = 0
	}

	for i := 1; i <= saltLen; {
		if destIdx < 8 {
			destIdx++
			i++
		} else {
			cryptBlock()
		}
	}

	for outPos := 0; outPos < outLen; {
		if destIdx < 8 {
			out[outPos] = dest[destIdx] ^ ivPrev[destIdx]
			destIdx++
			outPos++
		} else {
			cryptBlock()
		}
	}

	for i := 1; i <= zeroLen; i++ {
		if dest[i] != ivPrev[i] {
			return nil, errors.New("tencent-tea: zero check failed")
		}
	}
	return out, nil
}
