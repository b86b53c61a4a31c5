package kgm

import (
	"encoding/binary"
	"fmt"

	"omnicrypt.dev/core/algo/common"
)

var kgmMagic = [16]byte{
	0x7C, 0xD5, 0x32, 0xEB, 0x86, 0x02, 0x7F, 0x4B, 0xA8, 0xAF, 0xA6, 0x8E, 0x0F, 0xFF, 0x99, 0x14,
}
var vprMagic = [16]byte{
	0x05, 0x28, 0xBC, 0x96, 0xE9, 0xE4, 0x5A, 0x43, 0x91, 0xAA, 0xBD, 0xD0, 0x7A, 0xF5, 0x36, 0x31,
}

const headerLen = 0x3c

type header struct {
	magicHeader     [16]byte
	audioOffset     uint32
	cryptoVersion   uint32
	cryptoSlot      uint32
	cryptoTestData  [16]byte
	cryptoKey       [16]byte
}

func parseHeader(buf []byte) (header, error) {
	var h header
	if len(buf) < headerLen {
		return h, fmt.Errorf("kgm: %w: header too short", common.ErrInvalidMagicHeader)
	}
	copy(h.magicHeader[:], buf[0x00:0x10])
	if h.magicHeader != kgmMagic && h.magicHeader != vprMagic {
		return h, fmt.Errorf("kgm: %w", common.ErrInvalidMagicHeader)
	}
	h.audioOffset = binary.LittleEndian.Uint32(buf[0x10:0x14])
	h.cryptoVersion = binary.LittleEndian.Uint32(buf[0x14:0x18])
	h.cryptoSlot = binary.LittleEndian.Uint32(buf[0x18:0x1c])
	copy(h.cryptoTestData[:], buf[0x1c:0x2c])
	copy(h.cryptoKey[:], buf[0x2c:0x3c])
	return h, nil
}
