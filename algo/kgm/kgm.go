// Package kgm implements Kugou's ".kgm"/".kgma"/".vpr" container: a
// fixed 0x3c-byte header carrying a crypto version, key slot, and
// per-file key, followed by an XOR-and-nibble-shift enciphered payload.
package kgm

import (
	"fmt"

	"omnicrypt.dev/core/algo/common"
)

type Decoder struct {
	cursor *common.Cursor
	cipher *cryptoV3
	header header
}

func NewDecoder(p *common.DecoderParams) common.Decoder {
	return &Decoder{cursor: common.NewCursor(p.Buffer)}
}

func (d *Decoder) Validate() error {
	raw := d.cursor.ReadSized(headerLen)
	h, err := parseHeader(raw)
	if err != nil {
		return fmt.Errorf("kgm: validate: %w", err)
	}
	d.header = h

	switch h.cryptoVersion {
	case 3:
		cipher, err := newCryptoV3(&h)
		if err != nil {
			return fmt.Errorf("kgm: validate: %w", err)
		}
		d.cipher = cipher
	default:
		return fmt.Errorf("kgm: validate: %w: version %d", common.ErrUnsupportedCryptoVersion, h.cryptoVersion)
	}

	d.cursor.SeekStartNext(int(h.audioOffset))
	return nil
}

func (d *Decoder) DecodeBytes() ([]byte, error) {
	buf := append([]byte(nil), d.cursor.ReadToEnd()...)
	if err := d.cipher.Decrypt(buf); err != nil {
		return nil, fmt.Errorf("kgm: %w", err)
	}
	return buf, nil
}

func init() {
	common.RegisterDecoder("kgm", common.TypeKgm, false, NewDecoder)
	common.RegisterDecoder("kgma", common.TypeKgm, false, NewDecoder)
	common.RegisterDecoder("vpr", common.TypeKgm, false, NewDecoder)
}
