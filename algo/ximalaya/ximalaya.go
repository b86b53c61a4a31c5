// Package ximalaya implements Ximalaya's ".x2m"/".x3m" container: a
// fixed 1024-byte header run through one of two permutation-and-XOR
// "scramble" schemes, tried in order until the decrypted header sniffs
// as a known audio format.
package ximalaya

import (
	"fmt"

	"omnicrypt.dev/core/algo/common"
	"omnicrypt.dev/core/internal/sniff"
)

type Decoder struct {
	cursor *common.Cursor
	audio  []byte
}

func NewDecoder(p *common.DecoderParams) common.Decoder {
	return &Decoder{cursor: common.NewCursor(p.Buffer)}
}

func (d *Decoder) Validate() error {
	encryptedHeader := d.cursor.ReadSized(headerSize)

	if header := decryptX2MHeader(encryptedHeader); sniffs(header) {
		d.audio = append(header, d.cursor.ReadToEnd()...)
		return nil
	}

	if header := decryptX3MHeader(encryptedHeader); sniffs(header) {
		d.audio = append(header, d.cursor.ReadToEnd()...)
		return nil
	}

	return fmt.Errorf("ximalaya: %w", common.ErrInvalidAudioExtension)
}

func sniffs(header []byte) bool {
	_, ok := sniff.AudioExtension(header)
	return ok
}

func (d *Decoder) DecodeBytes() ([]byte, error) {
	if d.audio == nil {
		return nil, fmt.Errorf("ximalaya: decode: %w", common.ErrCipherUninitialized)
	}
	return d.audio, nil
}

func init() {
	common.RegisterDecoder("x2m", common.TypeXimalaya, false, NewDecoder)
	common.RegisterDecoder("x3m", common.TypeXimalaya, false, NewDecoder)
	common.RegisterDecoder("xm", common.TypeXimalaya, false, NewDecoder)
}
