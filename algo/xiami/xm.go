// Package xiami implements Xiami's ".xm" container: a 16-byte header
// tagging the wrapped format plus a single-byte XOR mask applied from a
// declared offset to the end of the payload.
package xiami

import (
	"bytes"
	"fmt"

	"omnicrypt.dev/core/algo/common"
)

var magicHeader = []byte{'i', 'f', 'm', 't'}
var magicHeader2 = []byte{0xfe, 0xfe, 0xfe, 0xfe}

var typeMapping = map[string]string{
	" WAV": "wav",
	"FLAC": "flac",
	" MP3": "mp3",
	" A4M": "m4a",
}

type Decoder struct {
	cursor    *common.Cursor
	cipher    *cipher
	outputExt string
}

func NewDecoder(p *common.DecoderParams) common.Decoder {
	return &Decoder{cursor: common.NewCursor(p.Buffer)}
}

func (d *Decoder) Validate() error {
	header := d.cursor.ReadSized(16)

	if !bytes.Equal(header[0:4], magicHeader) || !bytes.Equal(header[8:12], magicHeader2) {
		return fmt.Errorf("xiami: %w", common.ErrInvalidMagicHeader)
	}

	ext, ok := typeMapping[string(header[4:8])]
	if !ok {
		return fmt.Errorf("xiami: %w", common.ErrInvalidAudioExtension)
	}
	d.outputExt = ext

	encryptStartAt := uint32(header[12]) | uint32(header[13])<<8 | uint32(header[14])<<16
	d.cipher = newCipher(header[15], int(encryptStartAt))
	return nil
}

func (d *Decoder) DecodeBytes() ([]byte, error) {
	buf := append([]byte(nil), d.cursor.ReadToEnd()...)
	if err := d.cipher.Decrypt(buf); err != nil {
		return nil, fmt.Errorf("xiami: %w", err)
	}
	return buf, nil
}

// AudioExtension returns the container's declared wrapped-format extension.
func (d *Decoder) AudioExtension() string {
	if d.outputExt == "" {
		return ""
	}
	return "." + d.outputExt
}

func init() {
	common.RegisterDecoder("xm", common.TypeXm, false, NewDecoder)
	common.RegisterDecoder("wav", common.TypeXm, false, NewDecoder)
	common.RegisterDecoder("mp3", common.TypeXm, false, NewDecoder)
	common.RegisterDecoder("flac", common.TypeXm, false, NewDecoder)
	common.RegisterDecoder("m4a", common.TypeXm, false, NewDecoder)
}
