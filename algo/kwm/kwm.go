// Package kwm implements Kuwo's ".kwm" container: a fixed 1024-byte
// header carrying an 8-byte key seed and a bitrate/extension string,
// followed by a payload XORed against a 32-byte repeating mask.
package kwm

import (
	"bytes"
	"fmt"
	"strings"

	"omnicrypt.dev/core/algo/common"
)

var magicHeader1 = []byte("yeelion-kuwo-tme")
var magicHeader2 = []byte("yeelion-kuwo\x00\x00\x00\x00")

const headerLen = 0x400

type Decoder struct {
	cursor    *common.Cursor
	cipher    *cipher
	bitrate   int
	outputExt string
}

func NewDecoder(p *common.DecoderParams) common.Decoder {
	return &Decoder{cursor: common.NewCursor(p.Buffer), cipher: newUninitCipher()}
}

func (d *Decoder) Validate() error {
	header := d.cursor.ReadSized(headerLen)

	magic := header[0x00:0x10]
	if !bytes.Equal(magic, magicHeader1) && !bytes.Equal(magic, magicHeader2) {
		return fmt.Errorf("kwm: %w", common.ErrInvalidMagicHeader)
	}

	var key [8]byte
	copy(key[:], header[0x18:0x20])
	d.cipher = newCipher(key)

	d.bitrate, d.outputExt = parseBitrateAndType(header[0x20:0x40])
	return nil
}

func (d *Decoder) DecodeBytes() ([]byte, error) {
	buf := append([]byte(nil), d.cursor.ReadToEnd()...)
	if err := d.cipher.Decrypt(buf); err != nil {
		return nil, fmt.Errorf("kwm: %w", err)
	}
	return buf, nil
}

// AudioExtension returns the declared output extension, if any.
func (d *Decoder) AudioExtension() string {
	if d.outputExt == "" {
		return ""
	}
	return "." + d.outputExt
}

func parseBitrateAndType(header []byte) (int, string) {
	end := len(header)
	for end != 0 && header[end-1] == 0x00 {
		end--
	}
	trimmed := header[:end]

	sep := len(trimmed)
	for i, b := range trimmed {
		if b < '0' || b > '9' {
			sep = i
			break
		}
	}

	bitrate := 0
	for _, b := range trimmed[:sep] {
		bitrate = bitrate*10 + int(b-'0')
	}
	ext := strings.ToLower(string(trimmed[sep:]))
	return bitrate, ext
}

func init() {
	common.RegisterDecoder("kwm", common.TypeKwm, false, NewDecoder)
	common.RegisterDecoder("kwm", common.TypeRaw, false, common.NewRawDecoder)
}
