// Package tm implements the QQ Music iOS "tm*" container, which is
// either a bare audio file with a rewritten header (tm2/tm6, to undo the
// QQMU tag) or an entirely unencrypted file wearing a tm extension
// (tm0/tm3).
package tm

import (
	"bytes"
	"fmt"

	"omnicrypt.dev/core/algo/common"
	"omnicrypt.dev/core/internal/sniff"
)

var replaceHeader = []byte{0x00, 0x00, 0x00, 0x20, 0x66, 0x74, 0x79, 0x70}
var magicHeader = []byte{0x51, 0x51, 0x4D, 0x55} // "QQMU"

type Decoder struct {
	cursor *common.Cursor
	header []byte
}

func NewDecoder(p *common.DecoderParams) common.Decoder {
	return &Decoder{cursor: common.NewCursor(p.Buffer)}
}

func (d *Decoder) Validate() error {
	header := d.cursor.ReadSized(8)

	switch {
	case bytes.Equal(magicHeader, header[:len(magicHeader)]):
		d.header = replaceHeader
	case sniffed(header):
		d.header = append([]byte(nil), header...)
	default:
		return fmt.Errorf("tm: %w", common.ErrInvalidMagicHeader)
	}
	return nil
}

func sniffed(header []byte) bool {
	_, ok := sniff.AudioExtension(header)
	return ok
}

func (d *Decoder) DecodeBytes() ([]byte, error) {
	rest := d.cursor.ReadToEnd()
	out := make([]byte, 0, len(d.header)+len(rest))
	out = append(out, d.header...)
	out = append(out, rest...)
	return out, nil
}

func init() {
	// QQ Music iOS m4a (header rewritten on decode)
	common.RegisterDecoder("tm2", common.TypeTm, false, NewDecoder)
	common.RegisterDecoder("tm6", common.TypeTm, false, NewDecoder)

	// QQ Music iOS mp3 (not actually encrypted)
	common.RegisterDecoder("tm0", common.TypeTm, false, NewDecoder)
	common.RegisterDecoder("tm3", common.TypeTm, false, NewDecoder)
}
