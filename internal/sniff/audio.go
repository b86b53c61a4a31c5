// Package sniff maps leading container bytes to an audio or image
// extension, by magic-byte prefix or (for MPEG-4) by parsing the leading
// ftyp box.
package sniff

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/exp/slices"
)

// Sniffer tests whether header matches one container's magic bytes.
type Sniffer interface {
	Sniff(header []byte) bool
}

type prefixSniffer []byte

func (s prefixSniffer) Sniff(header []byte) bool {
	return bytes.HasPrefix(header, s)
}

var wmaMagic = prefixSniffer{
	0x30, 0x26, 0xb2, 0x75, 0x8e, 0x66, 0xcf, 0x11,
	0xa6, 0xd9, 0x00, 0xaa, 0x00, 0x62, 0xce, 0x6c,
}

type m4aSniffer struct{}

func (m4aSniffer) Sniff(header []byte) bool {
	box := readMpeg4FtypBox(header)
	if box == nil {
		return false
	}
	return box.majorBrand == "M4A " || slices.Contains(box.compatibleBrands, "M4A ")
}

type mpeg4Sniffer struct{}

func (mpeg4Sniffer) Sniff(header []byte) bool {
	return readMpeg4FtypBox(header) != nil
}

type mpeg4FtypBox struct {
	majorBrand       string
	minorVersion     uint32
	compatibleBrands []string
}

func readMpeg4FtypBox(header []byte) *mpeg4FtypBox {
	if len(header) < 16 || !bytes.Equal([]byte("ftyp"), header[4:8]) {
		return nil
	}
	size := binary.BigEndian.Uint32(header[0:4])
	if size < 16 || size%4 != 0 {
		return nil
	}
	box := &mpeg4FtypBox{
		majorBrand:   string(header[8:12]),
		minorVersion: binary.BigEndian.Uint32(header[12:16]),
	}
	for i := 16; i+4 <= int(size) && i+4 <= len(header); i += 4 {
		box.compatibleBrands = append(box.compatibleBrands, string(header[i:i+4]))
	}
	return box
}

// AudioExtension sniffs the known audio container types in priority order
// and returns the dot-prefixed extension. header should be at least 16
// bytes for MPEG-4/WMA detection to work, but shorter inputs degrade
// gracefully to "no match".
func AudioExtension(header []byte) (string, bool) {
	switch {
	case prefixSniffer("ID3").Sniff(header):
		return ".mp3", true
	case prefixSniffer("OggS").Sniff(header):
		return ".ogg", true
	case prefixSniffer("RIFF").Sniff(header):
		return ".wav", true
	case wmaMagic.Sniff(header):
		return ".wma", true
	case (m4aSniffer{}).Sniff(header):
		return ".m4a", true
	case (mpeg4Sniffer{}).Sniff(header):
		return ".mp4", true
	case prefixSniffer("fLaC").Sniff(header):
		return ".flac", true
	case prefixSniffer("FRM8").Sniff(header):
		return ".dff", true
	default:
		return "", false
	}
}

// AudioExtensionWithFallback is AudioExtension, defaulting to fallback
// when nothing matches.
func AudioExtensionWithFallback(header []byte, fallback string) string {
	if ext, ok := AudioExtension(header); ok {
		return ext
	}
	return fallback
}
