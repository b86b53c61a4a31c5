package common

import (
	"fmt"

	"omnicrypt.dev/core/internal/sniff"
)

// RawDecoder is the no-op passthrough decoder: it validates that the
// buffer already sniffs as audio and returns it unchanged.
type RawDecoder struct {
	buffer   []byte
	audioExt string
}

func NewRawDecoder(p *DecoderParams) Decoder {
	return &RawDecoder{buffer: p.Buffer, audioExt: p.Extension}
}

func (d *RawDecoder) Validate() error {
	cur := NewCursor(d.buffer)
	header := cur.ReadSized(16)
	ext, ok := sniff.AudioExtension(header)
	if !ok {
		return fmt.Errorf("raw: %w", ErrInvalidAudioExtension)
	}
	d.audioExt = ext
	return nil
}

func (d *RawDecoder) DecodeBytes() ([]byte, error) {
	return d.buffer, nil
}

// AudioExtension returns the extension detected during Validate.
func (d *RawDecoder) AudioExtension() string { return d.audioExt }

func init() {
	// Formats that are never encrypted: sniff and pass through unchanged.
	// Registered noop so a dispatch that wants only "real" decoders can
	// skip straight past them.
	for _, ext := range []string{"mp3", "flac", "ogg", "m4a", "wav", "wma", "aac"} {
		RegisterDecoder(ext, TypeRaw, true, NewRawDecoder)
	}
}
