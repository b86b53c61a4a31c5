// Package qmc implements QQ Music's family of ".qmc*"/".mflac*"/".mgg*"
// containers: a bare audio stream with the decryption key recovered from
// one of several trailer conventions (a "QTag" metadata block, a raw
// appended key, or nothing at all), deciphered with whichever stream
// cipher matches the recovered key's shape.
package qmc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"omnicrypt.dev/core/algo/common"
	"omnicrypt.dev/core/internal/sniff"
)

type Decoder struct {
	cursor *common.Cursor

	audioLen  int
	decodeKey []byte
	cipher    common.Decrypter

	songID        int
	rawMetaExtra2 int
}

func NewDecoder(p *common.DecoderParams) common.Decoder {
	return &Decoder{cursor: common.NewCursor(p.Buffer)}
}

func newCipherForKey(key []byte) (common.Decrypter, error) {
	switch {
	case len(key) > 300:
		return newRC4Cipher(key), nil
	case len(key) != 0:
		return newMapCipher(key)
	default:
		return staticCipher{}, nil
	}
}

func (d *Decoder) Validate() error {
	if err := d.searchKey(); err != nil {
		return fmt.Errorf("qmc: validate: %w", err)
	}

	c, err := newCipherForKey(d.decodeKey)
	if err != nil {
		return fmt.Errorf("qmc: validate: %w", err)
	}
	d.cipher = c

	if err := d.validateDecode(); err != nil {
		return fmt.Errorf("qmc: validate: %w", err)
	}
	return nil
}

// validateDecode sniffs the first 128 decrypted bytes to confirm the
// recovered key actually produces a recognizable audio stream.
func (d *Decoder) validateDecode() error {
	d.cursor.SeekStart()
	probe := append([]byte(nil), d.cursor.ReadSized(128)...)
	if err := d.cipher.Decrypt(probe); err != nil {
		return err
	}
	if _, ok := sniff.AudioExtension(probe); !ok {
		return fmt.Errorf("qmc: %w", common.ErrInvalidAudioExtension)
	}
	return nil
}

func (d *Decoder) searchKey() error {
	d.cursor.SeekEndBefore(4)
	fileSizeM4 := d.cursor.Pos()
	fileSize := fileSizeM4 + 4

	suffix := d.cursor.ReadSized(4)

	switch string(suffix) {
	case "QTag":
		return d.readRawMetaQTag()
	case "STag":
		return fmt.Errorf("qmc: %w", common.ErrInvalidSTag)
	}

	size := binary.LittleEndian.Uint32(suffix)
	if size != 0 && size <= 0xFFFF {
		return d.readRawKey(int(size))
	}

	d.audioLen = fileSize
	return nil
}

func (d *Decoder) readRawKey(rawKeyLen int) error {
	d.cursor.SeekEndBefore(4 + rawKeyLen)
	d.audioLen = d.cursor.Pos()

	rawKeyData := append([]byte(nil), d.cursor.Read(rawKeyLen)...)
	rawKeyData = bytes.TrimRight(rawKeyData, "\x00")

	key, err := deriveKey(rawKeyData)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrReadRawKey, err)
	}
	d.decodeKey = key
	return nil
}

func (d *Decoder) readRawMetaQTag() error {
	d.cursor.SeekEndBefore(8)
	rawMetaLen := int(binary.BigEndian.Uint32(d.cursor.ReadSized(4)))

	d.cursor.SeekEndBefore(8 + rawMetaLen)
	d.audioLen = d.cursor.Pos()

	rawMetaData := d.cursor.Read(rawMetaLen)
	items := strings.Split(string(rawMetaData), ",")
	if len(items) != 3 {
		return fmt.Errorf("qmc: %w", common.ErrInvalidRawMetaLen)
	}

	key, err := deriveKey([]byte(items[0]))
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidDecodeKey, err)
	}
	d.decodeKey = key

	d.songID, err = strconv.Atoi(items[1])
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidSongID, err)
	}
	d.rawMetaExtra2, err = strconv.Atoi(items[2])
	if err != nil {
		return fmt.Errorf("qmc: invalid raw_mete_extract2: %w", err)
	}
	return nil
}

func (d *Decoder) DecodeBytes() ([]byte, error) {
	d.cursor.SeekStart()
	audio := append([]byte(nil), d.cursor.Read(d.audioLen)...)

	if d.cipher.CheckUninit() {
		return nil, fmt.Errorf("qmc: %w", common.ErrCipherUninitialized)
	}
	if err := d.cipher.Decrypt(audio); err != nil {
		return nil, fmt.Errorf("qmc: %w", err)
	}
	return audio, nil
}

//goland:noinspection SpellCheckingInspection
func init() {
	exts := []string{
		"qmc0", "qmc3", // QQ Music MP3
		"qmc2", "qmc4", "qmc6", "qmc8", // QQ Music M4A
		"qmcflac", // QQ Music FLAC
		"qmcogg",  // QQ Music OGG
		"tkm",     // QQ Music accompaniment M4A
		"bkcmp3", "bkcm4a", "bkcflac", "bkcwav", "bkcape", "bkcogg", "bkcwma", // Moo Music
		"666c6163", // "flac" hex-encoded, QQ Music Weiyun
		"6d7033",   // "mp3" hex-encoded
		"6f6767",   // "ogg" hex-encoded
		"6d3461",   // "m4a" hex-encoded
		"776176",   // "wav" hex-encoded
		"mgg", "mgg1", "mggl",
		"mflac", "mflac0", "mflach",
		"mmp4", // QQ Music MP4 container, typically a Dolby EAC3 stream
	}
	for _, ext := range exts {
		common.RegisterDecoder(ext, common.TypeQmc, false, NewDecoder)
	}
}
