// Package ncm implements the NetEase Cloud Music ".ncm" container: an
// AES-wrapped RC4-keybox key, base64/AES-wrapped JSON metadata, an
// embedded cover image, and an RC4-keybox-enciphered audio payload.
package ncm

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"omnicrypt.dev/core/algo/common"
	"omnicrypt.dev/core/internal/cryptoutil"
)

func init() {
	common.RegisterDecoder("ncm", common.TypeNcm, false, NewDecoder)
}

var magicHeader = []byte("CTENFDAM")

var (
	keyCore = []byte{
		0x68, 0x7a, 0x48, 0x52, 0x41, 0x6d, 0x73, 0x6f, 0x35, 0x6b, 0x49, 0x6e, 0x62, 0x61, 0x78, 0x57,
	}
	keyMeta = []byte{
		0x23, 0x31, 0x34, 0x6C, 0x6A, 0x6B, 0x5F, 0x21, 0x5C, 0x5D, 0x26, 0x30, 0x55, 0x3C, 0x27, 0x28,
	}
)

// metaPreamble is the ASCII prefix NCM stamps ahead of the base64 blob:
// "163 key(Don't modify):"
const metaPreambleLen = 22

type Decoder struct {
	cursor   *common.Cursor
	cipher   *cipher
	metaRaw  []byte
	metaType string
	meta     meta
	cover    []byte
}

func NewDecoder(p *common.DecoderParams) common.Decoder {
	return &Decoder{
		cursor: common.NewCursor(p.Buffer),
		cipher: newUninitCipher(),
		meta:   &musicMeta{},
	}
}

func (d *Decoder) validateMagicHeader() error {
	header := d.cursor.ReadSized(len(magicHeader))
	if !bytes.Equal(header, magicHeader) {
		return fmt.Errorf("ncm: %w", common.ErrInvalidMagicHeader)
	}
	return nil
}

func (d *Decoder) readKeyData() ([]byte, error) {
	keyLen := binary.LittleEndian.Uint32(d.cursor.ReadSized(4))
	raw := append([]byte(nil), d.cursor.Read(int(keyLen))...)
	for i := range raw {
		raw[i] ^= 0x64
	}
	decrypted, err := cryptoutil.DecryptAES128ECB(raw, keyCore)
	if err != nil {
		return nil, fmt.Errorf("ncm: %w: %w", common.ErrCrypto, err)
	}
	unpadded := cryptoutil.PKCS7Unpad(decrypted)
	if len(unpadded) < 17 {
		return nil, fmt.Errorf("ncm: %w: key block too short", common.ErrReadRawKey)
	}
	return unpadded[17:], nil
}

func (d *Decoder) readMetaData() error {
	metaLen := binary.LittleEndian.Uint32(d.cursor.ReadSized(4))
	if metaLen == 0 {
		return nil
	}
	raw := append([]byte(nil), d.cursor.Read(int(metaLen))...)
	if len(raw) < metaPreambleLen {
		return fmt.Errorf("ncm: %w: metadata block too short", common.ErrInvalidRawMeta)
	}
	raw = raw[metaPreambleLen:]
	for i := range raw {
		raw[i] ^= 0x63
	}
	cipherText := make([]byte, base64.StdEncoding.DecodedLen(len(raw)))
	n, err := base64.StdEncoding.Decode(cipherText, raw)
	if err != nil {
		return fmt.Errorf("ncm: %w: %w", common.ErrBase64Decode, err)
	}
	cipherText = cipherText[:n]

	plain, err := cryptoutil.DecryptAES128ECB(cipherText, keyMeta)
	if err != nil {
		return fmt.Errorf("ncm: %w: %w", common.ErrCrypto, err)
	}
	plain = cryptoutil.PKCS7Unpad(plain)

	sep := bytes.IndexByte(plain, ':')
	if sep < 0 {
		return fmt.Errorf("ncm: %w", common.ErrMetaTypeNotFound)
	}
	d.metaType = string(plain[:sep])
	d.metaRaw = plain[sep+1:]
	return nil
}

func (d *Decoder) readCoverData() error {
	_ = d.cursor.ReadSized(4) // cover CRC, unused
	coverLen := binary.LittleEndian.Uint32(d.cursor.ReadSized(4))
	d.cover = d.cursor.Read(int(coverLen))
	return nil
}

func (d *Decoder) parseMeta() error {
	switch d.metaType {
	case "music":
		m := &musicMeta{}
		if err := json.Unmarshal(d.metaRaw, m); err != nil {
			return fmt.Errorf("ncm: %w: %w", common.ErrParseMeta, err)
		}
		d.meta = m
	case "dj":
		m := &djMeta{}
		if err := json.Unmarshal(d.metaRaw, m); err != nil {
			return fmt.Errorf("ncm: %w: %w", common.ErrParseMeta, err)
		}
		d.meta = m
	default:
		return fmt.Errorf("ncm: %w", common.ErrUnknownMetaType)
	}
	return nil
}

func (d *Decoder) Validate() error {
	if err := d.validateMagicHeader(); err != nil {
		return err
	}
	d.cursor.SeekNext(2) // gap

	keyData, err := d.readKeyData()
	if err != nil {
		return fmt.Errorf("ncm: validate: %w", err)
	}
	if err := d.readMetaData(); err != nil {
		return fmt.Errorf("ncm: validate: %w", err)
	}
	d.cursor.SeekNext(5) // gap
	if err := d.readCoverData(); err != nil {
		return fmt.Errorf("ncm: validate: %w", err)
	}
	if d.metaType != "" {
		if err := d.parseMeta(); err != nil {
			return fmt.Errorf("ncm: validate: %w", err)
		}
	}
	d.cipher = newCipher(keyData)
	return nil
}

func (d *Decoder) DecodeBytes() ([]byte, error) {
	if d.cipher.CheckUninit() {
		return nil, fmt.Errorf("ncm: %w", common.ErrCipherUninitialized)
	}
	buf := append([]byte(nil), d.cursor.ReadToEnd()...)
	if err := d.cipher.Decrypt(buf); err != nil {
		return nil, fmt.Errorf("ncm: %w", err)
	}
	return buf, nil
}

func (d *Decoder) GetCoverImage() ([]byte, error) {
	return d.cover, nil
}

func (d *Decoder) GetAudioMeta() (common.AudioMeta, error) {
	if d.metaType == "" {
		return nil, nil
	}
	return d.meta, nil
}

// AudioExtension returns the format-declared extension, if any.
func (d *Decoder) AudioExtension() string {
	if format := d.meta.getFormat(); format != "" {
		return "." + format
	}
	return ""
}
