package ncm

import (
	"bytes"
	"crypto/aes"
	"encoding/base64"
	"encoding/binary"
	"testing"

	"omnicrypt.dev/core/algo/common"
)

func newTestDecoder(buf []byte) *Decoder {
	return &Decoder{
		cursor: common.NewCursor(buf),
		cipher: newUninitCipher(),
		meta:   &musicMeta{},
	}
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	return append(append([]byte(nil), data...), bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

func encryptAES128ECB(t *testing.T, data, key []byte) []byte {
	t.Helper()
	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}
	out := make([]byte, len(data))
	for off := 0; off < len(data); off += block.BlockSize() {
		block.Encrypt(out[off:off+block.BlockSize()], data[off:off+block.BlockSize()])
	}
	return out
}

// buildKeyBlock reproduces readKeyData's format in reverse: a 17-byte
// "neteasecloudmusic" prefix, the RC4 key, PKCS#7 padding, AES-128-ECB
// encryption under keyCore, then a per-byte XOR with 0x64.
func buildKeyBlock(t *testing.T, rc4Key []byte) []byte {
	t.Helper()
	plain := append([]byte("neteasecloudmusic"), rc4Key...)
	padded := pkcs7Pad(plain, aes.BlockSize)
	cipherText := encryptAES128ECB(t, padded, keyCore)
	for i := range cipherText {
		cipherText[i] ^= 0x64
	}
	return cipherText
}

// buildMetaBlock reproduces readMetaData's format in reverse: a 22-byte
// ignored preamble, then "<metaType>:<json>" XORed with 0x63, base64, and
// AES-128-ECB-encrypted under keyMeta.
func buildMetaBlock(t *testing.T, metaType string, json []byte) []byte {
	t.Helper()
	plain := append([]byte(metaType+":"), json...)
	padded := pkcs7Pad(plain, aes.BlockSize)
	cipherText := encryptAES128ECB(t, padded, keyMeta)
	encoded := []byte(base64.StdEncoding.EncodeToString(cipherText))
	for i := range encoded {
		encoded[i] ^= 0x63
	}
	return append(make([]byte, metaPreambleLen), encoded...)
}

func buildNCMFile(t *testing.T, rc4Key []byte, metaType string, metaJSON []byte, cover []byte, audioPlain []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(magicHeader)
	buf.Write(make([]byte, 2)) // gap

	keyBlock := buildKeyBlock(t, rc4Key)
	binary.Write(&buf, binary.LittleEndian, uint32(len(keyBlock)))
	buf.Write(keyBlock)

	metaBlock := buildMetaBlock(t, metaType, metaJSON)
	binary.Write(&buf, binary.LittleEndian, uint32(len(metaBlock)))
	buf.Write(metaBlock)

	buf.Write(make([]byte, 5)) // gap

	buf.Write(make([]byte, 4)) // cover CRC, unused
	binary.Write(&buf, binary.LittleEndian, uint32(len(cover)))
	buf.Write(cover)

	audioCipher := append([]byte(nil), audioPlain...)
	c := newCipher(rc4Key)
	if err := c.Decrypt(audioCipher); err != nil {
		t.Fatalf("encrypting audio fixture: %v", err)
	}
	buf.Write(audioCipher)

	return buf.Bytes()
}

func TestDecoderValidateAndDecode(t *testing.T) {
	rc4Key := []byte("sixteen byte key")
	audioPlain := []byte("pretend flac audio bytes go here")
	cover := []byte("\xff\xd8\xff fake jpeg bytes")
	metaJSON := []byte(`{"format":"flac","musicName":"A Song","artist":[["Someone",123]],"album":"An Album"}`)

	buf := buildNCMFile(t, rc4Key, "music", metaJSON, cover, audioPlain)

	d := newTestDecoder(buf)

	if err := d.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	audio, err := d.DecodeBytes()
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if !bytes.Equal(audio, audioPlain) {
		t.Errorf("decoded audio = %q, want %q", audio, audioPlain)
	}

	meta, err := d.GetAudioMeta()
	if err != nil {
		t.Fatalf("GetAudioMeta: %v", err)
	}
	if meta.GetTitle() != "A Song" {
		t.Errorf("GetTitle() = %q, want %q", meta.GetTitle(), "A Song")
	}
	if meta.GetAlbum() != "An Album" {
		t.Errorf("GetAlbum() = %q, want %q", meta.GetAlbum(), "An Album")
	}
	if got := meta.GetArtists(); len(got) != 1 || got[0] != "Someone" {
		t.Errorf("GetArtists() = %v, want [Someone]", got)
	}

	coverGot, err := d.GetCoverImage()
	if err != nil {
		t.Fatalf("GetCoverImage: %v", err)
	}
	if !bytes.Equal(coverGot, cover) {
		t.Errorf("cover image = %q, want %q", coverGot, cover)
	}

	if d.AudioExtension() != ".flac" {
		t.Errorf("AudioExtension() = %q, want .flac", d.AudioExtension())
	}
}

func TestDecoderValidateRejectsBadMagic(t *testing.T) {
	d := newTestDecoder([]byte("not an ncm file at all........."))
	if err := d.Validate(); err == nil {
		t.Error("expected an error for a missing CTENFDAM magic header")
	}
}
