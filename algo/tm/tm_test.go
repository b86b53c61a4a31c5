package tm

import (
	"bytes"
	"testing"

	"omnicrypt.dev/core/algo/common"
)

func TestValidateReplacesQQMUHeader(t *testing.T) {
	rest := []byte("the rest of an m4a-ish payload")
	buf := append(append([]byte{}, magicHeader...), append([]byte{0, 0, 0, 0}, rest...)...)

	d := &Decoder{cursor: common.NewCursor(buf)}
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	out, err := d.DecodeBytes()
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if !bytes.HasPrefix(out, replaceHeader) {
		t.Errorf("decoded output does not start with the replacement ftyp header")
	}
	if !bytes.HasSuffix(out, rest) {
		t.Errorf("decoded output does not carry through the trailing payload")
	}
}

func TestValidateKeepsSniffableHeader(t *testing.T) {
	rest := []byte("remaining mp3 frames...")
	header := []byte("ID3\x04\x00\x00\x00\x00")
	buf := append(append([]byte{}, header...), rest...)

	d := &Decoder{cursor: common.NewCursor(buf)}
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	out, err := d.DecodeBytes()
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if !bytes.Equal(out, append(append([]byte{}, header...), rest...)) {
		t.Errorf("decoded output should be the original header unchanged plus the rest")
	}
}

func TestValidateRejectsUnrecognisedHeader(t *testing.T) {
	buf := append([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, []byte("more")...)
	d := &Decoder{cursor: common.NewCursor(buf)}
	if err := d.Validate(); err == nil {
		t.Error("expected an error for a header that neither matches QQMU nor sniffs")
	}
}
