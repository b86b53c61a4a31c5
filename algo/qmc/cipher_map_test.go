package qmc

import "testing"

func TestRotate8(t *testing.T) {
	if got := rotate8(0x80, 0); got != 0x08 {
		t.Errorf("rotate8(0x80, 0) = %#x, want 0x08", got)
	}
	for _, v := range []byte{0x00, 0x01, 0x7F, 0xAB, 0xFF} {
		if got := rotate8(v, 4); got != v {
			t.Errorf("rotate8(%#x, 4) = %#x, want %#x", v, got, v)
		}
	}
}

func TestMapCipherUninit(t *testing.T) {
	if _, err := newMapCipher(nil); err == nil {
		t.Error("expected error constructing map cipher with empty key")
	}
	c, err := newMapCipher([]byte{0x01, 0x02, 0x03})
	if err != nil {
		t.Fatalf("newMapCipher: %v", err)
	}
	if c.CheckUninit() {
		t.Error("cipher with a non-empty key should not report uninitialized")
	}
}
