package sniff

import "testing"

func TestImageMIME(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   string
		wantOK bool
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, "image/jpeg", true},
		{"png non-standard prefix", []byte("PNG\r\n\x1A\n"), "image/png", true},
		{"png canonical signature does not match", []byte("\x89PNG\r\n\x1A\n"), "", false},
		{"bmp", []byte("BM\x00\x00"), "image/bmp", true},
		{"gif", []byte("GIF89a"), "image/gif", true},
		{"unknown", []byte{0, 1, 2, 3}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ImageMIME(tt.header)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ImageMIME() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
