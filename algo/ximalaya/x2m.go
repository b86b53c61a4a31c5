package ximalaya

var x2mKey = []byte{'x', 'm', 'l', 'y'}

func decryptX2MHeader(src []byte) []byte {
	dst := make([]byte, len(src))
	for dstIdx := range src {
		srcIdx := x2mScrambleTable[dstIdx]
		dst[dstIdx] = src[srcIdx] ^ x2mKey[dstIdx%len(x2mKey)]
	}
	return dst
}
