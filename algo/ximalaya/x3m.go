package ximalaya

var x3mKey = []byte("3989d111aad5613940f4fc44b639b292")

func decryptX3MHeader(src []byte) []byte {
	dst := make([]byte, len(src))
	for dstIdx := range src {
		srcIdx := x3mScrambleTable[dstIdx]
		dst[dstIdx] = src[srcIdx] ^ x3mKey[dstIdx%len(x3mKey)]
	}
	return dst
}
