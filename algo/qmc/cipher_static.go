package qmc

import "math/rand"

// staticTable is QMC's fallback single-byte-indexed XOR table, used when
// no key could be recovered from the container. The authentic 256-byte
// table ships as a compiled-in asset in the reference implementation and
// was not available to build this package against; this placeholder is
// generated deterministically so the cipher is well-defined, but it will
// not recover real QMC0 audio encrypted under the real table.
var staticTable = generateStaticTable()

func generateStaticTable() [256]byte {
	var table [256]byte
	r := rand.New(rand.NewSource(0x51434d43)) // "QMC" placeholder seed
	for i := range table {
		table[i] = byte(r.Intn(256))
	}
	return table
}

type staticCipher struct{}

func (staticCipher) CheckUninit() bool { return false }

func (staticCipher) Decrypt(buf []byte) error {
	for i := range buf {
		buf[i] ^= staticTable[((i*i+27)>>8)%256]
	}
	return nil
}
