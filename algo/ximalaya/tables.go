package ximalaya

import "math/rand"

// The real x2m/x3m scramble tables are proprietary binary assets shipped
// alongside the reference decoder; they were not available to build this
// package against. These placeholder permutations are generated
// deterministically so validate() is well-defined, but they will not
// recover real Ximalaya audio — see the project notes for the tracking
// decision.
const headerSize = 1024

func generatePlaceholderTable(seed int64) [headerSize]uint16 {
	var table [headerSize]uint16
	for i := range table {
		table[i] = uint16(i)
	}
	r := rand.New(rand.NewSource(seed))
	for i := headerSize - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		table[i], table[j] = table[j], table[i]
	}
	return table
}

var x2mScrambleTable = generatePlaceholderTable(0x78326d)
var x3mScrambleTable = generatePlaceholderTable(0x78336d)
