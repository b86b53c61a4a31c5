// Package formats wires every container decoder into the common dispatch
// registry. Go initializes these packages in import-path order (after
// algo/common, which each of them imports), not in the order listed
// below. The only extension two of them share is "xm", and "xiami" sorts
// before "ximalaya", so Xiami's decoder is tried first. The raw
// passthrough entries that precede Xiami's for wav/mp3/flac/m4a come from
// algo/common's own init, and kwm's two entries come from one init.
package formats

import (
	_ "omnicrypt.dev/core/algo/kgm"
	_ "omnicrypt.dev/core/algo/kwm"
	_ "omnicrypt.dev/core/algo/ncm"
	_ "omnicrypt.dev/core/algo/tm"
	_ "omnicrypt.dev/core/algo/xiami"
	_ "omnicrypt.dev/core/algo/ximalaya"
	_ "omnicrypt.dev/core/algo/qmc"
)
