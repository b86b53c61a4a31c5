package qmc

// rc4Cipher is QMC's RC4-derived stream cipher for long keys (>300
// bytes). It departs from textbook RC4 in two ways: the keystream is
// regenerated from scratch every 5120-byte segment (seeded by a
// position-dependent skip), and the first 128 bytes use a much simpler
// direct key-byte lookup instead of running the cipher at all.
type rc4Cipher struct {
	n     int
	state []byte
	hash  uint32
	key   []byte
}

const (
	rc4FirstSegmentSize = 128
	rc4SegmentSize      = 5120
)

func newRC4Cipher(key []byte) *rc4Cipher {
	n := len(key)
	state := make([]byte, n)
	for i := range state {
		state[i] = byte(i)
	}
	j := 0
	for i := 0; i < n; i++ {
		j = (j + int(state[i]) + int(key[i%n])) % n
		state[i], state[j] = state[j], state[i]
	}

	c := &rc4Cipher{n: n, state: state, key: key}
	c.computeHash()
	return c
}

func (c *rc4Cipher) computeHash() {
	c.hash = 1
	for i := 0; i < c.n; i++ {
		v := uint32(c.key[i])
		if v == 0 {
			continue
		}
		next := c.hash * v
		if next == 0 || next <= c.hash {
			break
		}
		c.hash = next
	}
}

func (c *rc4Cipher) getSegmentSkip(id int) int {
	seed := float64(c.key[id%c.n])
	idx := int(float64(c.hash) / (float64(id+1) * seed) * 100.0)
	return idx % c.n
}

func (c *rc4Cipher) CheckUninit() bool { return false }

func (c *rc4Cipher) Decrypt(buf []byte) error {
	for i := 0; i < len(buf) && i < rc4FirstSegmentSize; i++ {
		skip := c.getSegmentSkip(i)
		buf[i] ^= c.key[skip]
	}

	segmentID := 0
	for {
		segStart := segmentID * rc4SegmentSize
		if segStart >= len(buf) {
			break
		}
		segEndPredict := (segmentID + 1) * rc4SegmentSize
		segEnd := segEndPredict
		if segEnd > len(buf) {
			segEnd = len(buf)
		}
		c.decryptSegment(buf, segStart, segEnd, segmentID)
		segmentID++
	}
	return nil
}

func (c *rc4Cipher) decryptSegment(buf []byte, segStart, segEnd, segmentID int) {
	box := make([]byte, c.n)
	copy(box, c.state)

	skipLen := c.getSegmentSkip(segmentID)
	segLen := segEnd - segStart
	j, k := 0, 0
	for i := -skipLen; i < segLen; i++ {
		j = (j + 1) % c.n
		k = (int(box[j]) + k) % c.n
		box[j], box[k] = box[k], box[j]
		if i >= 0 && segStart+i >= rc4FirstSegmentSize {
			buf[segStart+i] ^= box[(int(box[j])+int(box[k]))%c.n]
		}
	}
}
