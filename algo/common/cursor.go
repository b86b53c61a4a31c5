package common

// Cursor is a read cursor over an immutable shared byte buffer. Reads
// return slice views into the backing array, never copies. Out-of-range
// reads panic (a slice-bounds panic), matching the source's fixed-size
// read_sized semantics: a malformed container is caught by the dispatch
// loop's per-candidate recover, not by bounds-checking every field here.
type Cursor struct {
	buffer []byte
	cursor int
}

// NewCursor wraps buf for sequential reading starting at offset 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buffer: buf}
}

func (c *Cursor) SeekStart()          { c.cursor = 0 }
func (c *Cursor) SeekNext(n int)      { c.cursor += n }
func (c *Cursor) SeekStartNext(n int) { c.cursor = n }
func (c *Cursor) SeekEnd()            { c.cursor = len(c.buffer) }
func (c *Cursor) SeekEndBefore(n int) { c.cursor = len(c.buffer) - n }

func (c *Cursor) Pos() int { return c.cursor }
func (c *Cursor) Len() int { return len(c.buffer) }

// Read returns the next n bytes and advances the cursor.
func (c *Cursor) Read(n int) []byte {
	buf := c.buffer[c.cursor : c.cursor+n]
	c.cursor += n
	return buf
}

// ReadSized is Read with a name that documents a fixed-width header field.
func (c *Cursor) ReadSized(n int) []byte {
	return c.Read(n)
}

// ReadToEnd returns everything from the cursor to the end of the buffer
// and seeks to the end.
func (c *Cursor) ReadToEnd() []byte {
	buf := c.buffer[c.cursor:]
	c.cursor = len(c.buffer)
	return buf
}
