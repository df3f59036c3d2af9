package digest

import (
	"encoding/binary"
	"hash/crc32"
)

// CRC32 exposes the IEEE cyclic redundancy check through the Digest interface.
// The 32-bit checksum is serialised big-endian, so the 4-byte digest reads as the
// same number that a U32 encoding prints.
type CRC32 struct {
	crc uint32
}

// NewCRC32 returns a CRC32 digest in its initial state.
func NewCRC32() *CRC32 {
	return &CRC32{}
}

// Reset clears the accumulated checksum.
func (c *CRC32) Reset() {
	c.crc = 0
}

// Update accumulates p into the running checksum.
func (c *CRC32) Update(p []byte) {
	c.crc = crc32.Update(c.crc, crc32.IEEETable, p)
}

// Sum32 returns the checksum accumulated so far.
func (c *CRC32) Sum32() uint32 {
	return c.crc
}

// Finalize returns the checksum as 4 big-endian bytes.
func (c *CRC32) Finalize() []byte {
	return binary.BigEndian.AppendUint32(make([]byte, 0, crc32.Size), c.crc)
}

// Size returns crc32.Size (4).
func (c *CRC32) Size() int {
	return crc32.Size
}
