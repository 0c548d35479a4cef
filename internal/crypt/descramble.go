package crypt

import "encoding/binary"

// saltSuffix is the fixed 4-byte suffix appended to the compressed keyword
// index size before RIPEMD-128 hashing to derive the descrambler key.
var saltSuffix = [4]byte{0x95, 0x36, 0x00, 0x00}

// DeriveKeywordIndexKey computes the 16-byte RIPEMD-128 key used to
// descramble an encrypted keyword-block index table, from the size
// (compressed, little-endian 32-bit) of that table.
func DeriveKeywordIndexKey(kwIndexCompressedSize uint32) [16]byte {
	var msg [8]byte
	binary.LittleEndian.PutUint32(msg[0:4], kwIndexCompressedSize)
	copy(msg[4:8], saltSuffix[:])

	return Sum128(msg[:])
}

// DescrambleKeywordIndex reverses the published MDict keyword-index cipher
// in place over payload (the bytes following the opaque 8-byte prefix):
//
//	out[i] = ROR8(in[i] XOR key[i mod 16] XOR (i & 0xFF), 3)
//
// The transform is an involution-free byte cipher (not XOR-only), so
// descrambling uses the same formula as the published scrambling routine —
// MDict's "encryption" here is a fixed, keyed descrambler, not a general
// cipher with a separate inverse.
func DescrambleKeywordIndex(payload []byte, key [16]byte) {
	for i := range payload {
		v := payload[i] ^ key[i%16] ^ byte(i&0xFF)
		payload[i] = ror8(v, 3)
	}
}

// ror8 rotates an 8-bit value right by n bits (0 <= n < 8).
func ror8(v byte, n uint) byte {
	n &= 7
	return (v >> n) | (v << (8 - n))
}
