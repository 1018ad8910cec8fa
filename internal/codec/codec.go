// internal/codec/codec.go
package codec

// Register words are 16-bit two's complement on the controller side.
// No IO. No side effects.

const (
	minSigned   = -0x8000
	maxUnsigned = 0xFFFF

	coilOn  uint16 = 0xFF00
	coilOff uint16 = 0x0000
)

// DecodeSigned converts a raw holding-register word into a signed value.
//
// A top nibble of 8..F marks a negative number. Its magnitude is taken from the
// 32-bit complement of the word, and the result is negated only when the upper
// halfword of that complement is all ones. Controller tooling decodes the same
// way, so the rule is kept verbatim. For 16-bit inputs the upper halfword is
// always 0xFFFF and the non-negated branch is unreachable.
func DecodeSigned(word uint16) int {
	if word>>12 < 0x8 {
		return int(word)
	}

	twos := ^uint32(word) + 1
	lower := int(twos & 0xFFFF)
	if twos>>16 == 0xFFFF {
		return -lower
	}
	return lower
}

// EncodeSigned returns the lower 16 bits of the 32-bit two's complement of v.
// Values outside InRange are truncated, never rejected.
func EncodeSigned(v int) uint16 {
	return uint16(uint32(int32(v)))
}

// InRange reports whether v survives EncodeSigned, read back either as int16 or uint16.
func InRange(v int) bool {
	return v >= minSigned && v <= maxUnsigned
}

// Coil returns the single-coil write value for a boolean state.
func Coil(on bool) uint16 {
	if on {
		return coilOn
	}
	return coilOff
}

// CoilState unpacks the first coil from a read-coils status payload.
func CoilState(status []byte) bool {
	if len(status) == 0 {
		return false
	}
	return status[0]&0x01 != 0
}

// Word joins a big-endian register payload into one word.
func Word(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

// Bytes splits register words into their big-endian wire order.
func Bytes(words []uint16) []byte {
	out := make([]byte, len(words)*2)
	for i, w := range words {
		out[2*i] = byte(w >> 8)
		out[2*i+1] = byte(w)
	}
	return out
}
