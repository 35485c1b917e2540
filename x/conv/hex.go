package conv

const hexd = "0123456789ABCDEF"

// Hex writes the low `digits` nibbles of n as uppercase hex without 0x,
// zero-padded, right-aligned in buf.
func Hex(buf []byte, n uint32, digits int) []byte {
	if digits <= 0 || len(buf) < digits {
		return buf[:0]
	}
	i := len(buf)
	for j := 0; j < digits; j++ {
		i--
		buf[i] = hexd[n&0xF]
		n >>= 4
	}
	return buf[i:]
}

// U16Hex writes a 4-digit register address, e.g. "0511".
func U16Hex(buf []byte, n uint16) []byte { return Hex(buf, uint32(n), 4) }

// U8Hex writes a 2-digit register value.
func U8Hex(buf []byte, n uint8) []byte { return Hex(buf, uint32(n), 2) }
