// Package utf provides the UTF-8 codepoint scanner used by the string
// functions.
//
// The decode tables follow the classic SQLite utf.c layout: a 256-entry
// lead-byte table giving the number of continuation bytes, per-length bias
// constants, and per-length minimum-value masks that reject overlong
// encodings. SQLite is in the public domain: https://sqlite.org/copyright.html
package utf

// ReplacementChar is substituted for every malformed UTF-8 sequence.
const ReplacementChar = '\uFFFD'

// leadWidth maps the first byte of a UTF-8 character to the number of
// continuation bytes expected. The value 4 marks bytes that are not a legal
// first byte (continuation bytes 0x80-0xBF and the invalid range 0xF8-0xFF).
var leadWidth = [256]byte{
	/* 0xxxxxxx */
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,

	/* 10wwwwww */
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4,
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4,
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4,
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4,

	/* 110yyyyy */
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,

	/* 1110zzzz */
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,

	/* 11110yyy */
	3, 3, 3, 3, 3, 3, 3, 3, 4, 4, 4, 4, 4, 4, 4, 4,
}

// decodeBias[n] is the constant accumulated by shifting a lead byte and n
// continuation bytes together; it is subtracted after the shifts to recover
// the scalar value.
var decodeBias = [4]uint32{
	0,
	0x00003080, // (0xC0 << 6) + 0x80
	0x000E2080, // (0xE0 << 12) + (0x80 << 6) + 0x80
	0x03C82080, // (0xF0 << 18) + (0x80 << 12) + (0x80 << 6) + 0x80
}

// overlongMask[n] must produce a non-zero result when ANDed with a value
// decoded from n continuation bytes. A zero result means the sequence used
// more bytes than the minimal encoding requires.
var overlongMask = [4]uint32{
	0x00000000,
	0xFFFFFF80,
	0xFFFFF800,
	0xFFFF0000,
}

// DecodeRune decodes one UTF-8 codepoint from the start of data and reports
// how many bytes it consumed. Malformed input (invalid lead byte, truncated
// sequence, overlong encoding, UTF-16 surrogate, or the noncharacters
// U+FFFE/U+FFFF) yields ReplacementChar, and the reported width still covers
// the bytes that were consumed so a caller always makes forward progress.
func DecodeRune(data []byte) (r rune, size int) {
	if len(data) == 0 {
		return 0, 0
	}

	c := uint32(data[0])
	n := int(leadWidth[data[0]])
	switch n {
	case 0:
		return rune(c), 1
	case 4:
		return ReplacementChar, 1
	}

	size = 1
	for ; size <= n; size++ {
		if size >= len(data) {
			// Truncated sequence.
			return ReplacementChar, size
		}
		c = (c << 6) + uint32(data[size])
	}
	c -= decodeBias[n]

	if c&overlongMask[n] == 0 || c&0xFFFFF800 == 0xD800 || c&0xFFFFFFFE == 0xFFFE {
		return ReplacementChar, size
	}
	return rune(c), size
}

// SkipRune returns the byte width of the codepoint starting at data[0]
// without decoding it. The width is clamped to len(data).
func SkipRune(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	w := int(leadWidth[data[0]]) + 1
	if w > 4 {
		// Not a lead byte; consume the single byte and resynchronize.
		w = 1
	}
	if w > len(data) {
		w = len(data)
	}
	return w
}

// CharCount returns the number of codepoints in data, stopping at the first
// NUL byte. If nByte is not negative only the first nByte bytes are
// considered.
func CharCount(data []byte, nByte int) int {
	limit := len(data)
	if nByte >= 0 && nByte < limit {
		limit = nByte
	}

	count := 0
	for i := 0; i < limit && data[i] != 0; {
		i += SkipRune(data[i:])
		count++
	}
	return count
}

// AppendRune appends the UTF-8 encoding of r to buf and returns the extended
// buffer.
func AppendRune(buf []byte, r rune) []byte {
	switch {
	case r < 0x80:
		return append(buf, byte(r))
	case r < 0x800:
		return append(buf,
			0xC0|byte(r>>6),
			0x80|byte(r&0x3F))
	case r < 0x10000:
		return append(buf,
			0xE0|byte(r>>12),
			0x80|byte((r>>6)&0x3F),
			0x80|byte(r&0x3F))
	default:
		return append(buf,
			0xF0|byte(r>>18),
			0x80|byte((r>>12)&0x3F),
			0x80|byte((r>>6)&0x3F),
			0x80|byte(r&0x3F))
	}
}

// RuneLen returns the number of bytes needed to encode r in UTF-8.
func RuneLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}
