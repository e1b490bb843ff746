package funcs

// soundexCodes maps the low 7 bits of a byte to its Soundex digit. Vowels,
// H, W, Y, and everything outside the alphabet map to zero.
var soundexCodes = [128]byte{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 1, 2, 3, 0, 1, 2, 0, 0, 2, 2, 4, 5, 5, 0,
	1, 2, 6, 2, 3, 0, 1, 0, 2, 0, 2, 0, 0, 0, 0, 0,
	0, 0, 1, 2, 3, 0, 1, 2, 0, 0, 2, 2, 4, 5, 5, 0,
	1, 2, 6, 2, 3, 0, 1, 0, 2, 0, 2, 0, 0, 0, 0, 0,
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// soundexCode computes the 4-character Soundex code of s: the first letter
// uppercased followed by up to three digits, zero-padded. Input with no
// letter at all encodes as "?000".
func soundexCode(s []byte) string {
	i := 0
	for ; i < len(s) && !isAlpha(s[i]); i++ {
	}
	if i == len(s) {
		return "?000"
	}

	var out [4]byte
	out[0] = s[i] &^ 0x20
	j := 1
	for i++; j < 4 && i < len(s); i++ {
		if code := soundexCodes[s[i]&0x7F]; code != 0 {
			out[j] = code + '0'
			j++
		}
	}
	for ; j < 4; j++ {
		out[j] = '0'
	}
	return string(out[:])
}

// soundexFunc is the soundex(X) scalar.
func soundexFunc(args []Value) (Value, error) {
	if args[0].IsNull() {
		return NewNullValue(), nil
	}
	return NewTextValue(soundexCode(args[0].AsBlob())), nil
}

// differenceFunc compares the Soundex codes of its two arguments and returns
// how many of the four positions agree, from 0 (nothing) to 4 (identical
// codes).
func differenceFunc(args []Value) (Value, error) {
	if args[0].IsNull() || args[1].IsNull() {
		return NewNullValue(), nil
	}
	a := soundexCode(args[0].AsBlob())
	b := soundexCode(args[1].AsBlob())

	match := int64(0)
	for i := 0; i < 4; i++ {
		if a[i] == b[i] {
			match++
		}
	}
	return NewIntValue(match), nil
}
