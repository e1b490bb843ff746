package utf

import "testing"

func TestDecodeRuneValid(t *testing.T) {
	tests := []struct {
		input []byte
		r     rune
		size  int
	}{
		{[]byte("A"), 'A', 1},
		{[]byte{0x7F}, 0x7F, 1},
		{[]byte("é"), 'é', 2},
		{[]byte("世"), '世', 3},
		{[]byte("𝄞"), '𝄞', 4},
		{[]byte("世界"), '世', 3}, // only the first codepoint
	}

	for _, test := range tests {
		r, size := DecodeRune(test.input)
		if r != test.r || size != test.size {
			t.Errorf("DecodeRune(% x) = %U, %d, want %U, %d",
				test.input, r, size, test.r, test.size)
		}
	}
}

func TestDecodeRuneInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		size  int
	}{
		{"bare continuation byte", []byte{0x80}, 1},
		{"invalid lead 0xFF", []byte{0xFF, 0x80}, 1},
		{"overlong 2-byte NUL", []byte{0xC0, 0x80}, 2},
		{"overlong 3-byte slash", []byte{0xE0, 0x81, 0xAF}, 3},
		{"surrogate U+D800", []byte{0xED, 0xA0, 0x80}, 3},
		{"noncharacter U+FFFE", []byte{0xEF, 0xBF, 0xBE}, 3},
		{"noncharacter U+FFFF", []byte{0xEF, 0xBF, 0xBF}, 3},
		{"truncated 3-byte", []byte{0xE4, 0xB8}, 2},
		{"truncated 2-byte", []byte{0xC3}, 1},
	}

	for _, test := range tests {
		r, size := DecodeRune(test.input)
		if r != ReplacementChar {
			t.Errorf("%s: DecodeRune(% x) = %U, want U+FFFD", test.name, test.input, r)
		}
		if size != test.size {
			t.Errorf("%s: consumed %d bytes, want %d", test.name, size, test.size)
		}
		if size < 1 {
			t.Errorf("%s: no forward progress", test.name)
		}
	}
}

func TestDecodeRuneEmpty(t *testing.T) {
	r, size := DecodeRune(nil)
	if r != 0 || size != 0 {
		t.Errorf("DecodeRune(nil) = %U, %d, want 0, 0", r, size)
	}
}

func TestSkipRune(t *testing.T) {
	tests := []struct {
		input []byte
		width int
	}{
		{[]byte("A"), 1},
		{[]byte("é"), 2},
		{[]byte("世"), 3},
		{[]byte("𝄞"), 4},
		{[]byte{0x80, 0x41}, 1},       // continuation byte resyncs to the next byte
		{[]byte{0xE4, 0xB8}, 2},       // truncated sequence clamps to the input
		{nil, 0},
	}

	for _, test := range tests {
		if got := SkipRune(test.input); got != test.width {
			t.Errorf("SkipRune(% x) = %d, want %d", test.input, got, test.width)
		}
	}
}

func TestCharCount(t *testing.T) {
	tests := []struct {
		input []byte
		nByte int
		count int
	}{
		{[]byte("hello"), -1, 5},
		{[]byte("世界"), -1, 2},
		{[]byte("a世b"), -1, 3},
		{[]byte(""), -1, 0},
		{[]byte("hello"), 3, 3},
		{[]byte("hel\x00lo"), -1, 3}, // stops at NUL
		{[]byte("世界"), 3, 1},       // byte limit cuts mid-string
	}

	for _, test := range tests {
		if got := CharCount(test.input, test.nByte); got != test.count {
			t.Errorf("CharCount(% x, %d) = %d, want %d",
				test.input, test.nByte, got, test.count)
		}
	}
}

func TestAppendRuneRoundTrip(t *testing.T) {
	for _, r := range []rune{'A', 'é', '世', '𝄞', 0x7F, 0x80, 0x7FF, 0x800, 0xFFFD, 0x10000} {
		buf := AppendRune(nil, r)
		if len(buf) != RuneLen(r) {
			t.Errorf("AppendRune(%U) wrote %d bytes, RuneLen says %d", r, len(buf), RuneLen(r))
		}
		got, size := DecodeRune(buf)
		if got != r || size != len(buf) {
			t.Errorf("round trip of %U = %U, %d", r, got, size)
		}
	}
}
