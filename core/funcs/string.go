package funcs

import (
	"bytes"
	"fmt"
	"strings"

	xerrors "github.com/mlourenco/extrafn/core/errors"
	"github.com/mlourenco/extrafn/core/utf"
)

// RegisterStringFunctions registers the codepoint-aware string functions and
// the Soundex pair.
func RegisterStringFunctions(r *Registry) {
	r.Register(NewScalarFunc("replicate", 2, replicateFunc))
	r.Register(NewScalarFunc("charindex", -1, charindexFunc))
	r.Register(NewScalarFunc("leftstr", 2, leftstrFunc))
	r.Register(NewScalarFunc("rightstr", 2, rightstrFunc))
	r.Register(NewScalarFunc("reverse", 1, reverseFunc))
	r.Register(NewScalarFunc("proper", 1, properFunc))
	r.Register(NewScalarFunc("padl", 2, padlFunc))
	r.Register(NewScalarFunc("padr", 2, padrFunc))
	r.Register(NewScalarFunc("padc", 2, padcFunc))
	r.Register(NewScalarFunc("strfilter", 2, strfilterFunc))

	r.Register(NewScalarFunc("soundex", 1, soundexFunc))
	r.Register(NewScalarFunc("difference", 2, differenceFunc))
}

// replicateFunc repeats a string n times. A negative count is a domain
// error; zero yields the empty string.
func replicateFunc(args []Value) (Value, error) {
	if args[0].IsNull() || args[1].IsNull() {
		return NewNullValue(), nil
	}
	n := args[1].AsInt64()
	if n < 0 {
		return nil, xerrors.NewDomain("replicate", "negative count")
	}
	if n == 0 {
		return NewTextValue(""), nil
	}
	return NewTextValue(strings.Repeat(args[0].AsString(), int(n))), nil
}

// charindexFunc returns the 1-based codepoint position of the first
// occurrence of needle in haystack at or after the optional start position,
// or 0 when needle does not occur. An empty needle never matches.
func charindexFunc(args []Value) (Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, fmt.Errorf("charindex() takes 2 or 3 arguments (%d given)", len(args))
	}
	if args[0].IsNull() || args[1].IsNull() {
		return NewNullValue(), nil
	}

	needle := args[0].AsBlob()
	hay := args[1].AsBlob()

	// The start position is 1-based; anything below 1 (including a NULL
	// third argument, which coerces to 0) clamps to the beginning.
	skip := 0
	if len(args) == 3 && !args[2].IsNull() {
		skip = int(args[2].AsInt64()) - 1
		if skip < 0 {
			skip = 0
		}
	}

	if len(needle) == 0 {
		return NewIntValue(0), nil
	}

	off, pos := 0, 0
	for ; pos < skip && off < len(hay); pos++ {
		off += utf.SkipRune(hay[off:])
	}
	for off < len(hay) {
		if bytes.HasPrefix(hay[off:], needle) {
			return NewIntValue(int64(pos + 1)), nil
		}
		off += utf.SkipRune(hay[off:])
		pos++
	}
	return NewIntValue(0), nil
}

// leftstrFunc returns the first n codepoints of a string. n at or below zero
// yields the empty string; n beyond the length yields the whole string.
func leftstrFunc(args []Value) (Value, error) {
	if args[0].IsNull() || args[1].IsNull() {
		return NewNullValue(), nil
	}
	s := args[0].AsBlob()
	n := args[1].AsInt64()

	off := 0
	for i := int64(0); i < n && off < len(s); i++ {
		off += utf.SkipRune(s[off:])
	}
	return NewTextValue(string(s[:off])), nil
}

// rightstrFunc returns the last n codepoints of a string with the same
// clamping as leftstrFunc.
func rightstrFunc(args []Value) (Value, error) {
	if args[0].IsNull() || args[1].IsNull() {
		return NewNullValue(), nil
	}
	s := args[0].AsBlob()
	n := args[1].AsInt64()
	if n <= 0 {
		return NewTextValue(""), nil
	}

	cc := int64(utf.CharCount(s, -1))
	if n >= cc {
		return NewTextValue(string(s)), nil
	}
	off := 0
	for i := int64(0); i < cc-n; i++ {
		off += utf.SkipRune(s[off:])
	}
	return NewTextValue(string(s[off:])), nil
}

// reverseFunc reverses a string codepoint by codepoint. Each codepoint's
// byte span is copied intact, so multi-byte characters survive the reversal.
func reverseFunc(args []Value) (Value, error) {
	if args[0].IsNull() {
		return NewNullValue(), nil
	}
	s := args[0].AsBlob()

	out := make([]byte, len(s))
	w := len(s)
	for off := 0; off < len(s); {
		n := utf.SkipRune(s[off:])
		w -= n
		copy(out[w:], s[off:off+n])
		off += n
	}
	return NewTextValue(string(out)), nil
}

// properFunc title-cases a string byte-wise: the first letter and every
// letter following a space or tab is uppercased, everything else lowercased.
// Only ASCII letters change case.
func properFunc(args []Value) (Value, error) {
	if args[0].IsNull() {
		return NewNullValue(), nil
	}
	s := []byte(args[0].AsString())

	out := make([]byte, len(s))
	atStart := true
	for i, c := range s {
		if c == ' ' || c == '\t' {
			out[i] = c
			atStart = true
			continue
		}
		switch {
		case atStart && c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		case !atStart && c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		}
		out[i] = c
		atStart = false
	}
	return NewTextValue(string(out)), nil
}

// padWidth validates the shared pad-function contract and reports how many
// spaces are missing. A width below zero is a domain error; a string already
// at or beyond the width needs zero spaces.
func padWidth(name string, s []byte, n int64) (int64, error) {
	if n < 0 {
		return 0, xerrors.NewDomain(name, "negative width")
	}
	cc := int64(utf.CharCount(s, -1))
	if cc >= n {
		return 0, nil
	}
	return n - cc, nil
}

func padlFunc(args []Value) (Value, error) {
	if args[0].IsNull() || args[1].IsNull() {
		return NewNullValue(), nil
	}
	s := args[0].AsBlob()
	pad, err := padWidth("padl", s, args[1].AsInt64())
	if err != nil {
		return nil, err
	}
	return NewTextValue(strings.Repeat(" ", int(pad)) + string(s)), nil
}

func padrFunc(args []Value) (Value, error) {
	if args[0].IsNull() || args[1].IsNull() {
		return NewNullValue(), nil
	}
	s := args[0].AsBlob()
	pad, err := padWidth("padr", s, args[1].AsInt64())
	if err != nil {
		return nil, err
	}
	return NewTextValue(string(s) + strings.Repeat(" ", int(pad))), nil
}

// padcFunc centers the string: the left side gets half the padding rounded
// down, the right side the remainder.
func padcFunc(args []Value) (Value, error) {
	if args[0].IsNull() || args[1].IsNull() {
		return NewNullValue(), nil
	}
	s := args[0].AsBlob()
	pad, err := padWidth("padc", s, args[1].AsInt64())
	if err != nil {
		return nil, err
	}
	left := pad / 2
	return NewTextValue(strings.Repeat(" ", int(left)) + string(s) + strings.Repeat(" ", int(pad-left))), nil
}

// strfilterFunc keeps only the codepoints of its first argument that also
// occur in its second. Codepoints are compared as raw byte spans, so
// malformed sequences filter byte-for-byte rather than collapsing into the
// replacement character.
func strfilterFunc(args []Value) (Value, error) {
	if args[0].IsNull() || args[1].IsNull() {
		return NewNullValue(), nil
	}
	src := args[0].AsBlob()
	keep := args[1].AsBlob()

	out := make([]byte, 0, len(src))
	for off := 0; off < len(src); {
		n := utf.SkipRune(src[off:])
		span := src[off : off+n]
		for koff := 0; koff < len(keep); {
			kn := utf.SkipRune(keep[koff:])
			if bytes.Equal(span, keep[koff:koff+kn]) {
				out = append(out, span...)
				break
			}
			koff += kn
		}
		off += n
	}
	return NewTextValue(string(out)), nil
}
