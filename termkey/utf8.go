package termkey

import "unicode/utf8"

// utf8SeqLen returns the sequence length announced by a lead byte, or 0 when b
// cannot start a sequence.
func utf8SeqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b >= 0xC0 && b <= 0xDF:
		return 2
	case b >= 0xE0 && b <= 0xEF:
		return 3
	case b >= 0xF0 && b <= 0xF7:
		return 4
	}
	return 0
}

// decodeUTF8 assembles one scalar value from the front of b. When the sequence
// is incomplete it reports again, consuming nothing, unless force is set.
// Malformed input yields utf8.RuneError: a bad continuation byte ends the
// sequence before it, so that byte is decoded on its own next time.
func decodeUTF8(b []byte, force bool) (r rune, n int, again bool) {
	want := utf8SeqLen(b[0])
	if want == 0 {
		return utf8.RuneError, 1, false
	}
	if want == 1 {
		return rune(b[0]), 1, false
	}
	for i := 1; i < want; i++ {
		if i >= len(b) {
			if force {
				return utf8.RuneError, len(b), false
			}
			return 0, 0, true
		}
		if b[i]&0xC0 != 0x80 {
			return utf8.RuneError, i, false
		}
	}
	r, size := utf8.DecodeRune(b[:want])
	if r == utf8.RuneError && size == 1 {
		// overlong, surrogate or beyond U+10FFFF
		return utf8.RuneError, want, false
	}
	return r, want, false
}
