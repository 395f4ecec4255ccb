// Package config implements key-chord binding tables, the punctuation and
// word-replacement dictionaries, and the line-oriented configuration
// grammar that maps them onto modified-key-codes.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eklhad/acsgo/kernel"
)

// MKRange is the size of the modified-key-code space: one shift-state
// nibble (16 values) times NumKeys.
const MKRange = kernel.NumKeys * 16

// ModifiedKeyCode packs a key and shift mask into the single integer
// space macro/speech tables are indexed by: shift*NumKeys+key.
func ModifiedKeyCode(key, shift int) (int, error) {
	if key < 0 || key >= kernel.NumKeys {
		return 0, fmt.Errorf("config: key %d out of range", key)
	}
	if shift < 0 || shift >= 16 {
		return 0, fmt.Errorf("config: shift mask %#x out of range", shift)
	}
	return shift*kernel.NumKeys + key, nil
}

// namedKeys maps the keyword spellings accepted after shift prefixes to
// scan codes, grounded on acs_ascii2mkcode's keyword table. Only the
// subset meaningful to a chord grammar (not a full scan-code map) is
// listed; callers needing the rest can extend this table.
var namedKeys = map[string]int{
	"tab": 15, "enter": 28, "space": 57, "esc": 1, "escape": 1,
	"backspace": 14, "capslock": 58, "up": 103, "down": 108,
	"left": 105, "right": 106, "home": 102, "end": 107,
	"pageup": 104, "pagedown": 109, "insert": 110, "delete": 111,
}

// wordmatchCI performs the case-insensitive, word-boundary-aware match
// acs_ascii2mkcode uses to recognize a keyword at the start of s,
// returning the remainder of s after the match, or ok=false.
func wordmatchCI(s, word string) (rest string, ok bool) {
	if len(s) < len(word) {
		return s, false
	}
	if !strings.EqualFold(s[:len(word)], word) {
		return s, false
	}
	if len(s) > len(word) {
		next := s[len(word)]
		if (next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z') || (next >= '0' && next <= '9') {
			return s, false
		}
	}
	return s[len(word):], true
}

// ParseChord parses one key-spelling token from s, as
// acs_ascii2mkcode does: an optional run of shift prefixes (+ shift,
// ^ ctrl, @ either-alt, l@ left-alt, r@ right-alt), followed by an F-key
// (F1-F12), a numpad digit (#0-#9 or #. etc), a named key, or a bare
// letter/digit. It returns the parsed key, the accumulated shift mask,
// any text left in s after the token, and an error if s does not start
// with a recognizable spelling.
func ParseChord(s string) (key, shift int, rest string, err error) {
	orig := s
	for len(s) > 0 {
		switch {
		case s[0] == '+':
			shift |= kernel.ShiftShift
			s = s[1:]
		case s[0] == '^':
			shift |= kernel.ShiftCtrl
			s = s[1:]
		case strings.HasPrefix(s, "l@"):
			shift |= kernel.ShiftLAlt
			s = s[2:]
		case strings.HasPrefix(s, "r@"):
			shift |= kernel.ShiftRAlt
			s = s[2:]
		case s[0] == '@':
			shift |= kernel.ShiftAlt
			s = s[1:]
		default:
			goto haveprefixes
		}
	}
haveprefixes:
	if s == "" {
		return 0, 0, orig, fmt.Errorf("config: empty key spelling")
	}

	if (s[0] == 'f' || s[0] == 'F') && len(s) > 1 && s[1] >= '0' && s[1] <= '9' {
		i := 1
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		n, _ := strconv.Atoi(s[1:i])
		if n < 1 || n > 12 {
			return 0, 0, orig, fmt.Errorf("config: F-key out of range: F%d", n)
		}
		return fKeyScanCode(n), shift, s[i:], nil
	}

	if s[0] == '#' && len(s) > 1 {
		n, ok := numpadScanCode(s[1])
		if !ok {
			return 0, 0, orig, fmt.Errorf("config: unknown numpad key %q", s[:2])
		}
		return n, shift, s[2:], nil
	}

	for word, code := range namedKeys {
		if r, ok := wordmatchCI(s, word); ok {
			return code, shift, r, nil
		}
	}

	r := rune(s[0])
	if code, ok := letterScanCode(r); ok {
		return code, shift, s[1:], nil
	}
	return 0, 0, orig, fmt.Errorf("config: unrecognized key spelling %q", s)
}

// fKeyScanCode returns the Linux input-event scan code for F1-F12.
func fKeyScanCode(n int) int {
	// scan codes 59..68 are F1-F10; F11/F12 are 87/88, matching the
	// standard AT keyboard set the original targets.
	switch {
	case n <= 10:
		return 58 + n
	case n == 11:
		return 87
	default:
		return 88
	}
}

func numpadScanCode(c byte) (int, bool) {
	table := map[byte]int{
		'0': 82, '1': 79, '2': 80, '3': 81, '4': 75,
		'5': 76, '6': 77, '7': 71, '8': 72, '9': 73,
		'.': 83, '+': 78, '-': 74, '*': 55, '/': 98,
	}
	code, ok := table[c]
	return code, ok
}

// letterScanCode maps a bare ASCII letter or digit to its scan code, the
// fallback branch of acs_ascii2mkcode.
func letterScanCode(r rune) (int, bool) {
	letters := "qwertyuiop[]asdfghjkl;'`\\zxcvbnm,./"
	codes := []int{16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27,
		30, 31, 32, 33, 34, 35, 36, 37, 38, 39, 40, 41, 43,
		44, 45, 46, 47, 48, 49, 50, 51, 52, 53}
	lower := r
	if lower >= 'A' && lower <= 'Z' {
		lower += 'a' - 'A'
	}
	for i, l := range letters {
		if l == lower {
			return codes[i], true
		}
	}
	digits := "1234567890"
	digitCodes := []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	for i, d := range digits {
		if d == lower {
			return digitCodes[i], true
		}
	}
	return 0, false
}
