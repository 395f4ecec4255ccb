package kernel

// effectiveRune maps a scan code and shift mask to the ASCII byte the
// console driver's line discipline is expected to echo back for an
// uncaptured key, mirroring the QWERTY scan-code numbering config's
// chord grammar uses (kernel cannot import config: config already
// imports kernel). Only the plain/shifted letter, digit, and punctuation
// rows are covered; unmapped keys (function keys, arrows, ...) return
// ok=false and generate no echo expectation, matching the fact that they
// do not normally produce printable tty output.
func effectiveRune(key, shift int) (rune, bool) {
	const lower = "qwertyuiop[]asdfghjkl;'`\\zxcvbnm,./"
	const upper = "QWERTYUIOP{}ASDFGHJKL:\"~|ZXCVBNM<>?"
	codes := []int{16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27,
		30, 31, 32, 33, 34, 35, 36, 37, 38, 39, 40, 41, 43,
		44, 45, 46, 47, 48, 49, 50, 51, 52, 53}

	shifted := shift&(ShiftShift|ShiftCtrl) != 0

	for i, code := range codes {
		if code != key {
			continue
		}
		if shift&ShiftCtrl != 0 {
			r := rune(lower[i])
			if r >= 'a' && r <= 'z' {
				return r - 'a' + 1, true
			}
			return 0, false
		}
		if shifted {
			return rune(upper[i]), true
		}
		return rune(lower[i]), true
	}

	const digits = "1234567890"
	const digitsShifted = "!@#$%^&*()"
	digitCodes := []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	for i, code := range digitCodes {
		if code != key {
			continue
		}
		if shift&ShiftShift != 0 {
			return rune(digitsShifted[i]), true
		}
		return rune(digits[i]), true
	}

	switch key {
	case 57:
		return ' ', true
	case 28:
		return '\r', true
	case 15:
		return '\t', true
	case 1:
		return 0x1b, true
	case 14:
		return 0x7f, true
	}
	return 0, false
}
