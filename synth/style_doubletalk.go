package synth

import (
	"strconv"
)

// doubletalkStyle implements the DoubleTalk LT / DoubleTalk PC dialect.
// An index mark is requested inline as "\x01<decimal>i" (acstalk.c's
// sprintf(ibuf, "\1%di", mark)); the unit does not echo that command back
// verbatim. Instead, once speech reaches the marked position it emits a
// single raw byte equal to the mark number (1-99), a dedicated one-byte
// acknowledgement channel distinct from spoken-text output (ss_events'
// SS_STYLE_DOUBLE case).
type doubletalkStyle struct{}

func (doubletalkStyle) Kind() StyleKind { return Doubletalk }

func (doubletalkStyle) Terminate() []byte { return nil }

func (doubletalkStyle) Interrupt() byte { return 24 }

func (doubletalkStyle) EncodeIndexMark(label int) []byte {
	b := append([]byte{0x01}, []byte(strconv.Itoa(label))...)
	return append(b, 'i')
}

func (doubletalkStyle) ParseIndexMark(buf []byte) (label, consumed int, ok bool) {
	if len(buf) == 0 {
		return 0, 0, false
	}
	c := int(buf[0])
	if c >= 1 && c <= 99 {
		return c, 1, true
	}
	return 0, 1, false
}

func (doubletalkStyle) Volume(level int) []byte { return []byte("\x05" + scaleChar(level) + "V") }
func (doubletalkStyle) Rate(level int) []byte   { return []byte("\x05" + scaleChar(level) + "E") }
func (doubletalkStyle) Pitch(level int) []byte  { return []byte("\x05" + scaleChar(level) + "P") }
func (doubletalkStyle) Voice(n int) []byte      { return []byte("\x05" + strconv.Itoa(n) + "D") }

// scaleChar clamps level to [0,9] and returns it as the single digit
// parameter character DoubleTalk's command set expects.
func scaleChar(level int) string {
	if level < 0 {
		level = 0
	}
	if level > 9 {
		level = 9
	}
	return strconv.Itoa(level)
}
