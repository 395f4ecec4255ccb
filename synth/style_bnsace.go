package synth

import "strconv"

// bnsAceStyle implements Braille 'n Speak and Accent: neither dialect
// supports labeled index marks, so this style embeds a bare control-F
// (0x06) at each mark position and the caller counts control-F bytes
// echoed back in the synthesizer's output stream to infer how many marks
// have been reached — the original's "bnsf" counter.
type bnsAceStyle struct{ ace bool }

func (b bnsAceStyle) Kind() StyleKind {
	if b.ace {
		return ACE
	}
	return BNS
}

func (bnsAceStyle) Terminate() []byte { return nil }

func (bnsAceStyle) Interrupt() byte { return 24 }

func (bnsAceStyle) EncodeIndexMark(label int) []byte { return []byte{0x06} }

// ParseIndexMark recognizes a bare control-F. Because this dialect
// carries no label, the returned label is always the caller-maintained
// running count; IndexTracker supplies it via its own counter rather
// than trusting this return value directly.
func (bnsAceStyle) ParseIndexMark(buf []byte) (label, consumed int, ok bool) {
	if len(buf) == 0 {
		return 0, 0, false
	}
	if buf[0] == 0x06 {
		return 0, 1, true
	}
	return 0, 1, false
}

func (b bnsAceStyle) Volume(level int) []byte { return []byte("\x05" + strconv.Itoa(level) + "v") }
func (b bnsAceStyle) Rate(level int) []byte   { return []byte("\x05" + strconv.Itoa(level) + "s") }
func (b bnsAceStyle) Pitch(level int) []byte  { return []byte("\x05" + strconv.Itoa(level) + "p") }
func (b bnsAceStyle) Voice(n int) []byte      { return []byte("\x05" + strconv.Itoa(n) + "o") }
