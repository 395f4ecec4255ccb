// Package synth drives a speech synthesizer over a serial line or a
// forked child-process pipe: per-style byte framing of text, rate/pitch/
// volume/voice parameters, muting, and index-mark tracking so the reading
// cursor can follow along as the synthesizer actually speaks.
package synth

import "fmt"

// StyleKind names one of the synthesizer command dialects this package
// knows how to speak, matching the SS_STYLE enumeration.
type StyleKind int

const (
	Generic StyleKind = iota
	Doubletalk
	DECExpress
	DECPC
	BNS
	ACE
	Espeakup
)

func (k StyleKind) String() string {
	switch k {
	case Generic:
		return "generic"
	case Doubletalk:
		return "doubletalk"
	case DECExpress:
		return "dec-express"
	case DECPC:
		return "dec-pc"
	case BNS:
		return "bns"
	case ACE:
		return "ace"
	case Espeakup:
		return "espeakup"
	default:
		return fmt.Sprintf("style(%d)", int(k))
	}
}

// Style encapsulates everything about a synthesizer dialect that the
// transport-neutral parts of this package need: how to terminate an
// utterance, how to interrupt one in progress, how to encode an index
// mark request, how to recognize one in the synthesizer's output stream,
// and how to encode volume/rate/pitch/voice changes. Every method is
// grounded directly on the corresponding branch of ss_say_string_imarks /
// ss_setvolume / ss_setspeed / ss_setpitch / ss_setvoice in
// original_source/acstalk.c.
type Style interface {
	Kind() StyleKind

	// Terminate returns the bytes that end an utterance so the
	// synthesizer begins speaking it: ^K followed by CR for the DECtalk
	// styles, a newline for espeakup, and nothing for Doubletalk, BNS,
	// ACE and the generic style.
	Terminate() []byte

	// Interrupt returns the single byte that stops current speech
	// immediately (24 for Doubletalk/BNS/ACE-family styles, 3 — ASCII
	// ETX — for the rest).
	Interrupt() byte

	// EncodeIndexMark returns the bytes to embed in an outgoing
	// utterance at the position index mark label n should be reported
	// for.
	EncodeIndexMark(label int) []byte

	// ParseIndexMark attempts to recognize an index-mark response at the
	// front of buf. If found, it returns the mark label, the number of
	// bytes consumed, and ok=true. If buf is a prefix of a response that
	// might still complete, it returns consumed=0, ok=false (caller
	// should wait for more bytes); if buf definitely does not start an
	// index response, ParseIndexMark returns ok=false with consumed
	// indicating how many leading bytes were definitively not part of
	// one (usually 1, letting the caller re-try one byte later).
	ParseIndexMark(buf []byte) (label, consumed int, ok bool)

	// Volume, Rate, Pitch encode a parameter on a 0-9 scale to the
	// style's wire representation.
	Volume(level int) []byte
	Rate(level int) []byte
	Pitch(level int) []byte
	Voice(n int) []byte
}

// ByKind returns the Style implementation for k.
func ByKind(k StyleKind) Style {
	switch k {
	case Doubletalk:
		return doubletalkStyle{}
	case DECExpress:
		return decStyle{express: true}
	case DECPC:
		return decStyle{express: false}
	case BNS:
		return bnsAceStyle{ace: false}
	case ACE:
		return bnsAceStyle{ace: true}
	case Espeakup:
		return espeakupStyle{}
	default:
		return genericStyle{}
	}
}
