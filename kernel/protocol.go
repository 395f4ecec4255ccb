// Package kernel plays the driver side of the intercept character device.
//
// A real implementation of this module would be a Linux kernel module
// talking to user space through a misc device node; Go cannot be the
// kernel side of that relationship. This package instead implements the
// driver's state machine in an in-process Device type. Its KeyDown,
// KeyUp, ConsoleWrite, SwitchConsole and Printk methods stand in for the
// keyboard notifier, tty line discipline, console-switch notifier and
// printk hook of the original; its Read and Write methods exchange
// decoded Records and control commands rather than bytes. The encode and
// decode functions in this file give each record's byte layout in the
// kernel module's wire format.
package kernel

import "encoding/binary"

// Command identifies the tag of an event record read from the device, or
// a control byte written to it. Values match the original acs_command
// enumeration so the wire format is stable across reimplementations.
type Command byte

const (
	CmdNull Command = iota
	CmdClearKeys
	CmdSetKey
	CmdUnsetKey
	CmdPushTTY
	CmdSounds
	CmdSoundsTTY
	CmdSoundsKmsg
	CmdClick
	CmdCR
	CmdNotes
	CmdRefresh
	CmdBypass
	CmdMonitor
	CmdDivert
	CmdKeystroke
	CmdTTYNewChars
	CmdTTYMoreChars
	CmdFGC
	CmdPrintk
)

const (
	// NumKeys is the size of the capture table: scan codes [0,128).
	NumKeys = 128

	// TTYLogSize is the default per-console ring buffer capacity, in
	// code points.
	TTYLogSize = 50000
)

// Shift-state bits, as packed into a KEYSTROKE record's shift_mask and
// used to index CaptureTable.
const (
	ShiftShift = 1 << iota
	ShiftRAlt
	ShiftCtrl
	ShiftLAlt
)

const (
	ShiftAlt   = ShiftLAlt | ShiftRAlt
	ShiftPlain = 0x10
	ShiftAll   = 0x20
)

// Record is a decoded event-queue entry. Kind determines which of the
// remaining fields are meaningful.
type Record struct {
	Kind    Command
	Minor   int    // FGC, TTY_NEWCHARS
	Key     int    // KEYSTROKE
	Shift   int    // KEYSTROKE
	LEDs    int    // KEYSTROKE
	Echo    bool   // TTY_MORECHARS
	Rune    rune   // TTY_MORECHARS
	Chars   []rune // TTY_NEWCHARS
}

// recordSize returns the wire size in bytes of r, rounded as the original
// protocol rounds: every record is a multiple of 4 bytes, and
// TTY_NEWCHARS carries length*4 additional bytes of payload.
func recordSize(r Record) int {
	switch r.Kind {
	case CmdFGC, CmdRefresh:
		return 4
	case CmdKeystroke:
		return 4
	case CmdTTYMoreChars:
		return 8
	case CmdTTYNewChars:
		return 4 + 4*len(r.Chars)
	default:
		return 4
	}
}

// encode appends the wire encoding of r to buf and returns the result.
func encode(buf []byte, r Record) []byte {
	var hdr [4]byte
	switch r.Kind {
	case CmdFGC:
		hdr[0] = byte(CmdFGC)
		hdr[1] = byte(r.Minor)
		buf = append(buf, hdr[:]...)
	case CmdRefresh:
		hdr[0] = byte(CmdRefresh)
		buf = append(buf, hdr[:]...)
	case CmdKeystroke:
		hdr[0] = byte(CmdKeystroke)
		hdr[1] = byte(r.Key)
		hdr[2] = byte(r.Shift)
		hdr[3] = byte(r.LEDs)
		buf = append(buf, hdr[:]...)
	case CmdTTYMoreChars:
		hdr[0] = byte(CmdTTYMoreChars)
		if r.Echo {
			hdr[1] = 1
		}
		buf = append(buf, hdr[:]...)
		var rb [4]byte
		binary.LittleEndian.PutUint32(rb[:], uint32(r.Rune))
		buf = append(buf, rb[:]...)
	case CmdTTYNewChars:
		hdr[0] = byte(CmdTTYNewChars)
		hdr[1] = byte(r.Minor)
		binary.LittleEndian.PutUint16(hdr[2:4], uint16(len(r.Chars)))
		buf = append(buf, hdr[:]...)
		for _, c := range r.Chars {
			var rb [4]byte
			binary.LittleEndian.PutUint32(rb[:], uint32(c))
			buf = append(buf, rb[:]...)
		}
	default:
		hdr[0] = byte(r.Kind)
		buf = append(buf, hdr[:]...)
	}
	return buf
}

// decode reads one record from the front of buf, returning the record and
// the number of bytes consumed. ok is false if buf does not yet hold a
// complete record.
func decode(buf []byte) (r Record, n int, ok bool) {
	if len(buf) < 4 {
		return Record{}, 0, false
	}
	kind := Command(buf[0])
	switch kind {
	case CmdFGC:
		return Record{Kind: kind, Minor: int(buf[1])}, 4, true
	case CmdRefresh:
		return Record{Kind: kind}, 4, true
	case CmdKeystroke:
		return Record{Kind: kind, Key: int(buf[1]), Shift: int(buf[2]), LEDs: int(buf[3])}, 4, true
	case CmdTTYMoreChars:
		if len(buf) < 8 {
			return Record{}, 0, false
		}
		return Record{
			Kind: kind,
			Echo: buf[1] != 0,
			Rune: rune(binary.LittleEndian.Uint32(buf[4:8])),
		}, 8, true
	case CmdTTYNewChars:
		length := int(binary.LittleEndian.Uint16(buf[2:4]))
		need := 4 + 4*length
		if len(buf) < need {
			return Record{}, 0, false
		}
		chars := make([]rune, length)
		for i := 0; i < length; i++ {
			chars[i] = rune(binary.LittleEndian.Uint32(buf[4+4*i : 8+4*i]))
		}
		return Record{Kind: kind, Minor: int(buf[1]), Chars: chars}, need, true
	default:
		return Record{Kind: kind}, 4, true
	}
}
