package bridge

import (
	"context"
	"fmt"

	"github.com/eklhad/acsgo/internal/alog"
	"github.com/eklhad/acsgo/kernel"
)

// Handlers is the capability set an application shell supplies to a
// Bridge (§9 design note: a struct of function fields stands in for the
// original's function pointers, and is supplied once at construction
// rather than mutated through setter globals).
type Handlers struct {
	Key           func(mkc int)
	FGC           func(minor int)
	MoreChars     func(minor int, r rune, echoed bool)
	KeystrokeEcho func(mkc int) bool // return true to also speak the key name
	IndexMark     func(label int)
	TalkingStatus func(talking bool)
	FifoLine      func(line string)
}

// Bridge is the explicit context object replacing the original's mutable
// globals: it owns the per-console reading buffers, the one screen
// buffer, the device handle, and the handler set.
type Bridge struct {
	dev      *kernel.Device
	buffers  map[int]*ReadingBuffer
	screen   *ScreenBuf
	handlers Handlers
	log      alog.Logger

	fgc       int
	screenOn  bool
	inCall    bool
	bufferCap int
}

// New constructs a Bridge bound to dev with the given handlers. bufferCap
// bounds each per-console reading buffer; 0 selects a sensible default.
func New(dev *kernel.Device, h Handlers, bufferCap int) *Bridge {
	if bufferCap <= 0 {
		bufferCap = kernel.TTYLogSize
	}
	return &Bridge{
		dev:       dev,
		buffers:   make(map[int]*ReadingBuffer),
		handlers:  h,
		log:       alog.Default,
		bufferCap: bufferCap,
		screen:    newScreenBuf(bufferCap),
	}
}

// SetLogger overrides the debug logger used for bridge-level tracing.
func (b *Bridge) SetLogger(l alog.Logger) { b.log = l }

func (b *Bridge) bufferFor(minor int) *ReadingBuffer {
	rb, ok := b.buffers[minor]
	if !ok {
		rb = NewReadingBuffer(b.bufferCap)
		b.buffers[minor] = rb
	}
	return rb
}

// Buffer returns the reading buffer for console minor, allocating it on
// first use.
func (b *Bridge) Buffer(minor int) *ReadingBuffer { return b.bufferFor(minor) }

// Screen returns the one screen-mode buffer.
func (b *Bridge) Screen() *ScreenBuf { return b.screen }

// ForegroundConsole returns the console most recently reported by an FGC
// record.
func (b *Bridge) ForegroundConsole() int { return b.fgc }

// SetScreenMode records the screen-mode flag that ScreenMode reports.
// Nothing else in the bridge consults it: CursorSet and the reader calls
// keep using the per-console tty-log buffers either way.
func (b *Bridge) SetScreenMode(on bool) { b.screenOn = on }

// ScreenMode reports the current mode.
func (b *Bridge) ScreenMode() bool { return b.screenOn }

// Events drains and dispatches pending events from the device, one read's
// worth at a time. It must not be called re-entrantly from within a
// handler (the original's single-threaded event loop never re-enters
// acs_events either); doing so returns ErrReentrant rather than
// deadlocking or corrupting state.
func (b *Bridge) Events(ctx context.Context) error {
	if b.inCall {
		return ErrReentrant
	}
	b.inCall = true
	defer func() { b.inCall = false }()

	recs, err := b.dev.Read(ctx, 8192)
	if err != nil {
		return err
	}
	for _, r := range recs {
		b.dispatch(r)
	}
	return nil
}

func (b *Bridge) dispatch(r kernel.Record) {
	switch r.Kind {
	case kernel.CmdFGC:
		b.fgc = r.Minor
		if b.handlers.FGC != nil {
			b.handlers.FGC(r.Minor)
		}
	case kernel.CmdKeystroke:
		mkc := r.Shift*kernel.NumKeys + r.Key
		if b.handlers.Key != nil {
			b.handlers.Key(mkc)
		}
	case kernel.CmdTTYMoreChars:
		// Notification only: the rune itself reaches the reading buffer
		// through the TTY_NEWCHARS catch-up.
		if b.handlers.MoreChars != nil {
			b.handlers.MoreChars(b.fgc, r.Rune, r.Echo)
		}
	case kernel.CmdTTYNewChars:
		rb := b.bufferFor(r.Minor)
		rb.Append(r.Chars)
	default:
		b.log.Debugf("bridge: unhandled record kind %d", r.Kind)
	}
}

// FireIndexMark notifies the IndexMark handler, if any, that the
// synthesizer has reported reaching the mark with this label. Index
// marks arrive over the synth transport rather than the intercept
// device, so callers resolve them through a synth.IndexTracker and
// report them here instead of going through Events/dispatch.
func (b *Bridge) FireIndexMark(label int) {
	if b.handlers.IndexMark != nil {
		b.handlers.IndexMark(label)
	}
}

// Refresh asks the device to include the foreground console's tty-log
// catch-up in its next read, matching acs_refresh. It must not be called
// re-entrantly.
func (b *Bridge) Refresh() error {
	if b.inCall {
		return ErrReentrant
	}
	return b.dev.Write(kernel.CmdRefresh)
}

// KeyString renders a modified-key-code as a short human-readable
// spelling — the shift prefixes ParseChord accepts ('+', '^', then 'l@'
// or 'r@') followed by "key" and the decimal scan code — used for
// diagnostics and for the optional keystroke-echo handler's key-name
// announcement. The "key<N>" part is not a spelling ParseChord accepts.
func KeyString(mkc int) string {
	shift := mkc / kernel.NumKeys
	key := mkc % kernel.NumKeys
	prefix := ""
	if shift&kernel.ShiftShift != 0 {
		prefix += "+"
	}
	if shift&kernel.ShiftCtrl != 0 {
		prefix += "^"
	}
	if shift&kernel.ShiftLAlt != 0 {
		prefix += "l@"
	} else if shift&kernel.ShiftRAlt != 0 {
		prefix += "r@"
	}
	return fmt.Sprintf("%skey%d", prefix, key)
}
