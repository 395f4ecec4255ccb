package kernel

import (
	"context"
	"testing"
	"time"
)

func TestOpenExclusive(t *testing.T) {
	d := NewDevice()
	if err := d.Open(); err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := d.Open(); err != ErrDeviceBusy {
		t.Fatalf("second open: got %v, want ErrDeviceBusy", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := d.Open(); err != nil {
		t.Fatalf("reopen after close: %v", err)
	}
}

func TestKeystrokeCaptured(t *testing.T) {
	d := NewDevice()
	_ = d.Write(CmdSetKey, 30, 0, 0) // capture key 30, no shift, no passthrough
	d.KeyDown(30, 0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	recs, err := d.Read(ctx, 4096)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var found bool
	for _, r := range recs {
		if r.Kind == CmdKeystroke && r.Key == 30 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a KEYSTROKE record, got %+v", recs)
	}
}

func TestKeystrokeUncapturedForwards(t *testing.T) {
	d := NewDevice()
	dec := d.keys.Press(31, 0)
	if !dec.Forward || dec.Capture {
		t.Fatalf("uncaptured key should forward, not capture: %+v", dec)
	}
}

func TestRingOverflowNullsEnclosedPointer(t *testing.T) {
	r := NewRing(4)
	for i := 0; i < 4; i++ {
		r.Append(rune('a' + i))
	}
	r.SetMark(0) // mark points at the oldest slot, 'a'
	r.Append('e')
	if r.Mark() != NoPos {
		t.Fatalf("expected mark to be nulled after overwrite, got %d", r.Mark())
	}
}

func TestCatchUpNeverSplitsARecord(t *testing.T) {
	d := NewDevice()
	for _, r := range "hello" {
		d.ConsoleWrite(0, r, false)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	// Budget too small to hold the full catch-up: the record should be
	// truncated from the oldest side, never fragmented into a partial
	// header.
	recs, err := d.Read(ctx, 4+4*2)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 1 || recs[0].Kind != CmdTTYNewChars {
		t.Fatalf("expected one truncated TTY_NEWCHARS record, got %+v", recs)
	}
	if len(recs[0].Chars) != 2 {
		t.Fatalf("expected truncation to 2 chars, got %d", len(recs[0].Chars))
	}
}

func TestFGCCoalesces(t *testing.T) {
	d := NewDevice()
	d.SwitchConsole(1)
	d.SwitchConsole(2)
	d.SwitchConsole(3)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	recs, err := d.Read(ctx, 4096)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var fgcs int
	for _, r := range recs {
		if r.Kind == CmdFGC {
			fgcs++
			if r.Minor != 3 {
				t.Fatalf("expected final FGC minor 3, got %d", r.Minor)
			}
		}
	}
	if fgcs != 1 {
		t.Fatalf("expected exactly one coalesced FGC record, got %d", fgcs)
	}
}

func TestConsoleWriteClassifiesKeyEcho(t *testing.T) {
	d := NewDevice()
	d.KeyDown(30, 0) // 'a', uncaptured: forwarded, and registers an echo expectation
	d.ConsoleWrite(0, 'a', false)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	recs, err := d.Read(ctx, 4096)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var found bool
	for _, r := range recs {
		if r.Kind == CmdTTYMoreChars {
			found = true
			if !r.Echo {
				t.Fatalf("expected the echo flag set for a classified key echo, got %+v", r)
			}
			if r.Rune != 'a' {
				t.Fatalf("expected rune 'a', got %q", r.Rune)
			}
		}
	}
	if !found {
		t.Fatalf("expected a TTY_MORECHARS record, got %+v", recs)
	}
}

func TestPushTTYInjectsAsEcho(t *testing.T) {
	d := NewDevice()
	d.PushTTY("hi")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	recs, err := d.Read(ctx, 4096)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var chars []rune
	more := 0
	for _, r := range recs {
		if r.Kind == CmdTTYNewChars {
			chars = append(chars, r.Chars...)
		}
		if r.Kind == CmdTTYMoreChars {
			more++
			if !r.Echo {
				t.Fatalf("expected injected text to be reported as echo, got %+v", r)
			}
		}
	}
	if string(chars) != "hi" {
		t.Fatalf("expected injected text in the catch-up read, got %q", string(chars))
	}
	if more == 0 {
		t.Fatalf("expected TTY_MORECHARS records for the injected text, got %+v", recs)
	}
}
