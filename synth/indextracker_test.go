package synth

import "testing"

func TestDoubletalkEncodesSendFormat(t *testing.T) {
	style := ByKind(Doubletalk)
	tr := NewIndexTracker(style)
	tr.Begin(100)
	// acstalk.c embeds index requests as "\x01<n>i"; the unit's spoken
	// acknowledgement (tested below) uses a completely different,
	// unlabeled single-byte channel.
	if got, want := tr.Mark(5), "\x011i"; string(got) != want {
		t.Fatalf("EncodeIndexMark = %q, want %q", got, want)
	}
}

func TestDoubletalkIndexRoundTrip(t *testing.T) {
	style := ByKind(Doubletalk)
	tr := NewIndexTracker(style)
	tr.Begin(100)
	tr.Mark(5)
	tr.Mark(12)

	// The DoubleTalk unit acknowledges an index mark with a single raw
	// byte equal to the mark's label (1, 2, ...), interleaved with
	// ordinary spoken-text echo.
	stream := append(append([]byte("hello "), 1), append([]byte("world "), 2)...)
	events, consumed := tr.Feed(stream)
	if consumed != len(stream) {
		t.Fatalf("expected to consume the whole stream, got %d/%d", consumed, len(stream))
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 index events, got %d: %+v", len(events), events)
	}
	if events[0].Cursor != 105 || events[1].Cursor != 112 {
		t.Fatalf("unexpected cursors: %+v", events)
	}
	if !events[1].Final {
		t.Fatalf("expected second event to be final: %+v", events[1])
	}
	if tr.StillTalking() {
		t.Fatalf("expected StillTalking to be false after all marks received")
	}
}

func TestIndexLabelBandAlternates(t *testing.T) {
	style := ByKind(Doubletalk)
	tr := NewIndexTracker(style)

	tr.Begin(0)
	tr.Mark(0) // label 1, low band
	// A late byte from this (now-superseded) utterance arrives after a
	// new one has begun; it must not be attributed to the new utterance.
	stale := byte(1)

	tr.Begin(0)
	tr.Mark(0) // label 50, high band

	events, consumed := tr.Feed([]byte{stale})
	if consumed != 1 {
		t.Fatalf("expected the stray byte to be consumed, got %d", consumed)
	}
	if len(events) != 0 {
		t.Fatalf("expected the stale low-band label to be dropped, got %+v", events)
	}

	events, _ = tr.Feed([]byte{50})
	if len(events) != 1 || !events[0].Final {
		t.Fatalf("expected the current high-band mark to register as final: %+v", events)
	}
}

func TestBNSIndexCounting(t *testing.T) {
	style := ByKind(BNS)
	tr := NewIndexTracker(style)
	tr.Begin(0)
	tr.Mark(3)
	tr.Mark(9)

	stream := []byte{0x06, 0x06}
	events, consumed := tr.Feed(stream)
	if consumed != 2 {
		t.Fatalf("expected to consume 2 bytes, got %d", consumed)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Cursor != 3 || events[1].Cursor != 9 {
		t.Fatalf("unexpected cursors: %+v", events)
	}
}

func TestInterruptBytePerStyle(t *testing.T) {
	cases := []struct {
		kind StyleKind
		want byte
	}{
		{Doubletalk, 24},
		{BNS, 24},
		{ACE, 24},
		{DECExpress, 3},
		{DECPC, 3},
		{Generic, 3},
	}
	for _, c := range cases {
		if got := ByKind(c.kind).Interrupt(); got != c.want {
			t.Errorf("%v: interrupt byte = %d, want %d", c.kind, got, c.want)
		}
	}
}
