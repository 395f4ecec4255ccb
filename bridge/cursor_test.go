package bridge

import "testing"

func fixtureBridge(text string) (*Bridge, int) {
	b := &Bridge{buffers: make(map[int]*ReadingBuffer), bufferCap: 4096}
	rb := NewReadingBuffer(4096)
	rb.Append([]rune(text))
	rb.SetCursor(rb.Start())
	b.buffers[0] = rb
	return b, 0
}

func TestWordMotion(t *testing.T) {
	b, minor := fixtureBridge("hello, don't you worry")
	c := b.CursorSet(minor)
	if !c.EndWord() {
		t.Fatal("EndWord failed")
	}
	if got := b.Buffer(minor).At(c.Pos()); got != 'o' {
		t.Fatalf("expected EndWord to land on 'o' of hello, got %q", got)
	}
	if !c.NextWord() {
		t.Fatal("NextWord failed")
	}
}

func TestStartEndBuf(t *testing.T) {
	b, minor := fixtureBridge("abcdef")
	c := b.CursorSet(minor)
	c.EndBuf()
	if r, _ := c.Char(); r != 'f' {
		t.Fatalf("EndBuf: got %q, want 'f'", r)
	}
	c.StartBuf()
	if r, _ := c.Char(); r != 'a' {
		t.Fatalf("StartBuf: got %q, want 'a'", r)
	}
}

func TestBufSearch(t *testing.T) {
	b, minor := fixtureBridge("the quick brown fox")
	c := b.CursorSet(minor)
	if !c.BufSearch("brown", false, false) {
		t.Fatal("expected to find 'brown'")
	}
	if r, _ := c.Char(); r != 'b' {
		t.Fatalf("expected cursor on 'b' of brown, got %q", r)
	}
}

func TestGetSentenceOffsets(t *testing.T) {
	b, minor := fixtureBridge("go home now")
	c := b.CursorSet(minor)
	s := GetSentence(c, 64, 0)
	if string(s.Text) != "go home now" {
		t.Fatalf("got %q", string(s.Text))
	}
	// Offsets must carry one entry per rune of Text (non-zero only at a
	// token's first rune, zero on every continuation rune) plus a
	// trailing consumed-length sentinel — "go"/" "/"home"/" "/"now" are
	// five tokens over eleven runes, so twelve entries in all.
	want := []int{1, 0, 3, 4, 0, 0, 0, 8, 9, 0, 0, 11}
	if len(s.Offsets) != len(want) {
		t.Fatalf("len(Offsets) = %d, want %d: %+v", len(s.Offsets), len(want), s.Offsets)
	}
	for i, w := range want {
		if s.Offsets[i] != w {
			t.Fatalf("Offsets[%d] = %d, want %d: %+v", i, s.Offsets[i], w, s.Offsets)
		}
	}
}

func TestGetSentenceRepeatCompress(t *testing.T) {
	b, minor := fixtureBridge("----------end")
	c := b.CursorSet(minor)
	s := GetSentence(c, 64, RepeatCompress)
	if !IsRepeatToken(s.Offsets, 0) {
		t.Fatalf("expected first token to be repeat-compressed: %+v", s.Offsets)
	}
}

func TestReentrancyGuard(t *testing.T) {
	b := &Bridge{buffers: make(map[int]*ReadingBuffer)}
	b.inCall = true
	if err := b.Refresh(); err != ErrReentrant {
		t.Fatalf("expected ErrReentrant, got %v", err)
	}
}
