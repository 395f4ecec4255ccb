package bridge

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// ScreenBuf is the one screen-mode reading buffer: a decoded snapshot of
// video console memory, with an attribute byte parallel to each code
// point and a visual cursor synchronized to the kernel-reported cursor
// position on every snapshot.
type ScreenBuf struct {
	rb   *ReadingBuffer
	cols int
	rows int
}

func newScreenBuf(capacity int) *ScreenBuf {
	rb := NewReadingBuffer(capacity)
	rb.EnsureAttribs()
	return &ScreenBuf{rb: rb}
}

// Buffer exposes the underlying ReadingBuffer for cursor/reader
// operations to share the same Cursor API as tty-mode buffers.
func (s *ScreenBuf) Buffer() *ReadingBuffer { return s.rb }

// Resize records the console's current geometry; it does not itself
// reflow stored content; the next LoadSnapshot does.
func (s *ScreenBuf) Resize(cols, rows int) {
	s.cols = cols
	s.rows = rows
}

// LoadSnapshot replaces the screen buffer's contents wholesale from a
// decoded grid of (rune, attribute) cells in row-major order, and places
// the visual cursor at the given linear offset.
func (s *ScreenBuf) LoadSnapshot(cells []rune, attribs []byte, cursorPos int) {
	s.rb.Reset()
	s.rb.storage = append(s.rb.storage[:0], cells...)
	s.rb.end = len(s.rb.storage)
	s.rb.SetAttribs(append([]byte(nil), attribs...))
	s.rb.vCursor = cursorPos
}

// VisualColumn returns the on-screen column of absolute position pos,
// accounting for double-width glyphs and combining marks the way a real
// terminal would, needed because the screen buffer's index space is
// code points but the physical cursor moves in columns. Combining marks
// decoded onto a base character (diacritics the console driver folds
// into one screen cell) must not advance the column on their own, so the
// line is walked a grapheme cluster at a time rather than rune by rune.
func (s *ScreenBuf) VisualColumn(pos int) int {
	if s.cols == 0 {
		return 0
	}
	lineStart := pos - (pos % s.cols)
	end := pos
	if e := s.rb.End(); end > e {
		end = e
	}
	if end <= lineStart {
		return 0
	}
	line := make([]rune, 0, end-lineStart)
	for i := lineStart; i < end; i++ {
		line = append(line, s.rb.At(i))
	}
	col := 0
	str := string(line)
	for len(str) > 0 {
		cluster, rest, width, _ := uniseg.FirstGraphemeClusterInString(str, -1)
		if cluster == "" {
			break
		}
		if width == 0 {
			width = runewidth.StringWidth(cluster)
		}
		col += width
		str = rest
	}
	return col
}
