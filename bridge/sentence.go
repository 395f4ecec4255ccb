package bridge

// SentenceFlags control GetSentence's extraction policy.
type SentenceFlags int

const (
	// StopAtLine stops extraction at the first newline rather than
	// continuing onto the next line.
	StopAtLine SentenceFlags = 1 << iota
	// OneWord extracts only the single token at the cursor.
	OneWord
	// NewlineAsSpace treats an embedded newline as a word separator
	// rather than a hard stop (ignored if StopAtLine is also set).
	NewlineAsSpace
	// RepeatCompress collapses runs of 5 or more identical punctuation
	// characters into one repeat-marked token, instead of speaking each
	// occurrence.
	RepeatCompress
)

// repeatThreshold is the minimum run length collapsed by RepeatCompress,
// matching the original's SP_REPEAT behavior.
const repeatThreshold = 5

// offsetRepeatBit marks an offset entry as a repeat-compressed token
// (SP_MARK in the original, reused here as a high bit on the offset since
// Go ints are plenty wide for this).
const offsetRepeatBit = 1 << 30

// Sentence is the result of GetSentence: Text is the prepared sentence
// (code points only, no trailing NUL — Go strings/slices carry their own
// length), and Offsets has exactly len(Text)+1 entries: one per rune of
// Text, zero for a continuation rune and, at a token's first rune, one
// plus the character offset of that token from the cursor at the moment
// of extraction (so the first token's entry is 1, not 0), plus a trailing sentinel
// entry equal to the total number of source runes consumed. A consumer
// zips Text[i]/Offsets[i] to know where to flush synthesizer text and
// drop an index mark (see synth's index-mark wiring).
type Sentence struct {
	Text    []rune
	Offsets []int
}

// GetSentence extracts prepared sentence text forward from the probe's
// current position, implementing acs_getsentence. destLen bounds the
// number of runes returned.
func GetSentence(c *Cursor, destLen int, flags SentenceFlags) Sentence {
	rb := c.rb
	start := c.pos
	end := rb.End()

	var text []rune
	var offsets []int
	pos := start
	consumed := 0

	for pos < end && len(text) < destLen {
		r := rb.At(pos)
		if r == '\n' {
			if flags&StopAtLine != 0 {
				break
			}
			if flags&NewlineAsSpace == 0 {
				text = append(text, r)
				offsets = append(offsets, pos-start+1)
				pos++
				consumed = pos - start
				break
			}
			r = ' '
		}

		tokStart := pos
		var tok []rune
		if isWordRune(r) {
			for pos < end && (len(tok) == 0 || wordBoundaryOK(rb, pos-1, pos)) {
				tok = append(tok, rb.At(pos))
				pos++
			}
		} else if r == ' ' || r == '\t' {
			tok = []rune{' '}
			pos++
			for pos < end && (rb.At(pos) == ' ' || rb.At(pos) == '\t') {
				pos++
			}
		} else {
			// punctuation or other atomic symbol: look for a run of
			// identical characters eligible for repeat compression.
			runLen := 1
			for pos+runLen < end && rb.At(pos+runLen) == r {
				runLen++
			}
			if flags&RepeatCompress != 0 && runLen >= repeatThreshold {
				tok = []rune{r}
				pos += runLen
				offsets = append(offsets, (tokStart-start+1)|offsetRepeatBit)
				text = append(text, tok...)
				if flags&OneWord != 0 {
					break
				}
				continue
			}
			tok = []rune{r}
			pos++
		}

		if len(tok) == 0 {
			break
		}
		// One offset entry per rune of tok: the token-start rune carries
		// the source-relative offset, every continuation rune a zero, so
		// Offsets and Text stay the same length (plus the trailing
		// consumed-length sentinel appended below).
		offsets = append(offsets, tokStart-start+1)
		for i := 1; i < len(tok); i++ {
			offsets = append(offsets, 0)
		}
		text = append(text, tok...)

		if flags&OneWord != 0 {
			break
		}
	}
	consumed = pos - start
	offsets = append(offsets, consumed)
	return Sentence{Text: text, Offsets: offsets}
}

// IsRepeatToken reports whether the offset entry at index i in a
// Sentence's Offsets marks a repeat-compressed token.
func IsRepeatToken(offsets []int, i int) bool {
	return i >= 0 && i < len(offsets) && offsets[i]&offsetRepeatBit != 0
}

// TokenOffset returns the value recorded at offsets[i] (for a token
// start, one plus the token's offset from the cursor), stripped of the
// repeat-compression marker bit, or 0 if i is out of
// range. Callers driving a synthesizer off a Sentence (dropping an index
// mark at every non-zero offset) use this instead of indexing Offsets
// directly so the marker bit never leaks into a mark label.
func TokenOffset(offsets []int, i int) int {
	if i < 0 || i >= len(offsets) {
		return 0
	}
	return offsets[i] &^ offsetRepeatBit
}

// EndSentence is not implemented, matching the original acs_endsentence,
// which was never finished either. It is kept as an explicit, documented
// stub rather than silently dropped because the reader API names it.
func EndSentence(c *Cursor) bool {
	return false
}
