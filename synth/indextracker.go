package synth

// IndexEvent reports that the reading cursor should advance to the
// source position associated with an index mark the synthesizer has just
// reached.
type IndexEvent struct {
	Label  int
	Cursor int
	Final  bool // true if this was the last mark in the current utterance
}

// Label bands an utterance's marks are drawn from, alternating on every
// Begin so a mark that arrives late (after its utterance was cancelled by
// a new one) carries a label from the other band and is recognized as
// stale rather than misattributed to the new utterance — matching
// acstalk.c's indexSet disambiguation between overlapping utterances.
const (
	labelBandLow  = 1
	labelBandHigh = 50
)

// IndexTracker maps a stream of raw bytes from the synthesizer back onto
// index-mark events, implementing the indexSet bookkeeping from
// acstalk.c: imarkStart is the reading-cursor position the current
// utterance began at, imarkLoc is the per-label cursor-relative source
// offset recorded when the utterance was sent. BNS/ACE styles carry no label in the byte
// stream, so this type also keeps a running count to serve as the
// implicit label for those styles.
type IndexTracker struct {
	style Style

	imarkStart int
	imarkLoc   []int
	labelBase  int // first label assigned in the current utterance
	marksSent  int
	altHigh    bool // which band Begin used last; flips every call

	receivedCount int
	bnsCount      int
}

// NewIndexTracker returns a tracker bound to style.
func NewIndexTracker(style Style) *IndexTracker {
	return &IndexTracker{style: style, labelBase: labelBandLow}
}

// Begin starts tracking a new utterance whose source text began at
// cursor. Callers should call Mark for every index-mark position as they
// build the outgoing byte stream, in increasing offset order.
func (t *IndexTracker) Begin(cursor int) {
	t.imarkStart = cursor
	t.imarkLoc = t.imarkLoc[:0]
	t.marksSent = 0
	t.receivedCount = 0
	t.bnsCount = 0
	if t.altHigh {
		t.labelBase = labelBandHigh
	} else {
		t.labelBase = labelBandLow
	}
	t.altHigh = !t.altHigh
}

// Mark records that the next index mark in the outgoing stream
// corresponds to source offset (cursor-relative) and returns the bytes to
// embed for it.
func (t *IndexTracker) Mark(offset int) []byte {
	label := t.labelBase + t.marksSent
	t.marksSent++
	t.imarkLoc = append(t.imarkLoc, offset)
	return t.style.EncodeIndexMark(label)
}

// Feed consumes bytes arriving from the synthesizer, returning every
// index event found and the number of bytes consumed in total. Bytes
// that are not part of a recognized index-mark response are silently
// skipped (they are ordinary spoken-text echo or diagnostic chatter on
// most dialects).
func (t *IndexTracker) Feed(buf []byte) (events []IndexEvent, consumed int) {
	for len(buf) > 0 {
		if t.style.Kind() == BNS || t.style.Kind() == ACE {
			_, n, ok := t.style.ParseIndexMark(buf)
			if ok {
				events = append(events, t.eventForIndex(t.bnsCount, t.bnsCount))
				t.bnsCount++
				buf = buf[n:]
				consumed += n
				continue
			}
			if n == 0 {
				break
			}
			buf = buf[n:]
			consumed += n
			continue
		}
		label, n, ok := t.style.ParseIndexMark(buf)
		if n == 0 && !ok {
			break // need more bytes
		}
		if ok {
			if ev, valid := t.eventFor(label); valid {
				events = append(events, ev)
			}
		}
		buf = buf[n:]
		consumed += n
	}
	return events, consumed
}

// eventFor resolves a received label against the current utterance's
// label band. A label outside that band belongs to a different
// utterance (typically a late arrival from one just cancelled) and is
// reported as invalid so Feed drops it instead of misreporting its
// cursor.
func (t *IndexTracker) eventFor(label int) (IndexEvent, bool) {
	idx := label - t.labelBase
	if idx < 0 || idx >= len(t.imarkLoc) {
		return IndexEvent{}, false
	}
	return t.eventForIndex(idx, label), true
}

func (t *IndexTracker) eventForIndex(idx, label int) IndexEvent {
	cursor := t.imarkStart
	if idx >= 0 && idx < len(t.imarkLoc) {
		cursor = t.imarkStart + t.imarkLoc[idx]
	}
	t.receivedCount++
	final := t.receivedCount >= t.marksSent
	return IndexEvent{Label: label, Cursor: cursor, Final: final}
}

// StillTalking reports whether the synthesizer should be considered mid-
// utterance: true if fewer index-mark responses have arrived than marks
// were sent for the current utterance.
func (t *IndexTracker) StillTalking() bool {
	return t.marksSent > 0 && t.receivedCount < t.marksSent
}
