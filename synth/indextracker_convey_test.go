package synth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// This file covers the same index-tracking behavior as
// indextracker_test.go but in BDD style, for the scenarios that read
// more naturally as a sequence of nested expectations: a still-talking
// synth that goes quiet exactly when the last mark arrives, and DECtalk's
// bracketed-request/escape-acknowledgement pair.
func TestIndexTrackerScenarios(t *testing.T) {
	Convey("Given an index tracker speaking a two-word phrase", t, func() {
		style := ByKind(Doubletalk)
		tr := NewIndexTracker(style)
		tr.Begin(50)
		tr.Mark(6)  // label 1
		tr.Mark(12) // label 2

		Convey("While no marks have echoed back yet", func() {
			So(tr.StillTalking(), ShouldBeTrue)
		})

		Convey("When only the first mark echoes back as its raw label byte", func() {
			events, consumed := tr.Feed(append([]byte("hello "), 1))

			So(consumed, ShouldEqual, 7)
			So(events, ShouldHaveLength, 1)
			So(events[0].Cursor, ShouldEqual, 56)
			So(events[0].Final, ShouldBeFalse)

			Convey("the synth is still considered talking", func() {
				So(tr.StillTalking(), ShouldBeTrue)
			})

			Convey("and once the second mark also echoes back", func() {
				more, _ := tr.Feed(append([]byte("world "), 2))
				So(more, ShouldHaveLength, 1)
				So(more[0].Final, ShouldBeTrue)
				So(tr.StillTalking(), ShouldBeFalse)
			})
		})
	})

	Convey("Given a DECtalk-express utterance with one index mark", t, func() {
		style := ByKind(DECExpress)
		tr := NewIndexTracker(style)
		tr.Begin(0)
		sent := tr.Mark(4) // label 1

		Convey("the outgoing command uses the bracketed [:i r n] form", func() {
			So(string(sent), ShouldEqual, "[:i r 1]")
		})

		Convey("and the unit's escape-sequence acknowledgement resolves back to the mark", func() {
			ack := []byte("\x1bP0;32;1z")
			events, consumed := tr.Feed(append([]byte("hi "), ack...))
			So(consumed, ShouldEqual, 3+len(ack))
			So(events, ShouldHaveLength, 1)
			So(events[0].Cursor, ShouldEqual, 4)
		})
	})
}
