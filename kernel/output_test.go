package kernel

import (
	"testing"
	"time"
)

func TestClassifyDirectEcho(t *testing.T) {
	o := NewOutputPipeline()
	now := time.Now()
	o.ExpectEcho('x', now)
	if class := o.Classify('x', now); class != EchoDirect {
		t.Fatalf("expected EchoDirect, got %v", class)
	}
}

func TestClassifyIndirectEchoTab(t *testing.T) {
	o := NewOutputPipeline()
	now := time.Now()
	o.ExpectEcho('\t', now)
	for i := 0; i < 7; i++ {
		if class := o.Classify(' ', now); class != EchoIndirect {
			t.Fatalf("space %d: expected EchoIndirect, got %v", i, class)
		}
	}
	if class := o.Classify(' ', now); class != EchoIndirect {
		t.Fatalf("final space: expected EchoIndirect, got %v", class)
	}
	// the expectation is now consumed; an unrelated character matches
	// nothing.
	if class := o.Classify('q', now); class != EchoNone {
		t.Fatalf("expected EchoNone after expectation drained, got %v", class)
	}
}

func TestClassifyUnmatchedIsNone(t *testing.T) {
	o := NewOutputPipeline()
	now := time.Now()
	o.ExpectEcho('a', now)
	if class := o.Classify('z', now); class != EchoNone {
		t.Fatalf("expected EchoNone, got %v", class)
	}
}

func TestExpectEchoFIFOCapsAtEight(t *testing.T) {
	o := NewOutputPipeline()
	now := time.Now()
	for i := 0; i < echoFIFOCap+3; i++ {
		o.ExpectEcho(rune('a'+i), now)
	}
	if len(o.echoQueue) != echoFIFOCap {
		t.Fatalf("expected queue capped at %d, got %d", echoFIFOCap, len(o.echoQueue))
	}
}

func TestShouldNotifyThrottlesNonEcho(t *testing.T) {
	o := NewOutputPipeline()
	o.SetBreakInterval(500 * time.Millisecond)
	base := time.Now()
	if !o.ShouldNotify(base, false) {
		t.Fatalf("expected first non-echo notification to fire")
	}
	if o.ShouldNotify(base.Add(10*time.Millisecond), false) {
		t.Fatalf("expected a second notification within the break interval to be throttled")
	}
	if !o.ShouldNotify(base.Add(600*time.Millisecond), false) {
		t.Fatalf("expected a notification once the break interval elapses")
	}
}

func TestShouldNotifyAlwaysFiresForEcho(t *testing.T) {
	o := NewOutputPipeline()
	base := time.Now()
	o.ShouldNotify(base, false)
	if !o.ShouldNotify(base.Add(time.Millisecond), true) {
		t.Fatalf("echoed characters must always notify immediately")
	}
}
