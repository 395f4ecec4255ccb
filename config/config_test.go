package config

import (
	"testing"

	"github.com/eklhad/acsgo/kernel"
)

func TestParseChordPrefixes(t *testing.T) {
	key, shift, rest, err := ParseChord("^+ta")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rest != "a" {
		t.Fatalf("expected leftover 'a', got %q", rest)
	}
	if want := kernel.ShiftCtrl | kernel.ShiftShift; shift&want != want {
		t.Fatalf("expected ctrl+shift bits set, got %#x", shift)
	}
	_ = key
}

func TestParseChordFKey(t *testing.T) {
	key, _, rest, err := ParseChord("F5")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rest != "" {
		t.Fatalf("expected no leftover, got %q", rest)
	}
	if key != 63 {
		t.Fatalf("expected F5 scan code 63, got %d", key)
	}
}

func TestMacroSpeechMutualExclusion(t *testing.T) {
	tbl := NewTable()
	if err := tbl.SetMacro(5, "hello"); err != nil {
		t.Fatalf("set macro: %v", err)
	}
	if err := tbl.SetSpeechCommand(5, "say"); err != ErrBothBound {
		t.Fatalf("expected ErrBothBound, got %v", err)
	}
}

func TestLineConfigureSpeechCommand(t *testing.T) {
	tbl := NewTable()
	if cerr := LineConfigure(tbl, "^F1 repeat-word", nil); cerr != nil {
		t.Fatalf("configure: %v", cerr)
	}
	mkc, _ := ModifiedKeyCode(59, kernel.ShiftCtrl)
	cmd, ok := tbl.GetSpeechCommand(mkc)
	if !ok || cmd != "repeat-word" {
		t.Fatalf("got (%q, %v)", cmd, ok)
	}
}

func TestLineConfigureComment(t *testing.T) {
	tbl := NewTable()
	if cerr := LineConfigure(tbl, "# just a comment", nil); cerr != nil {
		t.Fatalf("expected comment line to be a no-op, got %v", cerr)
	}
}

func TestLineConfigurePunctuationCodepoint(t *testing.T) {
	tbl := NewTable()
	if cerr := LineConfigure(tbl, "u65 capital A", nil); cerr != nil {
		t.Fatalf("configure: %v", cerr)
	}
	pron, ok := tbl.GetPunctuation('A')
	if !ok || pron != "capital A" {
		t.Fatalf("got (%q, %v)", pron, ok)
	}
}

func TestSmartReplacePlural(t *testing.T) {
	tbl := NewTable()
	_ = tbl.SetWord("box", "container")
	got, ok := tbl.SmartReplace("boxes")
	if !ok || got != "container" {
		t.Fatalf("got (%q, %v)", got, ok)
	}
}

func TestSuspendKeysCarveOut(t *testing.T) {
	tbl := NewTable()
	_ = tbl.SetMacro(9, "|say hi")
	_ = tbl.SuspendKeys("")
	if !tbl.Active(9) {
		t.Fatal("expected piped macro to stay active while suspended")
	}
	if tbl.Active(10) {
		t.Fatal("expected unrelated key to be inactive while suspended")
	}
	tbl.ResumeKeys()
	if !tbl.Active(10) {
		t.Fatal("expected key active again after resume")
	}
}
