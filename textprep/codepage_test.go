package textprep

import "testing"

func TestDecodeISO88591Fallback(t *testing.T) {
	cp := NewCodePage("nonexistent-page")
	out, err := cp.Decode([]byte{0x41, 0x42, 0xe9})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(out[:2]) != "AB" {
		t.Fatalf("got %q", string(out))
	}
}

func TestDefaultPunctuationHasCommonEntries(t *testing.T) {
	p := DefaultPunctuation()
	if p['.'] != "period" {
		t.Fatalf("expected '.' to map to \"period\", got %q", p['.'])
	}
	if p['!'] == "" {
		t.Fatal("expected an entry for '!'")
	}
}
