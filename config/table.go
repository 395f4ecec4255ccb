package config

import (
	"errors"
	"strings"
)

// maxDictWords bounds the word-replacement dictionary, matching
// NUMDICTWORDS in the original.
const maxDictWords = 1000

// maxWordLen bounds a single dictionary word/replacement, matching
// WORDLEN.
const maxWordLen = 18

var (
	// ErrBothBound is returned by SetMacro/SetSpeechCommand when the
	// other table already owns this modified-key-code: at most one of
	// macro/speech may be bound per mkc.
	ErrBothBound = errors.New("config: key already bound to the other table")

	// ErrDictionaryFull is returned by SetWord when the word-replacement
	// dictionary is already at capacity.
	ErrDictionaryFull = errors.New("config: word-replacement dictionary is full")

	// ErrWordTooLong is returned when a dictionary word or replacement
	// exceeds maxWordLen.
	ErrWordTooLong = errors.New("config: word or replacement too long")
)

type dictEntry struct {
	word        string
	replacement string
}

// Table owns the macro/speech-command bindings, the punctuation
// dictionary, and the word-replacement dictionary for one bridge.
type Table struct {
	macro  map[int]string
	speech map[int]string
	punct  map[rune]string
	dict   []dictEntry

	suspended    bool
	suspendAllow map[int]bool
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		macro:  make(map[int]string),
		speech: make(map[int]string),
		punct:  make(map[rune]string),
	}
}

// SetMacro binds mkc to a macro string (tty-injected text; a leading '|'
// means "run as a shell command" at the application-shell layer). It
// fails if mkc is already bound as a speech command.
func (t *Table) SetMacro(mkc int, text string) error {
	if _, ok := t.speech[mkc]; ok {
		return ErrBothBound
	}
	t.macro[mkc] = text
	return nil
}

// GetMacro returns the macro bound to mkc, if any.
func (t *Table) GetMacro(mkc int) (string, bool) {
	s, ok := t.macro[mkc]
	return s, ok
}

// ClearMacro unbinds mkc's macro.
func (t *Table) ClearMacro(mkc int) { delete(t.macro, mkc) }

// SetSpeechCommand binds mkc to an encoded speech-command sequence. It
// fails if mkc is already bound as a macro.
func (t *Table) SetSpeechCommand(mkc int, cmd string) error {
	if _, ok := t.macro[mkc]; ok {
		return ErrBothBound
	}
	t.speech[mkc] = cmd
	return nil
}

// GetSpeechCommand returns the speech command bound to mkc, if any.
func (t *Table) GetSpeechCommand(mkc int) (string, bool) {
	s, ok := t.speech[mkc]
	return s, ok
}

// ClearSpeechCommand unbinds mkc's speech command.
func (t *Table) ClearSpeechCommand(mkc int) { delete(t.speech, mkc) }

// SetPunctuation assigns the pronunciation string for code point r.
func (t *Table) SetPunctuation(r rune, pronunciation string) {
	t.punct[r] = pronunciation
}

// GetPunctuation returns the pronunciation assigned to r, if any.
func (t *Table) GetPunctuation(r rune) (string, bool) {
	s, ok := t.punct[r]
	return s, ok
}

// ClearPunctuation removes r's pronunciation override.
func (t *Table) ClearPunctuation(r rune) { delete(t.punct, r) }

// SetWord adds or replaces a dictionary entry mapping word to
// replacement. Lookup is by lowercased word.
func (t *Table) SetWord(word, replacement string) error {
	if len(word) > maxWordLen || len(replacement) > maxWordLen {
		return ErrWordTooLong
	}
	word = strings.ToLower(word)
	for i, e := range t.dict {
		if e.word == word {
			t.dict[i].replacement = replacement
			return nil
		}
	}
	if len(t.dict) >= maxDictWords {
		return ErrDictionaryFull
	}
	t.dict = append(t.dict, dictEntry{word: word, replacement: replacement})
	return nil
}

// Replace looks up word (case-insensitively) in the dictionary and
// returns its replacement, or word unchanged with ok=false.
func (t *Table) Replace(word string) (string, bool) {
	lower := strings.ToLower(word)
	for _, e := range t.dict {
		if e.word == lower {
			return e.replacement, true
		}
	}
	return word, false
}

// englishSuffixes is the small suffix-strip table SmartReplace tries, in
// order, before giving up — kept as data rather than a generated
// transition table (see DESIGN.md Open Question decision).
var englishSuffixes = []struct{ suffix, strip string }{
	{"ies", "y"},
	{"ing", ""},
	{"ed", ""},
	{"es", ""},
	{"s", ""},
}

// SmartReplace behaves like Replace, but if word itself has no entry it
// strips a small set of English suffixes and retries with the stem,
// returning the stem's replacement as stored; the stripped suffix is not
// re-appended (acs_smartreplace).
func (t *Table) SmartReplace(word string) (string, bool) {
	if r, ok := t.Replace(word); ok {
		return r, true
	}
	lower := strings.ToLower(word)
	for _, suf := range englishSuffixes {
		if strings.HasSuffix(lower, suf.suffix) {
			stem := strings.TrimSuffix(lower, suf.suffix) + suf.strip
			if r, ok := t.Replace(stem); ok {
				return r, true
			}
		}
	}
	return word, false
}
