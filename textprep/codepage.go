package textprep

import (
	gdencoding "github.com/gdamore/encoding"
	xtextenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// CodePage decodes a screen-mode snapshot's raw bytes into code points,
// selected by a language/code-page name. This is the screen-mode
// counterpart of bridge.ScreenBuf.LoadSnapshot's input path.
type CodePage struct {
	dec xtextenc.Encoding
}

// byName mirrors the locale-to-codeset resolution tcell's encoding.go
// performs for LC_CTYPE/LANG, narrowed to the legacy console code pages
// a screen reader actually needs to decode (the video console itself is
// rarely UTF-8).
var byName = map[string]xtextenc.Encoding{
	"cp437":      gdencoding.CP437,
	"iso8859-1":  charmap.ISO8859_1,
	"iso8859-2":  charmap.ISO8859_2,
	"iso8859-7":  charmap.ISO8859_7,
	"iso8859-15": charmap.ISO8859_15,
	"koi8-r":     charmap.KOI8R,
	"shift-jis":  japanese.ShiftJIS,
	"euc-kr":     korean.EUCKR,
	"gbk":        simplifiedchinese.GBK,
}

// NewCodePage returns the CodePage for name, falling back to iso8859-1 —
// the video console's own default — for an unrecognized name rather than
// failing outright, since a screen reader must keep functioning even with
// a misconfigured locale.
func NewCodePage(name string) *CodePage {
	enc, ok := byName[name]
	if !ok {
		enc = charmap.ISO8859_1
	}
	return &CodePage{dec: enc}
}

// Decode converts raw console-memory bytes to code points.
func (c *CodePage) Decode(raw []byte) ([]rune, error) {
	s, err := c.dec.NewDecoder().String(string(raw))
	if err != nil {
		return nil, err
	}
	return []rune(s), nil
}
