// Command acsintd is the illustrative application shell tying the
// kernel/bridge/config/synth/fifo packages together into the event loop
// described for the user bridge: a single goroutine selects over the
// intercept device, the synth transport, and the fifo listener, and
// executes at most one pending speech command per pass.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/eklhad/acsgo/bridge"
	"github.com/eklhad/acsgo/clicks"
	"github.com/eklhad/acsgo/config"
	"github.com/eklhad/acsgo/fifo"
	"github.com/eklhad/acsgo/internal/alog"
	"github.com/eklhad/acsgo/kernel"
	"github.com/eklhad/acsgo/synth"
)

// maxSpeechRunes bounds one GetSentence extraction, matching the
// original's TTYLOGSIZE-scale sentence buffer rather than its exact size.
const maxSpeechRunes = 1000

// speechInFlight tracks the one sentence currently being spoken from a
// reading buffer, so the final index-mark event arriving asynchronously
// over the synth transport can advance that buffer's reader cursor to
// where speech actually stopped (acs_notify's imark_end handling).
type speechInFlight struct {
	cursor   *bridge.Cursor
	consumed int
}

func main() {
	var (
		synthSpec  = flag.String("synth", "", "synth device path, or |command for a piped synthesizer")
		styleName  = flag.String("style", "generic", "synth style: generic, doubletalk, dec-express, dec-pc, bns, ace, espeakup")
		baud       = flag.Int("baud", 9600, "serial baud rate when -synth names a device")
		fifoPath   = flag.String("fifo", "/var/run/acsintd.fifo", "named pipe for external text injection")
		configFile = flag.String("c", "", "configuration file of key bindings and pronunciations")
		debug      = flag.Bool("d", false, "enable debug tracing")
	)
	flag.Parse()

	if *debug {
		alog.SetDebug(alog.Default, true)
	}

	dev := kernel.NewDevice()
	if err := dev.Open(); err != nil {
		fmt.Fprintln(os.Stderr, "acsintd: open device:", err)
		os.Exit(1)
	}
	defer dev.Close()

	tbl := config.NewTable()
	if *configFile != "" {
		if err := loadConfigFile(tbl, *configFile); err != nil {
			fmt.Fprintln(os.Stderr, "acsintd: config:", err)
			os.Exit(1)
		}
	}

	style := synth.ByKind(parseStyle(*styleName))
	transport, err := openTransport(*synthSpec, *baud)
	if err != nil {
		fmt.Fprintln(os.Stderr, "acsintd: synth:", err)
		os.Exit(1)
	}
	defer transport.Close()
	tracker := synth.NewIndexTracker(style)

	sink := clicks.NewDeviceSink(dev)

	var fifoLines chan string
	if *fifoPath != "" {
		fl, err := fifo.Open(*fifoPath)
		if err == nil {
			fifoLines = make(chan string, 16)
			go func() {
				_ = fl.Serve(func(line string) { fifoLines <- line })
				close(fifoLines)
			}()
		}
	}

	var inFlight *speechInFlight

	br := bridge.New(dev, bridge.Handlers{
		Key: func(mkc int) {
			if !tbl.Active(mkc) {
				return
			}
			sink.Click()
			if cmd, ok := tbl.GetSpeechCommand(mkc); ok {
				c, flags := speechCursor(br, cmd)
				if f := speakSentence(transport, style, tracker, c, flags); f != nil {
					inFlight = f
				}
			}
			if macro, ok := tbl.GetMacro(mkc); ok {
				runMacro(dev, macro)
			}
		},
	}, 0)

	ctx := context.Background()
	for {
		if err := br.Events(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "acsintd: events:", err)
			return
		}
		readBuf := make([]byte, 256)
		n, _ := transport.Read(readBuf)
		if n > 0 {
			events, _ := tracker.Feed(readBuf[:n])
			for _, ev := range events {
				br.FireIndexMark(ev.Label)
				if ev.Final && inFlight != nil {
					inFlight.cursor.Seek(inFlight.cursor.Pos() + inFlight.consumed)
					inFlight.cursor.CursorSync()
					inFlight = nil
				}
			}
		}
		select {
		case line, ok := <-fifoLines:
			if ok {
				speakText(transport, style, tracker, line)
			}
		default:
		}
	}
}

// speechCursor positions a reading-buffer probe for a speech-command
// binding and returns the GetSentence flags that match the command's
// scope: the original's per-command handlers (acs_sayline, acs_sayword,
// ...) each reposition the cursor before calling acs_getsentence, rather
// than acs_getsentence itself knowing about commands.
func speechCursor(br *bridge.Bridge, cmd string) (*bridge.Cursor, bridge.SentenceFlags) {
	c := br.CursorSet(br.ForegroundConsole())
	switch cmd {
	case "sayline", "currentline":
		c.StartLine()
		return c, bridge.StopAtLine
	case "sayword", "currentword", "curword":
		c.StartWord()
		return c, bridge.OneWord
	default:
		return c, 0
	}
}

// speakSentence extracts one sentence forward from c, interleaving an
// index-mark request at every non-zero Sentence.Offsets entry with the
// sentence text before writing the whole thing to the synth transport —
// the getSentence/index-mark/cursor loop acs_sayword and friends drive:
// the reading cursor only actually advances once the synthesizer
// acknowledges the final mark, back in the caller's event loop.
func speakSentence(t synth.Transport, style synth.Style, tracker *synth.IndexTracker, c *bridge.Cursor, flags bridge.SentenceFlags) *speechInFlight {
	s := bridge.GetSentence(c, maxSpeechRunes, flags)
	if len(s.Text) == 0 {
		return nil
	}

	tracker.Begin(c.Pos())
	var out []byte
	for i, r := range s.Text {
		if off := bridge.TokenOffset(s.Offsets, i); off != 0 {
			// Offsets entries are one plus the token's source offset.
			out = append(out, tracker.Mark(off-1)...)
		}
		out = append(out, []byte(string(r))...)
	}
	if _, err := t.Write(out); err != nil {
		return nil
	}
	if term := style.Terminate(); len(term) > 0 {
		_, _ = t.Write(term)
	}
	return &speechInFlight{cursor: c, consumed: s.Offsets[len(s.Offsets)-1]}
}

// speakText speaks externally supplied text (fifo-injected lines) that
// is not drawn from a reading buffer, so there is no cursor to advance
// once it finishes: one index mark brackets the whole utterance.
func speakText(t synth.Transport, style synth.Style, tracker *synth.IndexTracker, text string) {
	tracker.Begin(0)
	out := append(tracker.Mark(0), []byte(text)...)
	_, _ = t.Write(out)
	if term := style.Terminate(); len(term) > 0 {
		_, _ = t.Write(term)
	}
}

// runMacro dispatches a key's bound macro: a leading '|' runs the
// remainder as a shell command (acs_do_setmacro's "|" exec form),
// otherwise the text is injected into the foreground console's tty
// stream via PUSH_TTY.
func runMacro(dev *kernel.Device, text string) {
	if strings.HasPrefix(text, "|") {
		cmd := exec.Command("/bin/sh", "-c", text[1:])
		_ = cmd.Start()
		return
	}
	dev.PushTTY(text)
}

func parseStyle(name string) synth.StyleKind {
	switch strings.ToLower(name) {
	case "doubletalk":
		return synth.Doubletalk
	case "dec-express", "decexpress":
		return synth.DECExpress
	case "dec-pc", "decpc":
		return synth.DECPC
	case "bns":
		return synth.BNS
	case "ace":
		return synth.ACE
	case "espeakup":
		return synth.Espeakup
	default:
		return synth.Generic
	}
}

func openTransport(spec string, baud int) (synth.Transport, error) {
	if strings.HasPrefix(spec, "|") {
		argv := strings.Fields(spec[1:])
		if len(argv) == 0 {
			return nil, fmt.Errorf("empty piped synth command")
		}
		return synth.OpenPipe(argv)
	}
	if spec == "" {
		return synth.OpenPipe([]string{"cat"})
	}
	return synth.OpenSerial(spec, baud, synth.FlowHardware)
}

func loadConfigFile(tbl *config.Table, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	for i, line := range strings.Split(string(data), "\n") {
		if cerr := config.LineConfigure(tbl, line, nil); cerr != nil {
			return fmt.Errorf("line %d: %w", i+1, cerr)
		}
	}
	return nil
}
