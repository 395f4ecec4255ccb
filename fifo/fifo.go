// Package fifo implements the line-oriented named-pipe IPC channel used
// to inject text into the bridge from outside processes.
package fifo

import (
	"bufio"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Listener owns a named pipe, reassembling partial reads into complete
// lines and replacing any embedded NUL bytes with spaces before handing
// each line (without its trailing newline) to a callback.
type Listener struct {
	path string
	f    *os.File
	r    *bufio.Reader
}

// Open creates path as a fifo (mode 0600) if it does not already exist,
// then opens it for reading. Opening blocks, POSIX-fifo style, until a
// writer also opens it — callers typically run this in its own
// goroutine.
func Open(path string) (*Listener, error) {
	if err := unix.Mkfifo(path, 0600); err != nil && !os.IsExist(err) {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	return &Listener{path: path, f: f, r: bufio.NewReader(f)}, nil
}

// Close releases the underlying file descriptor; the fifo node itself is
// left in place for the next writer.
func (l *Listener) Close() error { return l.f.Close() }

// Serve reads lines until EOF or an error, invoking onLine for each
// complete line. NUL bytes within a line are replaced with spaces rather
// than truncating the line, matching the original fifo reader's
// tolerance for stray NULs from misbehaving writers.
func (l *Listener) Serve(onLine func(line string)) error {
	for {
		line, err := l.r.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			line = strings.ReplaceAll(line, "\x00", " ")
			onLine(line)
		}
		if err != nil {
			return err
		}
	}
}
