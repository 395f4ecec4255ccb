// Package alog is the daemon's small debug-trace facility.
//
// It mirrors the acs_log/acs_debug global-flag pattern of the original
// bridge library: a single switch turns verbose tracing on or off, and
// callers pay nothing when it is off. It is not a general logging
// framework and does not try to be one.
package alog

import (
	"io"
	"log"
	"os"
	"sync/atomic"
)

// Logger is the minimal leveled-logging surface the rest of this module
// depends on, so an application shell can redirect it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type stdLogger struct {
	out     *log.Logger
	debugOn int32
}

// New returns a Logger that writes to w, with debug-level output gated by
// SetDebug.
func New(w io.Writer) Logger {
	return &stdLogger{out: log.New(w, "", log.LstdFlags)}
}

// Default is the package-level logger, writing to stderr, used by
// packages that don't have one injected explicitly.
var Default = New(os.Stderr)

func (l *stdLogger) SetDebug(on bool) {
	if on {
		atomic.StoreInt32(&l.debugOn, 1)
	} else {
		atomic.StoreInt32(&l.debugOn, 0)
	}
}

func (l *stdLogger) Debugf(format string, args ...interface{}) {
	if atomic.LoadInt32(&l.debugOn) == 0 {
		return
	}
	l.out.Printf("DEBUG "+format, args...)
}

func (l *stdLogger) Infof(format string, args ...interface{}) {
	l.out.Printf("INFO "+format, args...)
}

func (l *stdLogger) Errorf(format string, args ...interface{}) {
	l.out.Printf("ERROR "+format, args...)
}

// SetDebug toggles debug-level output on a Logger created by New, if it
// supports it. Loggers that don't (e.g. a test stub) silently ignore it.
func SetDebug(l Logger, on bool) {
	if sl, ok := l.(*stdLogger); ok {
		sl.SetDebug(on)
	}
}
