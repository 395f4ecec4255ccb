package synth

import (
	"errors"
	"io"
)

// ErrBroken describes a transport whose peer has gone away (a SIGPIPE on
// a forked pipe, or a serial read error), the original's broken-pipe
// flag. The transports in this package report that state through
// Broken() and do not return ErrBroken.
var ErrBroken = errors.New("synth: transport broken")

// Transport is the byte-level connection to a synthesizer, regardless of
// whether it is a serial line or a forked child process's pipes.
type Transport interface {
	io.ReadWriteCloser

	// Drain waits for buffered output to go out, as far as the transport
	// can tell: Serial sleeps for a short fixed interval, Pipe returns at
	// once.
	Drain() error

	// Broken reports whether the transport has detected its peer is
	// gone; once true it stays true.
	Broken() bool
}
