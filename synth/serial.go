package synth

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Serial is a synth Transport over a real or virtual serial line,
// grounded on Daedaluz-goserial's termios field layout: it puts the line
// into raw mode with golang.org/x/term (matching the approach the teacher
// itself moved to in tty/tty_unix.go) and then overlays the
// acsint-specific control-character and flow-control fields the generic
// raw-mode call does not set, using golang.org/x/sys/unix ioctls
// directly, the same way Daedaluz's Port.SetAttr does.
type Serial struct {
	f       *os.File
	oldState *term.State
	broken  bool
}

// FlowControl selects hardware (RTS/CTS) or software (XON/XOFF) flow
// control for OpenSerial, matching ess_flowcontrol's two branches.
type FlowControl int

const (
	FlowNone FlowControl = iota
	FlowHardware
	FlowSoftware
)

// OpenSerial opens path (e.g. "/dev/ttyUSB0"), sets the given baud rate,
// 8N1, CLOCAL, and the requested flow control, and leaves the line in
// raw, non-canonical mode suitable for a byte-oriented synth protocol.
func OpenSerial(path string, baud int, flow FlowControl) (*Serial, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_NOCTTY, 0)
	if err != nil {
		return nil, err
	}
	fd := int(f.Fd())

	state, err := term.MakeRaw(fd)
	if err != nil {
		f.Close()
		return nil, err
	}

	tios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		term.Restore(fd, state)
		f.Close()
		return nil, err
	}
	applyBaud(tios, baud)
	tios.Cflag |= unix.CLOCAL | unix.CREAD
	tios.Cflag &^= unix.CSIZE | unix.PARENB | unix.CSTOPB
	tios.Cflag |= unix.CS8
	switch flow {
	case FlowHardware:
		tios.Cflag |= unix.CRTSCTS
		tios.Iflag &^= unix.IXON | unix.IXOFF
	case FlowSoftware:
		tios.Cflag &^= unix.CRTSCTS
		tios.Iflag |= unix.IXON | unix.IXOFF
	default:
		tios.Cflag &^= unix.CRTSCTS
		tios.Iflag &^= unix.IXON | unix.IXOFF
	}
	tios.Cc[unix.VMIN] = 0
	tios.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, tios); err != nil {
		term.Restore(fd, state)
		f.Close()
		return nil, err
	}

	return &Serial{f: f, oldState: state}, nil
}

func (s *Serial) Read(p []byte) (int, error) {
	n, err := s.f.Read(p)
	if err != nil {
		s.broken = true
	}
	return n, err
}

func (s *Serial) Write(p []byte) (int, error) {
	n, err := s.f.Write(p)
	if err != nil {
		s.broken = true
	}
	return n, err
}

func (s *Serial) Close() error {
	fd := int(s.f.Fd())
	if s.oldState != nil {
		term.Restore(fd, s.oldState)
	}
	return s.f.Close()
}

// Drain waits briefly for the kernel's output queue to flush. The exact
// ioctl (TCSBRK/TCDRAIN) is platform-specific; a short sleep is the
// portable fallback the original bridge library itself falls back to
// when a real drain isn't available on a given line discipline.
func (s *Serial) Drain() error {
	time.Sleep(10 * time.Millisecond)
	return nil
}

func (s *Serial) Broken() bool { return s.broken }

// applyBaud maps a requested bit rate onto the termios CBAUD field,
// covering the handful of rates synth hardware of this vintage actually
// uses (the full B0..B4000000 table lives in Daedaluz-goserial's
// port_linux.go if a wider range is ever needed).
func applyBaud(tios *unix.Termios, baud int) {
	var b uint32
	switch baud {
	case 1200:
		b = unix.B1200
	case 2400:
		b = unix.B2400
	case 4800:
		b = unix.B4800
	case 9600:
		b = unix.B9600
	case 19200:
		b = unix.B19200
	case 38400:
		b = unix.B38400
	default:
		b = unix.B9600
	}
	tios.Cflag &^= unix.CBAUD
	tios.Cflag |= b
}
