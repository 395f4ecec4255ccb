package synth

import (
	"io"
	"os"
	"os/exec"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// Pipe is a synth Transport backed by a forked child process talking
// over stdin/stdout, for software synthesizers invoked as a command
// (e.g. "espeakup" or a vendor's software TTS binary), matching
// pss_openv/pss_open.
type Pipe struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	broken int32
	sigCh  chan os.Signal
}

// OpenPipe forks argv[0] with the remaining elements as arguments,
// connecting its stdin/stdout to two pipes, and installs a SIGPIPE
// handler that marks the transport broken instead of killing the caller,
// mirroring sig_h.
func OpenPipe(argv []string) (*Pipe, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	stdinW, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdoutR, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	p := &Pipe{
		cmd:    cmd,
		stdin:  stdinW,
		stdout: stdoutR,
		sigCh:  make(chan os.Signal, 1),
	}
	signal.Notify(p.sigCh, syscall.SIGPIPE)
	go p.watchSigpipe()
	return p, nil
}

func (p *Pipe) watchSigpipe() {
	for range p.sigCh {
		atomic.StoreInt32(&p.broken, 1)
	}
}

func (p *Pipe) Read(b []byte) (int, error) {
	n, err := p.stdout.Read(b)
	if err != nil {
		atomic.StoreInt32(&p.broken, 1)
	}
	return n, err
}

func (p *Pipe) Write(b []byte) (int, error) {
	n, err := p.stdin.Write(b)
	if err != nil {
		atomic.StoreInt32(&p.broken, 1)
	}
	return n, err
}

func (p *Pipe) Close() error {
	signal.Stop(p.sigCh)
	close(p.sigCh)
	p.stdin.Close()
	p.stdout.Close()
	_ = p.cmd.Process.Kill()
	return p.cmd.Wait()
}

func (p *Pipe) Drain() error { return nil }

func (p *Pipe) Broken() bool { return atomic.LoadInt32(&p.broken) != 0 }
