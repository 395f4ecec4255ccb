// Package clicks is a thin, deliberately opaque interface onto the
// teletype-clicks sound module: this repository treats it strictly as an
// external collaborator addressed only through the intercept device's
// wire commands (CLICK, CR, NOTES, SOUNDS*), never reimplementing its
// sound-generation internals.
package clicks

import "github.com/eklhad/acsgo/kernel"

// Note is one tone in a NOTES sequence: frequency in hertz and duration
// in milliseconds, matching the wire payload ttyclicks.c expects.
type Note struct {
	HZ   int
	MSec int
}

// Sink is the sound-effect surface the bridge and daemon call into; it
// never needs to know whether clicks are produced by a PC speaker driver,
// a sound card, or nothing at all.
type Sink interface {
	Click()
	CR()
	Swoop()
	Notes(notes []Note)
	Bell()
	HighBeeps()
	Buzz()
}

// DeviceSink implements Sink by writing the corresponding control command
// to an intercept Device, exactly the shape of the original's ioctl-style
// sound calls.
type DeviceSink struct {
	dev *kernel.Device
}

// NewDeviceSink wraps dev.
func NewDeviceSink(dev *kernel.Device) *DeviceSink { return &DeviceSink{dev: dev} }

func (s *DeviceSink) Click()     { _ = s.dev.Write(kernel.CmdClick) }
func (s *DeviceSink) CR()        { _ = s.dev.Write(kernel.CmdCR) }
func (s *DeviceSink) Swoop()     { _ = s.dev.Write(kernel.CmdSounds, 1) }
func (s *DeviceSink) Bell()      { _ = s.dev.Write(kernel.CmdSounds, 2) }
func (s *DeviceSink) HighBeeps() { _ = s.dev.Write(kernel.CmdSounds, 3) }
func (s *DeviceSink) Buzz()      { _ = s.dev.Write(kernel.CmdSounds, 4) }

func (s *DeviceSink) Notes(notes []Note) {
	args := make([]int, 0, len(notes)*2)
	for _, n := range notes {
		args = append(args, n.HZ, n.MSec)
	}
	_ = s.dev.Write(kernel.CmdNotes, args...)
}

// NoopSink discards every call, used when no sound hardware is
// configured.
type NoopSink struct{}

func (NoopSink) Click()         {}
func (NoopSink) CR()            {}
func (NoopSink) Swoop()         {}
func (NoopSink) Notes(_ []Note) {}
func (NoopSink) Bell()          {}
func (NoopSink) HighBeeps()     {}
func (NoopSink) Buzz()          {}

var _ Sink = (*DeviceSink)(nil)
var _ Sink = NoopSink{}
