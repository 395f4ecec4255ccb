package bridge

import "errors"

var (
	// ErrNoMem reports a failed buffer allocation, the condition a
	// NoMemBuffer sentinel stands for. No function in this package
	// returns it.
	ErrNoMem = errors.New("bridge: out of memory")

	// ErrReentrant is returned when a handler attempts to call back
	// into Events or Refresh while Events is already running on this
	// Bridge.
	ErrReentrant = errors.New("bridge: handler re-entered bridge call")

	// ErrNoBuffer reports an operation addressed to a console with no
	// allocated reading buffer. No function in this package returns it:
	// reading buffers are allocated on first use.
	ErrNoBuffer = errors.New("bridge: no reading buffer for console")
)
