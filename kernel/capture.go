package kernel

// CaptureTable holds the per-key capture policy the keyboard notifier
// consults on every key event: which (key, shift-state) combinations are
// intercepted, which are both intercepted and passed through to the tty
// (the "T" flag), and which keys are user-defined meta keys.
type CaptureTable struct {
	Capture [NumKeys]uint16 // bit per shift-state nibble value [0,16)
	Passt   [NumKeys]uint16
	IsMeta  [NumKeys]byte // simulated shift bits when this key is held, 0 if not a meta key
}

// NewCaptureTable returns an empty table: nothing captured, no meta keys.
func NewCaptureTable() *CaptureTable { return &CaptureTable{} }

// Clear resets every entry, as CLEAR_KEYS does.
func (c *CaptureTable) Clear() {
	for i := range c.Capture {
		c.Capture[i] = 0
		c.Passt[i] = 0
		c.IsMeta[i] = 0
	}
}

// Set marks (key, shift) as captured; if passThrough is set it is also
// forwarded to the tty (the SET_KEY command's "T" variant).
func (c *CaptureTable) Set(key, shift int, passThrough bool) {
	c.Capture[key] |= 1 << uint(shift)
	if passThrough {
		c.Passt[key] |= 1 << uint(shift)
	} else {
		c.Passt[key] &^= 1 << uint(shift)
	}
}

// Unset clears capture (and pass-through) for (key, shift).
func (c *CaptureTable) Unset(key, shift int) {
	c.Capture[key] &^= 1 << uint(shift)
	c.Passt[key] &^= 1 << uint(shift)
}

// IsCaptured reports whether (key, shift) is captured, and whether it
// should also be passed through.
func (c *CaptureTable) IsCaptured(key, shift int) (captured, passThrough bool) {
	bit := uint16(1) << uint(shift)
	return c.Capture[key]&bit != 0, c.Passt[key]&bit != 0
}

// KeyPipeline implements the key-down decision sequence: one-shot bypass,
// NumLock passthrough for the keypad, meta-key shift simulation, and
// finally capture-table lookup. It holds the small amount of state the
// decision needs between calls (bypass-armed, currently-held meta bits).
type KeyPipeline struct {
	table       *CaptureTable
	bypassArmed bool
	metaHeld    byte
	numLockOn   bool
	leds        int
}

// NewKeyPipeline wires a pipeline to the given capture table.
func NewKeyPipeline(table *CaptureTable) *KeyPipeline {
	return &KeyPipeline{table: table}
}

// ArmBypass arms a one-shot bypass: the next key event is forwarded to
// the tty unconditionally and not captured, matching BYPASS's one-shot
// semantics.
func (p *KeyPipeline) ArmBypass() { p.bypassArmed = true }

// SetLEDs updates the LED/lock state the pipeline reports in KEYSTROKE
// records (NumLock affects keypad handling below).
func (p *KeyPipeline) SetLEDs(leds int) {
	p.leds = leds
	p.numLockOn = leds&0x2 != 0
}

// Decision describes what the pipeline decided to do with one key event.
type Decision struct {
	Forward  bool // pass the key through to the tty line discipline
	Capture  bool // emit a KEYSTROKE record
	Shift    int  // effective shift-state used for capture/record
}

const metaPad = 0 // meta-keypad numlock passthrough handled via Press's keypad range check

// keypadLow/keypadHigh bound the numeric-keypad scan-code range whose
// digits should pass through untouched when NumLock is on, regardless of
// capture table entries (matching the original driver's special case).
const (
	keypadLow  = 71
	keypadHigh = 83
)

// Press runs one key-down event through the pipeline and returns the
// decision plus the effective shift mask used to look up / record it.
func (p *KeyPipeline) Press(key, rawShift int) Decision {
	if p.bypassArmed {
		p.bypassArmed = false
		return Decision{Forward: true, Shift: rawShift}
	}
	if p.numLockOn && key >= keypadLow && key <= keypadHigh {
		return Decision{Forward: true, Shift: rawShift}
	}

	if meta := p.table.IsMeta[key]; meta != 0 {
		// A user-defined meta key toggles its simulated shift bits and is
		// swallowed outright: it never reaches the capture table and is
		// never forwarded to the tty, matching drivers/acsint.c's
		// immediate NOTIFY_STOP after setting the meta flags.
		p.metaHeld |= meta
		return Decision{Shift: rawShift | int(p.metaHeld)}
	}

	shift := rawShift | int(p.metaHeld)
	captured, passThrough := p.table.IsCaptured(key, shift)
	if !captured {
		return Decision{Forward: true, Shift: shift}
	}
	return Decision{Forward: passThrough, Capture: true, Shift: shift}
}

// Release clears any meta bits this key was simulating, mirroring
// ismeta's "held" semantics on key-up.
func (p *KeyPipeline) Release(key int) {
	if meta := p.table.IsMeta[key]; meta != 0 {
		p.metaHeld &^= meta
	}
}
