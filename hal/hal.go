package hal

// Flags is the status-flag word of a UART channel.
type Flags uint32

// Channel status bits.
const (
	// FlagRxIndication is set by the hardware when a byte has arrived in
	// the receive buffer.
	FlagRxIndication Flags = 1 << iota

	// FlagRxAltIndication is the alternative receive indication raised by
	// hardware variants that report arrival on a second flag.
	FlagRxAltIndication

	// FlagTxBusy is set while the transmit path is still draining a
	// previously accepted byte.
	FlagTxBusy
)

// RxIndicationMask covers both receive-indication variants. Readers poll and
// clear the pair together so either variant satisfies a pending read.
const RxIndicationMask = FlagRxIndication | FlagRxAltIndication

// Has reports whether any of the given bits are set.
func (f Flags) Has(bits Flags) bool {
	return f&bits != 0
}

// String returns a human-readable flag list, mainly for logging.
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	s := ""
	if f.Has(FlagRxIndication) {
		s += "+rx"
	}
	if f.Has(FlagRxAltIndication) {
		s += "+rxalt"
	}
	if f.Has(FlagTxBusy) {
		s += "+txbusy"
	}
	if s == "" {
		return "unknown"
	}
	return s[1:]
}

// Channel is the contract a UART peripheral driver exposes to the console
// bridge. The bridge only consumes this interface; it never configures the
// peripheral (baud rate, framing and pin muxing belong to the driver).
//
// Adapters in the subpackages bind the contract to concrete transports:
// simuart (in-memory simulation), ptyuart (tty/pty file descriptors) and
// serialport (OS serial ports).
type Channel interface {
	// Status returns the current status-flag word. It must not block.
	Status() Flags

	// ClearStatus clears the given indication flags. Drivers backed by
	// level-triggered hardware may treat this as a no-op; the bridge calls
	// it after every receive regardless.
	ClearStatus(Flags)

	// Receive reads one byte from the receive buffer. It is only called
	// after Status reported a receive indication. An error here is
	// terminal for the byte (end of stream, device gone).
	Receive() (byte, error)

	// Transmit queues one byte on the transmit path. It returns once the
	// hardware has accepted the request, not once the byte is physically
	// sent; completion is observed through FlagTxBusy.
	Transmit(byte) error
}
