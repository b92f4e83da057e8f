package uartconsole

// lineDiscipline rewrites bare line feeds into carriage return + line feed on
// the transmit path, so cooked terminals render each line at column zero.
//
// prev tracks the last byte that actually reached the channel, not the last
// byte requested: when the injected carriage return is accepted but the line
// feed afterwards fails, the history must record the carriage return so a
// retried line feed is not doubled up.
type lineDiscipline struct {
	enabled bool
	prev    byte
}

// needsCR reports whether b must be preceded by a carriage return.
func (d *lineDiscipline) needsCR(b byte) bool {
	return d.enabled && b == '\n' && d.prev != '\r'
}

// emitted records a byte accepted by the channel.
func (d *lineDiscipline) emitted(b byte) {
	if d.enabled {
		d.prev = b
	}
}
