package uartconsole

import "io"

// CharPort is the single-character adapter shape: one byte in, one byte out,
// and every failure collapses to io.EOF. Callers that need the underlying
// error use the Stream shape instead.
//
// The shape adds no locking of its own; exclusion, if any, belongs to the
// caller's layer.
type CharPort struct {
	console *Console
}

// CharPort returns the single-character adapter for c.
func (c *Console) CharPort() *CharPort {
	return &CharPort{console: c}
}

// Put sends one byte through the line discipline.
func (p *CharPort) Put(b byte) error {
	if err := p.console.emit(b); err != nil {
		return io.EOF
	}
	return nil
}

// Get blocks for one received byte.
func (p *CharPort) Get() (byte, error) {
	b, err := p.console.getChar()
	if err != nil {
		return 0, io.EOF
	}
	return b, nil
}
