package uartconsole

import "fmt"

// Stream is the byte-stream adapter shape: buffer-oriented writes and
// line-oriented reads, in the form Go code expects from an io.ReadWriter.
//
// Write holds the write-path lock for the whole buffer so concurrent writers
// never interleave. Read takes no lock; the read path is single-consumer.
type Stream struct {
	console *Console
}

// Stream returns the byte-stream adapter for c.
func (c *Console) Stream() *Stream {
	return &Stream{console: c}
}

// Write sends p through the line discipline. It stops at the first byte the
// channel refuses and returns how many bytes of p completed.
func (s *Stream) Write(p []byte) (int, error) {
	c := s.console
	c.guard.acquire()
	defer c.guard.release()
	for i, b := range p {
		if err := c.emit(b); err != nil {
			return i, fmt.Errorf("transmit: %w", err)
		}
	}
	return len(p), nil
}

// WriteString implements io.StringWriter.
func (s *Stream) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// Read fills p one byte at a time and returns early once a line terminator
// arrives. The terminator is included in the count. With no configured read
// timeout and a silent channel, Read blocks until data shows up.
func (s *Stream) Read(p []byte) (int, error) {
	c := s.console
	n := 0
	for n < len(p) {
		b, err := c.getChar()
		if err != nil {
			return n, err
		}
		p[n] = b
		n++
		if b == '\n' || b == '\r' {
			break
		}
	}
	return n, nil
}
