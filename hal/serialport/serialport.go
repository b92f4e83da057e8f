package serialport

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/luhtfiimanal/go-uart-console/hal"
)

// ErrClosed is returned by Transmit after the channel has been closed.
var ErrClosed = errors.New("serialport: channel closed")

// Config holds configuration parameters for opening a serial port.
type Config struct {
	BaudRate int // default 115200
}

// Channel is a hal.Channel backed by an operating-system serial port.
//
// The OS exposes neither the peripheral's status register nor its FIFO
// level, so both indications are synthesized: receive indications come from
// short timed reads into a pending buffer, and the transmit-busy window is
// modelled from the configured baud rate at 10 wire bits per byte.
type Channel struct {
	mu        sync.Mutex
	port      serial.Port
	pending   []byte
	scratch   [64]byte
	rxErr     error
	byteTime  time.Duration
	busyUntil time.Time
	closed    bool
	closeOnce sync.Once
}

// Open opens the named serial port in 8N1 framing at the configured baud
// rate and returns it as a channel.
func Open(device string, cfg Config) (*Channel, error) {
	baud := cfg.BaudRate
	if baud == 0 {
		baud = 115200
	}
	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial port: %w", err)
	}
	return &Channel{
		port:     port,
		byteTime: time.Duration(10 * int64(time.Second) / int64(baud)),
	}, nil
}

// Status implements hal.Channel. A closed channel keeps the receive
// indication raised so blocked readers reach Receive and observe io.EOF.
func (c *Channel) Status() hal.Flags {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return hal.FlagRxIndication
	}
	if len(c.pending) == 0 && c.rxErr == nil {
		if err := c.port.SetReadTimeout(time.Millisecond); err == nil {
			n, err := c.port.Read(c.scratch[:])
			if n > 0 {
				c.pending = append(c.pending, c.scratch[:n]...)
			}
			if err != nil {
				c.rxErr = err
			}
		}
	}
	var f hal.Flags
	if len(c.pending) > 0 || c.rxErr != nil {
		f |= hal.FlagRxIndication
	}
	if time.Now().Before(c.busyUntil) {
		f |= hal.FlagTxBusy
	}
	return f
}

// ClearStatus implements hal.Channel. The synthesized indications are levels,
// so there is no latch to clear.
func (c *Channel) ClearStatus(hal.Flags) {}

// Receive implements hal.Channel. Buffered bytes are served first; an empty
// buffer falls back to short timed reads so the channel lock is never held
// across a long wait.
func (c *Channel) Receive() (byte, error) {
	for {
		c.mu.Lock()
		if len(c.pending) > 0 {
			b := c.pending[0]
			c.pending = c.pending[1:]
			c.mu.Unlock()
			return b, nil
		}
		if c.rxErr != nil {
			err := c.rxErr
			c.mu.Unlock()
			return 0, err
		}
		if c.closed {
			c.mu.Unlock()
			return 0, io.EOF
		}
		if err := c.port.SetReadTimeout(time.Millisecond); err != nil {
			c.mu.Unlock()
			return 0, err
		}
		n, err := c.port.Read(c.scratch[:1])
		if err != nil {
			c.rxErr = err
			c.mu.Unlock()
			return 0, err
		}
		if n > 0 {
			b := c.scratch[0]
			c.mu.Unlock()
			return b, nil
		}
		c.mu.Unlock()
	}
}

// Transmit implements hal.Channel. Each accepted byte extends the modelled
// busy window so drain logic sees a wire emptying at line rate.
func (c *Channel) Transmit(b byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	buf := [1]byte{b}
	if _, err := c.port.Write(buf[:]); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	now := time.Now()
	if c.busyUntil.Before(now) {
		c.busyUntil = now
	}
	c.busyUntil = c.busyUntil.Add(c.byteTime)
	return nil
}

// Close drains buffered output to the wire and closes the port, unblocking
// any Receive in flight. Safe to call multiple times; subsequent calls are
// no-ops.
func (c *Channel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		c.port.Drain()
		err = c.port.Close()
	})
	return err
}
