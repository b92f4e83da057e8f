package uartconsole

import (
	"runtime"
	"time"

	"github.com/luhtfiimanal/go-uart-console/hal"
)

// putChar hands one byte to the channel. It returns once the hardware has
// accepted the request; physical completion is visible through TxActive.
func (c *Console) putChar(b byte) error {
	return c.ch.Transmit(b)
}

// emit sends one byte through the line discipline. On a bare line feed a
// carriage return goes out first; the discipline history advances only past
// bytes the channel actually accepted.
func (c *Console) emit(b byte) error {
	if c.disc.needsCR(b) {
		if err := c.putChar('\r'); err != nil {
			return err
		}
		c.disc.emitted('\r')
	}
	if err := c.putChar(b); err != nil {
		return err
	}
	c.disc.emitted(b)
	return nil
}

// getChar busy-waits until either receive indication is raised, reads exactly
// one byte and clears both indications. With a configured read timeout the
// wait is bounded and ErrReadTimeout is returned on expiry.
func (c *Console) getChar() (byte, error) {
	var deadline time.Time
	if c.readTimeout > 0 {
		deadline = time.Now().Add(c.readTimeout)
	}
	for !c.ch.Status().Has(hal.RxIndicationMask) {
		if c.readTimeout > 0 && time.Now().After(deadline) {
			return 0, ErrReadTimeout
		}
		runtime.Gosched()
	}
	b, err := c.ch.Receive()
	c.ch.ClearStatus(hal.RxIndicationMask)
	if err != nil {
		return 0, err
	}
	return b, nil
}

// TxActive reports whether the channel is still pushing previously accepted
// bytes onto the wire. It never blocks.
func (c *Console) TxActive() bool {
	return c.ch.Status().Has(hal.FlagTxBusy)
}
