package uartconsole

import (
	"errors"
	"fmt"
)

var (
	// ErrNoChannel is returned by Open when the configuration carries no
	// UART channel.
	ErrNoChannel = errors.New("uartconsole: no channel configured")

	// ErrReadTimeout is returned by the read path when a read deadline is
	// configured and no receive indication arrives in time.
	ErrReadTimeout = errors.New("uartconsole: read timeout")
)

// fault reports an unrecoverable contract violation: the console would
// otherwise continue with inconsistent state, so it halts the caller instead.
func fault(comp Component, format string, args ...any) {
	msg := "uartconsole: " + fmt.Sprintf(format, args...)
	logError(comp, msg)
	panic(msg)
}
