// Package uartconsole bridges byte-oriented text I/O onto a UART channel,
// the way firmware retargets its standard streams to a debug serial port.
//
// A Console wraps any hal.Channel and adds the three things raw hardware
// lacks: a write-path lock so concurrent writers never interleave, an
// LF to CR+LF line discipline for cooked terminals, and a bounded drain on
// shutdown so buffered output is not cut off mid-wire.
//
// Features:
//   - Works against any hal.Channel: simulated, tty/pty or OS serial port
//   - Three hook shapes (byte-stream, single-character, handle-based),
//     selected per binary with build tags
//   - Whole-buffer write locking, standalone mode for single-context use
//   - LF to CR+LF output rewrite with accepted-byte history (default on)
//   - Bounded transmit drain on Close, with a hard fault when it overruns
//
// Example usage:
//
//	ch, err := serialport.Open("/dev/ttyUSB0", serialport.Config{BaudRate: 115200})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ch.Close()
//
//	console, err := uartconsole.Init(uartconsole.Config{Channel: ch})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer console.Close()
//
//	// The default hook shape is an io.ReadWriter.
//	fmt.Fprintln(uartconsole.Hooks(), "hello over UART")
//
//	buf := make([]byte, 64)
//	n, err := uartconsole.Hooks().Read(buf) // blocks until a full line
//	if err != nil {
//	    log.Println("read failed:", err)
//	}
//	fmt.Printf("got %q", buf[:n])
package uartconsole
