// Command uartterm attaches the local terminal to a serial device through
// the console bridge: keystrokes go out over the UART, received bytes are
// echoed to the screen. Ctrl-] detaches.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/mattn/go-tty"

	uartconsole "github.com/luhtfiimanal/go-uart-console"
	"github.com/luhtfiimanal/go-uart-console/hal"
	"github.com/luhtfiimanal/go-uart-console/hal/serialport"
)

var (
	device  = flag.String("device", "/dev/ttyUSB0", "serial device to attach to")
	baud    = flag.Int("baud", 115200, "line speed in baud")
	termios = flag.Bool("termios", false, "use the raw termios driver (linux only) instead of the portable one")
	raw     = flag.Bool("raw", false, "pass line endings through unmodified")
)

// closableChannel is what both drivers hand back: a channel the bridge can
// use plus the teardown the bridge itself never performs.
type closableChannel interface {
	hal.Channel
	Close() error
}

func openChannel() (closableChannel, error) {
	if *termios {
		return openTermios(*device, *baud)
	}
	return serialport.Open(*device, serialport.Config{BaudRate: *baud})
}

func main() {
	flag.Parse()

	ch, err := openChannel()
	if err != nil {
		log.Fatalf("open channel: %v", err)
	}

	console, err := uartconsole.Init(uartconsole.Config{
		Channel:        ch,
		RawLineEndings: *raw,
	})
	if err != nil {
		ch.Close()
		log.Fatalf("open console: %v", err)
	}

	fmt.Printf("attached to %s at %d baud, Ctrl-] to detach\n", *device, *baud)

	term, err := tty.Open()
	if err != nil {
		log.Fatalf("open terminal: %v", err)
	}
	defer term.Close()

	// Device to screen
	devErr := make(chan error, 1)
	go func() {
		port := console.CharPort()
		out := term.Output()
		for {
			b, err := port.Get()
			if err != nil {
				devErr <- err
				return
			}
			out.Write([]byte{b})
		}
	}()

	// Keyboard to device
	keys := make(chan rune, 8)
	go func() {
		defer close(keys)
		for {
			r, err := term.ReadRune()
			if err != nil {
				return
			}
			keys <- r
		}
	}()

	const escape = 0x1d // Ctrl-]
	stream := console.Stream()
loop:
	for {
		select {
		case err := <-devErr:
			log.Printf("device stream ended: %v", err)
			break loop
		case r, ok := <-keys:
			if !ok || r == escape {
				break loop
			}
			if _, err := stream.WriteString(string(r)); err != nil {
				log.Printf("write failed: %v", err)
				break loop
			}
		}
	}

	console.Close()
	ch.Close()
	fmt.Println("\ndetached")
}
