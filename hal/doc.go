// Package hal defines the hardware abstraction the console bridge is built
// on: a byte-oriented UART channel with explicit status flags.
//
// The interface is deliberately narrow. A channel reports readiness through
// a flag word, hands out received bytes one at a time and accepts transmit
// requests without waiting for the wire. Everything above this line (locking,
// line endings, runtime hooks) lives in the root package; everything below it
// (termios, serial port handling, simulation) lives in the adapter
// subpackages.
package hal
