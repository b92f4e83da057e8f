// Package serialport adapts an operating-system serial port to the
// hal.Channel contract, portably across Linux, macOS and Windows.
//
// It needs real hardware on the far end and so carries no tests of its own;
// the contract-level behavior is covered by the simuart and ptyuart suites.
package serialport
