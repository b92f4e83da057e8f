//go:build !uartconsole_char && !uartconsole_file

package uartconsole

// Hooks returns the process-default console as the byte-stream shape. This
// is the default hook surface; the uartconsole_char and uartconsole_file
// build tags swap it for the other shapes, one shape per binary.
//
// Hooks faults when no console has been bound.
func Hooks() *Stream {
	return mustDefault().Stream()
}
