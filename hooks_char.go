//go:build uartconsole_char && !uartconsole_file

package uartconsole

// Hooks returns the process-default console as the single-character shape.
// Selected by the uartconsole_char build tag.
//
// Hooks faults when no console has been bound.
func Hooks() *CharPort {
	return mustDefault().CharPort()
}
