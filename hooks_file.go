//go:build uartconsole_file

package uartconsole

// Hooks returns the process-default console as the handle-based shape.
// Selected by the uartconsole_file build tag, which wins if combined with
// uartconsole_char.
//
// Hooks faults when no console has been bound.
func Hooks() *FileTable {
	return mustDefault().FileTable()
}
