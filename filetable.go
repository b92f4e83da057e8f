package uartconsole

import "runtime"

// Well-known handles of the file-operation adapter shape.
const (
	HandleStdin  = 0
	HandleStdout = 1
	HandleStderr = 2
)

// FileTable is the handle-based adapter shape. There is no filesystem behind
// it: every open lands on the console, writes are accepted on the standard
// output handles, reads on the standard input handle, and the remaining
// operations answer with fixed values that mark the handles as plain
// non-seekable character devices.
//
// Results are integer codes rather than errors, matching the convention of
// the low-level file hooks this shape backs: -1 rejects an operation, 0
// reports plain success.
type FileTable struct {
	stream Stream
}

// FileTable returns the handle-based adapter for c.
func (c *Console) FileTable() *FileTable {
	return &FileTable{stream: Stream{console: c}}
}

// Open maps any name and mode onto the console and hands out the standard
// output handle.
func (t *FileTable) Open(name string, mode int) int {
	return HandleStdout
}

// Close always succeeds; handles are not real resources.
func (t *FileTable) Close(handle int) int {
	return 0
}

// Write sends p to the console. Only the standard output handles accept
// writes. It returns the number of bytes that completed, or -1 for a handle
// that cannot be written.
func (t *FileTable) Write(handle int, p []byte) int {
	if handle != HandleStdout && handle != HandleStderr {
		return -1
	}
	n, _ := t.stream.Write(p)
	return n
}

// Read fills p from the console. Only the standard input handle can be read.
// It returns the number of bytes stored, or -1 for a handle that cannot be
// read.
func (t *FileTable) Read(handle int, p []byte) int {
	if handle != HandleStdin {
		return -1
	}
	n, _ := t.stream.Read(p)
	return n
}

// Seek rejects repositioning; the console is not seekable.
func (t *FileTable) Seek(handle int, offset int64) int {
	return -1
}

// Length reports a zero-length backing store.
func (t *FileTable) Length(handle int) int64 {
	return 0
}

// IsTTY reports the handles as non-interactive.
func (t *FileTable) IsTTY(handle int) bool {
	return false
}

// CommandString reports an empty command line.
func (t *FileTable) CommandString() string {
	return ""
}

// Exit never returns. The caller is parked in a yield loop; code is ignored.
func (t *FileTable) Exit(code int) {
	for {
		runtime.Gosched()
	}
}
