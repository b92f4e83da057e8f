// Package ptyuart adapts a Linux tty or pty file descriptor to the
// hal.Channel contract using raw syscall-based I/O.
//
// The device is switched to raw mode (no echo, no canonical processing, no
// output post-processing) so bytes cross the descriptor unmodified and the
// console bridge stays in charge of line endings. A self-pipe makes blocked
// receives killable from another goroutine.
//
// This package does **not** support Windows.
package ptyuart
