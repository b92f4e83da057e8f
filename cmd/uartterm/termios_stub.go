//go:build !linux

package main

import "errors"

func openTermios(device string, baud int) (closableChannel, error) {
	return nil, errors.New("the termios driver is linux-only")
}
