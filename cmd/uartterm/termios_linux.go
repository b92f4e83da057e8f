package main

import "github.com/luhtfiimanal/go-uart-console/hal/ptyuart"

func openTermios(device string, baud int) (closableChannel, error) {
	return ptyuart.Open(ptyuart.Config{Device: device, BaudRate: baud})
}
