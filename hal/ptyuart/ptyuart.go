//go:build linux

package ptyuart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/luhtfiimanal/go-uart-console/hal"
)

// ErrClosed is returned by Transmit after the channel has been closed.
var ErrClosed = errors.New("ptyuart: channel closed")

// Config holds configuration parameters for opening a tty device.
type Config struct {
	Device   string
	BaudRate int // default 115200
}

// Channel is a hal.Channel backed by a Linux tty or pty file descriptor,
// configured for raw, low-latency, non-buffered operation.
//
// Receive indications come from a zero-timeout poll on the descriptor, the
// transmit-busy flag from the kernel's outgoing-queue count. A self-pipe
// wakes receivers blocked in poll when the channel closes, so reads are
// killable from another goroutine.
type Channel struct {
	fd        int
	file      *os.File
	done      chan struct{}
	closeOnce sync.Once
	pipeR     int // self-pipe read fd
	pipeW     int // self-pipe write fd
}

// Open opens the tty named in cfg and returns it as a channel.
func Open(cfg Config) (*Channel, error) {
	fd, err := syscall.Open(cfg.Device, syscall.O_RDWR|syscall.O_NOCTTY|syscall.O_NONBLOCK, 0666)
	if err != nil {
		return nil, fmt.Errorf("open failed: %w", err)
	}

	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("get termios: %w", err)
	}

	// Raw mode
	termios.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	termios.Oflag &^= unix.OPOST
	termios.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	termios.Cflag &^= unix.CSIZE | unix.PARENB
	termios.Cflag |= unix.CS8

	// Baud rate
	baud := baudToUnix(cfg.BaudRate)
	termios.Cflag &^= unix.CBAUD
	termios.Cflag |= baud

	// VMIN=1, VTIME=0: reads block for exactly one byte
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("set termios: %w", err)
	}

	// Turn back into blocking mode now that config is done
	syscall.SetNonblock(fd, false)

	// Create self-pipe for killability
	pipeFds := make([]int, 2)
	if err := unix.Pipe(pipeFds); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("pipe: %w", err)
	}

	return &Channel{
		fd:    fd,
		file:  os.NewFile(uintptr(fd), cfg.Device),
		done:  make(chan struct{}),
		pipeR: pipeFds[0],
		pipeW: pipeFds[1],
	}, nil
}

// Status implements hal.Channel. A closed channel keeps the receive
// indication raised so blocked readers reach Receive and observe io.EOF.
func (c *Channel) Status() hal.Flags {
	select {
	case <-c.done:
		return hal.FlagRxIndication
	default:
	}
	var f hal.Flags
	pfd := []unix.PollFd{
		{Fd: int32(c.fd), Events: unix.POLLIN},
		{Fd: int32(c.pipeR), Events: unix.POLLIN},
	}
	if _, err := unix.Poll(pfd, 0); err == nil {
		if pfd[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
			f |= hal.FlagRxIndication
		}
		if pfd[1].Revents&unix.POLLIN != 0 {
			f |= hal.FlagRxIndication
		}
	}
	if n, err := unix.IoctlGetInt(c.fd, unix.TIOCOUTQ); err == nil && n > 0 {
		f |= hal.FlagTxBusy
	}
	return f
}

// ClearStatus implements hal.Channel. The indications here are levels derived
// from kernel queues, so there is no latch to clear.
func (c *Channel) ClearStatus(hal.Flags) {}

// Receive implements hal.Channel. It waits in poll for data or a kill signal,
// then reads exactly one byte. The end of the stream (peer gone, channel
// closed) surfaces as io.EOF.
func (c *Channel) Receive() (byte, error) {
	for {
		pfd := []unix.PollFd{
			{Fd: int32(c.fd), Events: unix.POLLIN},
			{Fd: int32(c.pipeR), Events: unix.POLLIN},
		}
		if _, err := unix.Poll(pfd, -1); err != nil {
			if err == unix.EINTR {
				continue
			}
			return 0, err
		}
		// Check killability
		select {
		case <-c.done:
			return 0, io.EOF
		default:
		}
		if pfd[1].Revents&unix.POLLIN != 0 {
			// Drain pipe
			var b [1]byte
			unix.Read(c.pipeR, b[:])
			return 0, io.EOF
		}
		if pfd[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
			var b [1]byte
			n, err := c.file.Read(b[:])
			if err != nil {
				return 0, err
			}
			if n == 0 {
				return 0, io.EOF
			}
			return b[0], nil
		}
	}
}

// Transmit implements hal.Channel. The byte lands in the kernel's outgoing
// queue; completion is observable through the transmit-busy flag.
func (c *Channel) Transmit(b byte) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	buf := [1]byte{b}
	if _, err := c.file.Write(buf[:]); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Close closes the descriptor and unblocks any Receive in flight.
// Safe to call multiple times; subsequent calls are no-ops.
func (c *Channel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		// Wake up poll using self-pipe
		unix.Write(c.pipeW, []byte{1})
		err = c.file.Close()
		unix.Close(c.pipeR)
		unix.Close(c.pipeW)
	})
	return err
}

func baudToUnix(baud int) uint32 {
	switch baud {
	case 9600:
		return unix.B9600
	case 19200:
		return unix.B19200
	case 38400:
		return unix.B38400
	case 57600:
		return unix.B57600
	case 115200:
		return unix.B115200
	case 230400:
		return unix.B230400
	default:
		return unix.B115200 // fallback
	}
}
