package uartconsole

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/luhtfiimanal/go-uart-console/hal"
)

// Config describes a console before it is opened.
type Config struct {
	// Channel is the UART the console bridges to. Required.
	Channel hal.Channel

	// Mutex substitutes the write-path lock. Leave nil for the default:
	// a scheduler-backed mutex, or a no-op lock when Standalone is set.
	Mutex Mutex

	// Standalone declares that a single execution context owns the
	// console, so the write path needs no real exclusion. Ignored when
	// Mutex is set.
	Standalone bool

	// RawLineEndings disables the LF to CR+LF rewrite on output. The zero
	// value keeps the rewrite on, which is what cooked terminals expect.
	RawLineEndings bool

	// ReadTimeout bounds how long a read waits for a receive indication.
	// Zero or negative means wait forever.
	ReadTimeout time.Duration

	// Logger overrides the package logger for this console's records.
	Logger *slog.Logger
}

// Console bridges byte-oriented text I/O onto a UART channel. It owns the
// write-path lock and the line-ending discipline; the channel itself stays
// caller-owned and is never closed by the console.
type Console struct {
	ch          hal.Channel
	guard       guard
	disc        lineDiscipline
	readTimeout time.Duration
	logger      *slog.Logger
	closeOnce   sync.Once
}

func (c *Console) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.With(slog.String("component", string(ComponentConsole))).Debug(msg, args...)
		return
	}
	logDebug(ComponentConsole, msg, args...)
}

// Drain budget applied by Close: a generous bound for flushing a full
// 256-byte transmit FIFO at 9600 baud, checked in one-millisecond slices.
// Package-scoped so tests can tighten it.
var (
	drainBudgetMs = 1000
	drainSlice    = time.Millisecond
)

// Open binds a console to cfg.Channel. It creates and initializes the
// write-path mutex; a mutex creation failure is returned, not retried.
func Open(cfg Config) (*Console, error) {
	if cfg.Channel == nil {
		return nil, ErrNoChannel
	}
	m := cfg.Mutex
	if m == nil {
		if cfg.Standalone {
			m = noopMutex{}
		} else {
			m = &schedMutex{}
		}
	}
	c := &Console{
		ch:          cfg.Channel,
		disc:        lineDiscipline{enabled: !cfg.RawLineEndings},
		readTimeout: cfg.ReadTimeout,
		logger:      cfg.Logger,
	}
	if err := c.guard.init(m); err != nil {
		return nil, fmt.Errorf("init write mutex: %w", err)
	}
	c.debug("console opened",
		"standalone", cfg.Standalone,
		"raw_line_endings", cfg.RawLineEndings,
	)
	return c, nil
}

// Init opens a console and installs it as the process-default used by the
// runtime hook surface. Most programs call this once at startup.
func Init(cfg Config) (*Console, error) {
	c, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	Bind(c)
	return c, nil
}

// Close waits for the transmit path to drain, then tears down the write-path
// mutex. The wait is bounded by the drain budget; a transmit path still busy
// when the budget runs out is a contract violation and faults, but the mutex
// is torn down regardless. Close is idempotent and never closes the channel.
func (c *Console) Close() error {
	c.closeOnce.Do(func() {
		defer c.guard.deinit()
		remaining := drainBudgetMs
		for remaining > 0 {
			if !c.TxActive() {
				break
			}
			time.Sleep(drainSlice)
			remaining--
		}
		if remaining == 0 && c.TxActive() {
			fault(ComponentConsole, "transmit path still busy after %dms drain budget", drainBudgetMs)
		}
		c.debug("console closed", "drain_budget_left_ms", remaining)
	})
	return nil
}
