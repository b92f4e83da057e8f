package uartconsole

import "sync/atomic"

var defaultConsole atomic.Pointer[Console]

// Bind installs c as the process-default console behind the Hooks surface.
// Binding nil removes the default. The previous default, if any, keeps
// working for callers that already hold it.
func Bind(c *Console) {
	defaultConsole.Store(c)
	logDebug(ComponentHooks, "default console bound", "bound", c != nil)
}

// Default returns the process-default console, or nil when none is bound.
func Default() *Console {
	return defaultConsole.Load()
}

// mustDefault is the Hooks entry check: using the hook surface without a
// bound console is a wiring error, not a runtime condition.
func mustDefault() *Console {
	c := Default()
	if c == nil {
		fault(ComponentHooks, "no default console bound")
	}
	return c
}
