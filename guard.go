package uartconsole

import "sync"

// Mutex is the mutual-exclusion primitive guarding the write path. The
// console owns the full lifecycle: it calls Init once before first use and
// Deinit when the console closes.
//
// Implementations report failure through errors. An Init failure is
// recoverable and surfaces from Open; failures of the other three operations
// are contract violations and halt the caller.
type Mutex interface {
	Init() error
	Acquire() error
	Release() error
	Deinit() error
}

// schedMutex adapts sync.Mutex to the Mutex contract. It is the default when
// multiple goroutines share the console.
type schedMutex struct {
	mu sync.Mutex
}

func (m *schedMutex) Init() error    { return nil }
func (m *schedMutex) Acquire() error { m.mu.Lock(); return nil }
func (m *schedMutex) Release() error { m.mu.Unlock(); return nil }
func (m *schedMutex) Deinit() error  { return nil }

// noopMutex is the standalone variant: every operation succeeds without
// providing exclusion. Selected when a single execution context owns the
// console.
type noopMutex struct{}

func (noopMutex) Init() error    { return nil }
func (noopMutex) Acquire() error { return nil }
func (noopMutex) Release() error { return nil }
func (noopMutex) Deinit() error  { return nil }

// guard tracks whether its Mutex is live and turns misuse into faults.
type guard struct {
	mutex       Mutex
	initialized bool
}

// init creates the underlying mutex. Calling it on an already initialized
// guard succeeds without touching the mutex again.
func (g *guard) init(m Mutex) error {
	if g.initialized {
		return nil
	}
	if err := m.Init(); err != nil {
		return err
	}
	g.mutex = m
	g.initialized = true
	return nil
}

func (g *guard) acquire() {
	if !g.initialized {
		fault(ComponentGuard, "guard used before init")
	}
	if err := g.mutex.Acquire(); err != nil {
		fault(ComponentGuard, "mutex acquire failed: %v", err)
	}
}

func (g *guard) release() {
	if !g.initialized {
		fault(ComponentGuard, "guard used before init")
	}
	if err := g.mutex.Release(); err != nil {
		fault(ComponentGuard, "mutex release failed: %v", err)
	}
}

// deinit destroys the mutex. The guard is unusable afterwards; a later init
// may revive it.
func (g *guard) deinit() {
	if !g.initialized {
		return
	}
	g.initialized = false
	if err := g.mutex.Deinit(); err != nil {
		fault(ComponentGuard, "mutex deinit failed: %v", err)
	}
}
