package uartconsole

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luhtfiimanal/go-uart-console/hal/simuart"
)

// fakeMutex counts lifecycle calls and fails on demand.
type fakeMutex struct {
	initErr    error
	acquireErr error
	releaseErr error
	deinitErr  error

	inits    int
	acquires int
	releases int
	deinits  int
}

func (m *fakeMutex) Init() error    { m.inits++; return m.initErr }
func (m *fakeMutex) Acquire() error { m.acquires++; return m.acquireErr }
func (m *fakeMutex) Release() error { m.releases++; return m.releaseErr }
func (m *fakeMutex) Deinit() error  { m.deinits++; return m.deinitErr }

func TestGuard_InitIdempotent(t *testing.T) {
	fm := &fakeMutex{}
	var g guard
	require.NoError(t, g.init(fm))
	require.NoError(t, g.init(fm))
	require.Equal(t, 1, fm.inits, "second init must not touch the mutex")
}

func TestGuard_UseBeforeInitFaults(t *testing.T) {
	var g guard
	require.PanicsWithValue(t, "uartconsole: guard used before init", func() { g.acquire() })
	require.PanicsWithValue(t, "uartconsole: guard used before init", func() { g.release() })
}

func TestGuard_DeinitBeforeInitIsNoop(t *testing.T) {
	var g guard
	require.NotPanics(t, func() { g.deinit() })
}

func TestGuard_WholeBufferHeldOnce(t *testing.T) {
	fm := &fakeMutex{}
	ch := simuart.New(simuart.Config{})
	c, err := Open(Config{Channel: ch, Mutex: fm})
	require.NoError(t, err)

	_, err = c.Stream().Write([]byte("one long buffer with\nseveral\nlines\n"))
	require.NoError(t, err)
	require.Equal(t, 1, fm.acquires, "write path must lock once per buffer")
	require.Equal(t, 1, fm.releases)

	_, err = c.Stream().Write([]byte("second"))
	require.NoError(t, err)
	require.Equal(t, 2, fm.acquires)
	require.Equal(t, 2, fm.releases)
}

func TestGuard_ReadPathUnguarded(t *testing.T) {
	fm := &fakeMutex{}
	ch := simuart.New(simuart.Config{})
	ch.Feed([]byte("line\n"))
	c, err := Open(Config{Channel: ch, Mutex: fm})
	require.NoError(t, err)

	buf := make([]byte, 16)
	n, err := c.Stream().Read(buf)
	require.NoError(t, err)
	require.Equal(t, "line\n", string(buf[:n]))
	require.Zero(t, fm.acquires, "read path must not take the write lock")
}

func TestGuard_CharPortAddsNoLocking(t *testing.T) {
	fm := &fakeMutex{}
	ch := simuart.New(simuart.Config{})
	ch.Feed([]byte{'r'})
	c, err := Open(Config{Channel: ch, Mutex: fm})
	require.NoError(t, err)

	require.NoError(t, c.CharPort().Put('w'))
	_, err = c.CharPort().Get()
	require.NoError(t, err)
	require.Zero(t, fm.acquires, "single-character shape must not lock")
}

func TestGuard_AcquireFailureFaults(t *testing.T) {
	fm := &fakeMutex{acquireErr: errAssert("lock gone")}
	ch := simuart.New(simuart.Config{})
	c, err := Open(Config{Channel: ch, Mutex: fm})
	require.NoError(t, err)

	require.PanicsWithValue(t, "uartconsole: mutex acquire failed: lock gone", func() {
		c.Stream().Write([]byte("x"))
	})
}

func TestGuard_ReleaseFailureFaults(t *testing.T) {
	fm := &fakeMutex{releaseErr: errAssert("lock gone")}
	ch := simuart.New(simuart.Config{})
	c, err := Open(Config{Channel: ch, Mutex: fm})
	require.NoError(t, err)

	require.PanicsWithValue(t, "uartconsole: mutex release failed: lock gone", func() {
		c.Stream().Write([]byte("x"))
	})
}

func TestGuard_DeinitFailureFaults(t *testing.T) {
	fm := &fakeMutex{deinitErr: errAssert("kernel object stuck")}
	c, err := Open(Config{Channel: simuart.New(simuart.Config{}), Mutex: fm})
	require.NoError(t, err)

	require.PanicsWithValue(t, "uartconsole: mutex deinit failed: kernel object stuck", func() {
		c.Close()
	})
}

func TestGuard_StandaloneWritesWork(t *testing.T) {
	ch := simuart.New(simuart.Config{})
	c, err := Open(Config{Channel: ch, Standalone: true})
	require.NoError(t, err)

	n, err := c.Stream().Write([]byte("solo"))
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, "solo", string(ch.Transmitted()))
}

// errAssert is a throwaway error type with a stable message.
type errAssert string

func (e errAssert) Error() string { return string(e) }
