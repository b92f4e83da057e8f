package uartconsole

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luhtfiimanal/go-uart-console/hal/simuart"
)

func TestOpen_RequiresChannel(t *testing.T) {
	_, err := Open(Config{})
	require.ErrorIs(t, err, ErrNoChannel)
}

func TestOpen_MutexInitFailurePropagates(t *testing.T) {
	boom := errors.New("no kernel objects left")
	fm := &fakeMutex{initErr: boom}
	_, err := Open(Config{Channel: simuart.New(simuart.Config{}), Mutex: fm})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, fm.inits, "creation is not retried")
	require.Zero(t, fm.deinits)
}

func TestConsole_TxActiveTracksWire(t *testing.T) {
	ch := simuart.New(simuart.Config{ByteTime: 40 * time.Millisecond})
	c, err := Open(Config{Channel: ch})
	require.NoError(t, err)

	require.False(t, c.TxActive(), "idle console reports an active transmit path")

	require.NoError(t, c.CharPort().Put('x'))
	require.True(t, c.TxActive(), "accepted byte not reflected while draining")

	require.Eventually(t, func() bool { return !c.TxActive() },
		time.Second, time.Millisecond, "transmit path never went idle")
}

func TestClose_ImmediateWhenIdle(t *testing.T) {
	fm := &fakeMutex{}
	c, err := Open(Config{Channel: simuart.New(simuart.Config{}), Mutex: fm})
	require.NoError(t, err)

	start := time.Now()
	require.NoError(t, c.Close())
	require.Less(t, time.Since(start), 200*time.Millisecond)
	require.Equal(t, 1, fm.deinits)
}

func TestClose_WaitsForDrain(t *testing.T) {
	ch := simuart.New(simuart.Config{ByteTime: 4 * time.Millisecond})
	c, err := Open(Config{Channel: ch})
	require.NoError(t, err)

	_, err = c.Stream().Write([]byte("0123456789"))
	require.NoError(t, err)
	require.True(t, c.TxActive())

	start := time.Now()
	require.NoError(t, c.Close())
	elapsed := time.Since(start)

	require.False(t, c.TxActive(), "close returned with the wire still busy")
	require.GreaterOrEqual(t, elapsed, 20*time.Millisecond, "close did not wait for the drain")
	require.Less(t, elapsed, 900*time.Millisecond, "close overshot the modelled drain")
}

func TestClose_FaultsWhenBudgetExhausted(t *testing.T) {
	old := drainBudgetMs
	drainBudgetMs = 20
	t.Cleanup(func() { drainBudgetMs = old })

	fm := &fakeMutex{}
	ch := simuart.New(simuart.Config{})
	ch.ForceTxBusy(true)
	c, err := Open(Config{Channel: ch, Mutex: fm})
	require.NoError(t, err)

	require.PanicsWithValue(t,
		"uartconsole: transmit path still busy after 20ms drain budget",
		func() { c.Close() })

	// The teardown still ran: the mutex is gone and the write path now
	// trips the use-before-init check.
	require.Equal(t, 1, fm.deinits)
	require.PanicsWithValue(t, "uartconsole: guard used before init", func() {
		c.Stream().Write([]byte("late"))
	})
}

func TestClose_Idempotent(t *testing.T) {
	fm := &fakeMutex{}
	c, err := Open(Config{Channel: simuart.New(simuart.Config{}), Mutex: fm})
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	require.Equal(t, 1, fm.deinits)
}

func TestConsole_LoggerOverride(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c, err := Open(Config{
		Channel: simuart.New(simuart.Config{}),
		Logger:  logger,
	})
	require.NoError(t, err)
	require.NoError(t, c.Close())

	out := buf.String()
	require.Contains(t, out, "console opened")
	require.Contains(t, out, "console closed")
	require.Contains(t, out, "component=console")
}

func TestConsole_WriteAfterCloseFaults(t *testing.T) {
	c, err := Open(Config{Channel: simuart.New(simuart.Config{})})
	require.NoError(t, err)
	require.NoError(t, c.Close())

	require.PanicsWithValue(t, "uartconsole: guard used before init", func() {
		c.Stream().Write([]byte("x"))
	})
}
