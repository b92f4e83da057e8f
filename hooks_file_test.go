//go:build uartconsole_file

package uartconsole

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luhtfiimanal/go-uart-console/hal/simuart"
)

func TestHooks_FileShape(t *testing.T) {
	t.Cleanup(func() { Bind(nil) })

	ch := simuart.New(simuart.Config{})
	_, err := Init(Config{Channel: ch})
	require.NoError(t, err)

	require.Equal(t, 3, Hooks().Write(HandleStdout, []byte("hi\n")))
	require.Equal(t, "hi\r\n", string(ch.Transmitted()))

	ch.Feed([]byte("in\n"))
	buf := make([]byte, 8)
	require.Equal(t, 3, Hooks().Read(HandleStdin, buf))
	require.Equal(t, "in\n", string(buf[:3]))
}

func TestHooks_FileShapeUnboundFaults(t *testing.T) {
	Bind(nil)
	require.PanicsWithValue(t, "uartconsole: no default console bound", func() { Hooks() })
}
