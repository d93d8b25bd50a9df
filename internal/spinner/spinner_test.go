package spinner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartNonTerminalIsNoOp(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "not-a-tty"))
	require.NoError(t, err)
	defer f.Close()

	stop := Start(f, "working")
	require.NotNil(t, stop)
	stop()
	stop() // stopping twice must be safe

	info, err := f.Stat()
	require.NoError(t, err)
	require.Zero(t, info.Size(), "no animation frames written to a non-terminal")
}
