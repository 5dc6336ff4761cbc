//go:build unix

package hotkey

import (
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalSourceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src, err := NewSignalSource(dir)
	require.NoError(t, err)
	t.Cleanup(src.Stop)

	data, err := os.ReadFile(PIDPath(dir))
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), strings.TrimSpace(string(data)))

	require.NoError(t, Activate(ModeSignal, dir))
	evt := waitEvent(t, src.Events())
	assert.NoError(t, evt.Err)
	assert.Equal(t, "signal", evt.Source)
}

func TestSignalSourceStopRemovesPIDFile(t *testing.T) {
	dir := t.TempDir()
	src, err := NewSignalSource(dir)
	require.NoError(t, err)
	src.Stop()
	_, err = os.Stat(PIDPath(dir))
	assert.True(t, os.IsNotExist(err))
	assert.ErrorIs(t, Activate(ModeSignal, dir), ErrNoInstance)
}
