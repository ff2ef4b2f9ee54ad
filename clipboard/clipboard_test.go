package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubSystem(t *testing.T, err error) *string {
	t.Helper()
	var got string
	prev := systemCopy
	systemCopy = func(s string) error {
		got = s
		return err
	}
	t.Cleanup(func() { systemCopy = prev })
	return &got
}

func stubTerminal(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := terminal
	terminal = &buf
	t.Cleanup(func() { terminal = prev })
	return &buf
}

func TestOSC52UnsupportedOnDumbTerminal(t *testing.T) {
	t.Setenv("TERM", "dumb")
	assert.False(t, osc52Supported())

	t.Setenv("TERM", "")
	assert.False(t, osc52Supported())
}

func TestWriteOSC52(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm-256color")

	var buf bytes.Buffer
	require.NoError(t, writeOSC52(&buf, "Trial 2: S1 - Trial 2 wav"))
	assert.Contains(t, buf.String(), "\x1b]52;c;")
	assert.Contains(t, buf.String(), base64.StdEncoding.EncodeToString([]byte("Trial 2: S1 - Trial 2 wav")))

	t.Setenv("TMUX", "/tmp/tmux-1000/default,1,0")
	buf.Reset()
	require.NoError(t, writeOSC52(&buf, "x"))
	assert.Contains(t, buf.String(), "\x1bPtmux;")
}

func TestCopyFallsBackToOSC52(t *testing.T) {
	t.Setenv("TERM", "xterm")
	t.Setenv("TMUX", "")
	stubSystem(t, errors.New("no clipboard utilities available"))
	buf := stubTerminal(t)

	require.NoError(t, Copy("hello"))
	assert.Contains(t, buf.String(), base64.StdEncoding.EncodeToString([]byte("hello")))
}

func TestCopyReportsWhenNothingWorks(t *testing.T) {
	t.Setenv("TERM", "dumb")
	stubSystem(t, errors.New("no clipboard utilities available"))
	stubTerminal(t)

	assert.Error(t, Copy("hello"))
}
