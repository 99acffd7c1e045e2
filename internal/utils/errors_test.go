package utils

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	base := errors.New("boom")

	assert.Equal(t, ExitCodeGeneral, ExitCode(base))
	assert.Equal(t, ExitCodeDecode, ExitCode(WithCode(base, ExitCodeDecode)))

	wrapped := fmt.Errorf("detect: %w", WithCode(base, ExitCodeNoWords))
	assert.Equal(t, ExitCodeNoWords, ExitCode(wrapped))
	assert.ErrorIs(t, wrapped, base)

	assert.NoError(t, WithCode(nil, ExitCodeTimeout))
}

func TestFatalErrorUsesAttachedCode(t *testing.T) {
	var got int
	exit = func(code int) { got = code }
	t.Cleanup(func() { exit = os.Exit })

	FatalError(WithCode(errors.New("deadline"), ExitCodeTimeout), "extract")
	assert.Equal(t, int(ExitCodeTimeout), got)

	FatalError(errors.New("plain"), "extract")
	assert.Equal(t, int(ExitCodeGeneral), got)

	DecodeError("shot.png", errors.New("bad header"))
	assert.Equal(t, int(ExitCodeDecode), got)
}

func TestMultiError(t *testing.T) {
	m := NewMultiError("cells")
	assert.False(t, m.HasErrors())
	assert.Equal(t, "no errors", m.Error())

	m.Add(nil)
	assert.False(t, m.HasErrors())

	sentinel := errors.New("first")
	m.Add(sentinel)
	require.True(t, m.HasErrors())
	assert.Equal(t, "first", m.Error())

	m.Add(errors.New("second"))
	assert.Equal(t, "2 errors occurred: first (and 1 more)", m.Error())
	assert.ErrorIs(t, m, sentinel)
}
