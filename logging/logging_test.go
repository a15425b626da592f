package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.Nil(t, err)
	require.Equal(t, zapcore.DebugLevel, lvl)
	lvl, err = ParseLevel(" warn ")
	require.Nil(t, err)
	require.Equal(t, zapcore.WarnLevel, lvl)
	_, err = ParseLevel("verbose")
	require.NotNil(t, err)
}

func TestNew(t *testing.T) {
	log, err := New("error", false)
	require.Nil(t, err)
	require.False(t, log.Core().Enabled(zapcore.InfoLevel))
	require.True(t, log.Core().Enabled(zapcore.ErrorLevel))

	_, err = New("loud", true)
	require.NotNil(t, err)
	require.NotNil(t, OrNop(nil))
}
