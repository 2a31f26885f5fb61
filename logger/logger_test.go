package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require := require.New(t)

	cases := map[string]LogLevel{
		"":        InfoLevel,
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		" warn ":  WarnLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"fatal":   FatalLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(err, in)
		require.Equal(want, got, in)
	}

	_, err := ParseLevel("verbose")
	require.Error(err)
}

func TestSlogLogger_JSON(t *testing.T) {
	require := require.New(t)
	t.Setenv("ENV", "")

	var buf bytes.Buffer
	l := NewSlogTo(&buf, InfoLevel, false)

	l.Debug("hidden")
	require.Zero(buf.Len())

	l.With("session", "abc").Info("connected", "host", "127.0.0.1")

	var line map[string]any
	require.NoError(json.Unmarshal(buf.Bytes(), &line))
	require.Equal("connected", line["msg"])
	require.Equal("abc", line["session"])
	require.Equal("127.0.0.1", line["host"])
	require.Contains(line, "ts")
	require.NotContains(line, "time")
}

func TestSlogLogger_SetLevelSharedWithChild(t *testing.T) {
	require := require.New(t)
	t.Setenv("ENV", "")

	var buf bytes.Buffer
	l := NewSlogTo(&buf, InfoLevel, false)
	child := l.With("k", "v")

	l.SetLevel(DebugLevel)
	require.Equal(DebugLevel, child.Level())

	child.Debug("visible")
	require.Contains(buf.String(), "visible")

	l.SetLevel(ErrorLevel)
	require.Equal(ErrorLevel, l.Level())
}

func TestZerologLogger(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	l := NewZerolog(&buf, WarnLevel)
	require.Equal(WarnLevel, l.Level())

	l.Info("hidden")
	require.Zero(buf.Len())

	l.With("session", "abc").Warn("refused", "pipeline", "21-1-2")

	var line map[string]any
	require.NoError(json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &line))
	require.Equal("refused", line["message"])
	require.Equal("warn", line["level"])
	require.Equal("abc", line["session"])
	require.Equal("21-1-2", line["pipeline"])

	l.SetLevel(DebugLevel)
	require.Equal(DebugLevel, l.Level())
}

func TestMockLogger_AllowAll(t *testing.T) {
	m := NewMockLogger()
	m.On("Warn", "start refused", mock.Anything).Once()
	m.AllowAll()

	m.With("session", "x").Debug("anything")
	m.Warn("start refused", "pipeline", "21-1-2")

	m.AssertCalled(t, "Warn", "start refused", []any{"pipeline", "21-1-2"})
}
