package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" Warning ", LevelWarn},
		{"error", LevelError},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "ParseLevel(%q)", tt.in)
	}
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn)
	l.SetOutput(&buf)

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)
	l.Error("shown %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 3")
	assert.Contains(t, out, "[ERROR] shown 4")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestLogger_NoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug)
	l.SetOutput(&buf)
	l.now = func() time.Time { return time.Date(2024, 1, 1, 12, 30, 45, 123000000, time.UTC) }

	l.Info("jd=%.2f", 2451545.0)

	assert.Equal(t, "12:30:45.123 [INFO] jd=2451545.00\n", buf.String())
}

func TestLogger_Enabled(t *testing.T) {
	l := New(LevelInfo)
	assert.False(t, l.Enabled(LevelDebug))
	assert.True(t, l.Enabled(LevelError))

	l.SetLevel(LevelDebug)
	assert.True(t, l.Enabled(LevelDebug))
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing happens")
	assert.False(t, l.Enabled(LevelError))
}
