package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
		wantErr  bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&Config{Level: "info", Format: FormatJSON}, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("hook failed")
	require.NoError(t, logger.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"hook failed"`)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hookspec.log")
	var console bytes.Buffer

	logger, err := New(&Config{Level: "debug", Output: OutputBoth, FilePath: path}, &console)
	require.NoError(t, err)

	logger.Info("suite started")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "suite started")
	assert.Contains(t, console.String(), "suite started")
}

func TestNew_Errors(t *testing.T) {
	_, err := New(&Config{Output: OutputFile}, nil)
	assert.Error(t, err)

	_, err = New(&Config{Format: "xml"}, nil)
	assert.Error(t, err)

	_, err = New(&Config{Output: "syslog"}, nil)
	assert.Error(t, err)

	_, err = New(&Config{Level: "loud"}, nil)
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	logger, err := New(nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
