package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeKVs(t *testing.T) {
	got := sanitizeKVs([]interface{}{"api_key", "sk-123", "input_tokens", 42, "purpose", "plan"})
	assert.Equal(t, []interface{}{"api_key", "[REDACTED]", "input_tokens", 42, "purpose", "plan"}, got)
}

func TestSanitizeKVsOddLength(t *testing.T) {
	got := sanitizeKVs([]interface{}{"a", 1, "dangling"})
	assert.Equal(t, []interface{}{"a", 1, "dangling"}, got)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"", false},
		{"debug", false},
		{"WARN", false},
		{"loud", true},
	}
	for _, tt := range tests {
		_, err := parseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestNewWithOptionsWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lumi.log")
	l, err := NewWithOptions(Options{Mode: "production", Level: "info", Path: path})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("session finished", "correct", 3)
	l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, "session finished"))
	assert.False(t, strings.Contains(out, "hidden"))
}

func TestNop(t *testing.T) {
	l := Nop()
	l.With("k", "v").Warn("nothing happens")
}
