package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))

	var buf bytes.Buffer
	logger := New("debug", "text", &buf)
	ctx := WithLogger(context.Background(), logger)
	FromContext(ctx).Debug("workspace started", "workspace", "a")
	assert.Contains(t, buf.String(), "workspace=a")
}

func TestNew(t *testing.T) {
	var testCases = []struct {
		description string
		level       string
		format      string
		logAt       slog.Level
		expectEmpty bool
		expect      string
	}{
		{description: "default level drops info", level: "", format: "text", logAt: slog.LevelInfo, expectEmpty: true},
		{description: "warn passes default level", level: "", format: "text", logAt: slog.LevelWarn, expect: "level=WARN"},
		{description: "json format", level: "info", format: "JSON", logAt: slog.LevelInfo, expect: `"level":"INFO"`},
		{description: "error level drops warn", level: "error", format: "text", logAt: slog.LevelWarn, expectEmpty: true},
	}
	for _, testCase := range testCases {
		var buf bytes.Buffer
		logger := New(testCase.level, testCase.format, &buf)
		logger.Log(context.Background(), testCase.logAt, "message")
		if testCase.expectEmpty {
			assert.Empty(t, buf.String(), testCase.description)
			continue
		}
		assert.Contains(t, buf.String(), testCase.expect, testCase.description)
	}
}
