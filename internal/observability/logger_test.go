package observability

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/openreach/formpilot/internal/config"
)

// syncBuffer adapts zaptest's Buffer into a locked WriteSyncer for Initialize.
func newTestSink() (*zaptest.Buffer, zapcore.WriteSyncer) {
	buf := &zaptest.Buffer{}
	return buf, zapcore.Lock(buf)
}

func TestInitializeConsole(t *testing.T) {
	ResetForTest()
	buf, sink := newTestSink()

	Initialize(config.LoggerConfig{
		Level:       "debug",
		Format:      "console",
		ServiceName: "TestService",
	}, sink)
	GetLogger().Info("This is a test message.")
	Sync()

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "TestService.")
	assert.Contains(t, out, "This is a test message.")
}

func TestInitializeJSON(t *testing.T) {
	ResetForTest()
	buf, sink := newTestSink()

	Initialize(config.LoggerConfig{
		Level:       "info",
		Format:      "json",
		ServiceName: "JSONTest",
	}, sink)
	GetLogger().Warn("This is a JSON message.", zap.String("key", "value"))
	Sync()

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "log output should be valid JSON")
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "JSONTest", entry["logger"])
	assert.Equal(t, "This is a JSON message.", entry["msg"])
	assert.Equal(t, "value", entry["key"])
}

func TestInitializeWritesLogFile(t *testing.T) {
	ResetForTest()
	_, sink := newTestSink()
	logFile := filepath.Join(t.TempDir(), "formpilot.log")

	Initialize(config.LoggerConfig{
		Level:   "debug",
		Format:  "json",
		LogFile: logFile,
		MaxSize: 1,
	}, sink)
	GetLogger().Error("This should go to the file.")
	Sync()

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "This should go to the file.")
}

func TestInitializeOnlyOnce(t *testing.T) {
	ResetForTest()
	buf, sink := newTestSink()

	Initialize(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "First"}, sink)
	first := GetLogger()

	Initialize(config.LoggerConfig{Level: "debug", Format: "console", ServiceName: "Second"}, sink)
	second := GetLogger()

	assert.Equal(t, first, second)
	second.Info("test")
	Sync()

	assert.True(t, strings.Contains(buf.String(), "First"))
	assert.False(t, strings.Contains(buf.String(), "Second"))
}

func TestGetLoggerFallback(t *testing.T) {
	ResetForTest()
	require.NotNil(t, GetLogger())
}

func TestGetLoggerAfterInitialization(t *testing.T) {
	ResetForTest()
	_, sink := newTestSink()
	Initialize(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "GlobalTest"}, sink)

	assert.Equal(t, globalLogger.Load(), GetLogger())
}
