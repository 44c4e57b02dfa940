package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crater/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestLogger_InfoAndWarn(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)

	lg.Info("checking out _deps/foo")
	lg.Warn("ambiguous remote")

	assert.Equal(t, "checking out _deps/foo\n! ambiguous remote\n", buf.String())
}

func TestLogger_ErrorChain(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)

	err := zerr.With(zerr.Wrap(errors.New("exit status 128"), "git fetch failed"), "crate", "_deps/foo")
	lg.Error(err)

	assert.Equal(t, "✗ Error: git fetch failed\n         crate: _deps/foo\n\n    Caused by:\n      → exit status 128\n", buf.String())
}

func TestLogger_ErrorNil(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)

	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSONMode(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	lg.SetJSON(true)

	lg.Error(zerr.New("boom"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
}
