package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, logrus.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New("info", FormatJSON, &buf)

	l.WithField("repository_url", "https://github.com/a/b").Error("analysis failed")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "analysis failed", line["msg"])
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "https://github.com/a/b", line["repository_url"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New("warn", FormatText, &buf)

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}
