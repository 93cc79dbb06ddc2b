package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_File(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.ErrorLevel)
	})
	logfile := filepath.Join(t.TempDir(), "kemet.log")

	require.NoError(t, InitLogger(logfile, "debug"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	logrus.WithField("file", "a.txt").Debug("Match found")
	data, err := os.ReadFile(logfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Match found")
	assert.Contains(t, string(data), "file=a.txt")
	assert.NotContains(t, string(data), "\x1b[", "file output is never colored")
}

func TestInitLogger_Errors(t *testing.T) {
	t.Cleanup(func() { logrus.SetLevel(logrus.ErrorLevel) })

	assert.Error(t, InitLogger("", "shouty"))
	assert.Error(t, InitLogger(filepath.Join(t.TempDir(), "no", "dir", "x.log"), "info"))

	require.NoError(t, InitLogger("", ""))
	assert.Equal(t, logrus.ErrorLevel, logrus.GetLevel())
}
