package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogging_File(t *testing.T) {
	defer SetupLogging(false, "")

	logPath := filepath.Join(t.TempDir(), "nested", "keychain.log")
	SetupLogging(true, logPath)

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	Component("test").Debug("hello from test")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), "component=test")
}

func TestSetupLogging_Quiet(t *testing.T) {
	SetupLogging(false, "")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
