package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreebharatraj/contact-mailer/pkg/config"
)

func TestNewLogger_WithoutFile(t *testing.T) {
	for _, debug := range []bool{true, false} {
		logger, closer, err := NewLogger(debug, config.Logging{})
		require.NoError(t, err)
		require.NotNil(t, logger)
		assert.NoError(t, closer())
	}
}

func TestNewLogger_ErrorFileReceivesOnlyErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, closer, err := NewLogger(false, config.Logging{File: path, MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)

	logger.Info("routine startup message")
	logger.Warn("something odd")
	logger.Error("Acknowledgement email failed")
	require.NoError(t, closer())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Acknowledgement email failed")
	assert.NotContains(t, string(content), "routine startup message")
	assert.NotContains(t, string(content), "something odd")
}
