package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Domenick1991/flightdb/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	app := config.AppConfig{Name: "flightdb", Environment: "test", Version: "0.0.1"}

	t.Run("Defaults", func(t *testing.T) {
		logger, closer, err := New(config.LoggingConfig{}, app)
		require.NoError(t, err)
		assert.Nil(t, closer)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("ConsoleStderrDebug", func(t *testing.T) {
		logger, closer, err := New(config.LoggingConfig{Level: "DEBUG", Output: "stderr", Format: "console"}, app)
		require.NoError(t, err)
		assert.Nil(t, closer)
		assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		logger, closer, err := New(config.LoggingConfig{Level: "warn", Output: "file", FilePath: path}, app)
		require.NoError(t, err)
		require.NotNil(t, closer)

		logger.Warn().Msg("written")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"message":"written"`)
		assert.Contains(t, string(data), `"app":"flightdb"`)
	})

	t.Run("FileWithoutPath", func(t *testing.T) {
		_, _, err := New(config.LoggingConfig{Output: "file"}, app)
		assert.Error(t, err)
	})

	t.Run("InvalidLevelFallsBackToInfo", func(t *testing.T) {
		logger, _, err := New(config.LoggingConfig{Level: "loud"}, app)
		require.NoError(t, err)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})
}
