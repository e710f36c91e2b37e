package logger_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sentinote/sentinote/pkg/logger"
)

func TestLogToBuffer(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	log, err := logger.New().FromBuffer(buff).Make()
	require.NoError(t, err)
	require.NotNil(t, log)
	require.Equal(t, buff.Len(), 0)
	log.Logger.Info().Msg("Test")
	require.Contains(t, buff.String(), "Test")
}

func TestLogLevelFiltersOutput(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	log, err := logger.New().FromBuffer(buff).Level(zerolog.WarnLevel).Make()
	require.NoError(t, err)
	log.Logger.Debug().Msg("quiet")
	require.Equal(t, buff.Len(), 0)
	log.Logger.Warn().Msg("loud")
	require.Contains(t, buff.String(), "loud")
}

func TestLogToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentinote.log")
	log, err := logger.New().FromPath(path).Make()
	require.NoError(t, err)
	require.NotNil(t, log.LogFile)
	log.Logger.Info().Msg("persisted")
	require.NoError(t, log.Close())
}

func TestConsoleOutput(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	log, err := logger.New().FromBuffer(buff).Console().Make()
	require.NoError(t, err)
	log.Logger.Info().Msg("readable")
	require.Contains(t, buff.String(), "readable")
}
