package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/address-book/address-book/internal/logger"
)

func TestLogger(t *testing.T) {
	type testCase struct {
		name             string
		cfg              logger.Log
		shouldHaveOutPut bool
		outPutIsJSON     bool
	}

	testCases := []testCase{
		{
			name: "no logger enabled log level not set",
			cfg: logger.Log{
				LogLevel:    "",
				ServiceName: "test",
				AppName:     "test",
			},
			shouldHaveOutPut: false,
		},
		{
			name: "console enabled console writer enabled",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true, UseConsoleWriter: true},
			},
			shouldHaveOutPut: true,
		},
		{
			name: "console enabled info expect json",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
		{
			name: "console enabled trace with caller expect json stack",
			cfg: logger.Log{
				LogLevel:     "trace",
				ServiceName:  "test",
				AppName:      "test",
				ReportCaller: true,
				Console:      logger.Console{Enabled: true},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := captureOutput(t, tc.cfg)

			if !tc.shouldHaveOutPut {
				assert.Empty(t, out)

				return
			}

			require.NotEmpty(t, out)

			if !tc.outPutIsJSON {
				return
			}

			for _, line := range strings.Split(out, "\n") {
				if line == "" {
					continue
				}

				var entry struct {
					Level   string `json:"level"`
					App     string `json:"app"`
					Message string `json:"message"`
				}

				require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
				assert.Equal(t, "test", entry.App)
			}
		})
	}
}

func TestInitErrors(t *testing.T) {
	err := logger.Init(logger.Log{LogLevel: "verbose", ServiceName: "test", AppName: "test"})
	require.Error(t, err)

	err = logger.Init(logger.Log{LogLevel: "info", AppName: "test"})
	require.ErrorIs(t, err, logger.ErrServiceNameIsEmpty)

	err = logger.Init(logger.Log{LogLevel: "info", ServiceName: "test"})
	require.ErrorIs(t, err, logger.ErrAppNameIsEmpty)
}

func TestRollingFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")

	err := logger.Init(logger.Log{
		LogLevel:    "info",
		ServiceName: "test",
		AppName:     "test",
		File: logger.LogFile{
			Enabled:      true,
			Path:         dir,
			InfoLog:      "info.log",
			InfoMaxSize:  1,
			ErrorLog:     "error.log",
			ErrorMaxSize: 1,
			WarnLog:      "warn.log",
			WarnMaxSize:  1,
			TraceLog:     "trace.log",
			TraceMaxSize: 1,
		},
	})
	require.NoError(t, err)

	log.Info().Msg("to info file")
	log.Error().Err(alwaysErrFunc()).Msg("to error file")

	info, err := os.ReadFile(filepath.Join(dir, "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "to info file")
	assert.NotContains(t, string(info), "to error file")

	errLog, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(errLog), "to error file")

	_, err = os.Stat(filepath.Join(dir, "warn.log"))
	assert.True(t, os.IsNotExist(err), "warn.log is only created on the first warning")
}

func alwaysErrFunc() error {
	return errors.New("a test error") //nolint:goerr113
}

func captureOutput(t *testing.T, cfg logger.Log) string {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	os.Stderr = w

	outC := make(chan string)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	err = logger.Init(cfg)
	if err != nil {
		t.Error(err)
	}

	log.Info().Msg("this info message should be seen...")
	log.Error().Err(alwaysErrFunc()).Msg("this err message should be seen...")
	log.Trace().Err(alwaysErrFunc()).Msg("this trace message is seen at trace level only...")

	_ = w.Close()
	os.Stdout = stdout
	os.Stderr = stderr

	return <-outC
}
