package fetcher_test

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"github.com/darkkaiser/go-prowl/internal/fetcher"
	"github.com/darkkaiser/go-prowl/internal/fetcher/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prevOut, prevLevel, prevFormatter := logrus.StandardLogger().Out, logrus.GetLevel(), logrus.StandardLogger().Formatter
	logrus.SetOutput(&buf)
	logrus.SetLevel(logrus.DebugLevel)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	t.Cleanup(func() {
		logrus.SetOutput(prevOut)
		logrus.SetLevel(prevLevel)
		logrus.SetFormatter(prevFormatter)
	})
	return &buf
}

func TestLoggingFetcher(t *testing.T) {
	t.Run("Success is logged at debug without secrets", func(t *testing.T) {
		buf := captureLogs(t)

		req, _ := http.NewRequest(http.MethodGet, "https://api.prowlapp.com/publicapi/verify?apikey=topsecretkey", nil)
		m := mocks.NewMockFetcher()
		m.On("Do", req).Return(mocks.NewResponse(req, http.StatusOK, "ok"), nil)

		resp, err := fetcher.NewLoggingFetcher(m).Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		out := buf.String()
		assert.Contains(t, out, `"level":"debug"`)
		assert.Contains(t, out, `"component":"prowl.fetcher"`)
		assert.Contains(t, out, `"status_code":200`)
		assert.NotContains(t, out, "topsecretkey")
	})

	t.Run("Failure is logged at debug with the error", func(t *testing.T) {
		buf := captureLogs(t)

		req, _ := http.NewRequest(http.MethodPost, "https://api.prowlapp.com/publicapi/add", nil)
		m := mocks.NewMockFetcher()
		m.On("Do", req).Return(nil, errors.New("connection refused"))

		_, err := fetcher.NewLoggingFetcher(m).Do(req)
		require.Error(t, err)

		out := buf.String()
		assert.Contains(t, out, `"level":"debug"`)
		assert.NotContains(t, out, `"level":"warning"`)
		assert.Contains(t, out, "connection refused")
	})
}
