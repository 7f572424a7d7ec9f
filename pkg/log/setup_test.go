package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Validate(t *testing.T) {
	tempFile := filepath.Join(t.TempDir(), "existing_file")
	require.NoError(t, os.WriteFile(tempFile, []byte("x"), 0644))

	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{"Missing Name", Options{}, "애플리케이션 식별자(Name)가 설정되지 않았습니다"},
		{"Dir is a file", Options{Name: "prowl", Dir: tempFile}, "이미 파일로 존재합니다"},
		{"Negative MaxAge", Options{Name: "prowl", MaxAge: -1}, "MaxAge"},
		{"Negative MaxSizeMB", Options{Name: "prowl", MaxSizeMB: -1}, "MaxSizeMB"},
		{"Negative MaxBackups", Options{Name: "prowl", MaxBackups: -1}, "MaxBackups"},
		{"Valid", Options{Name: "prowl"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSetup_InvalidOptions(t *testing.T) {
	resetGlobalState()
	defer resetGlobalState()

	c, err := Setup(Options{})
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "유효하지 않은 로그 설정")
}

func TestSetup_ConsoleOnly(t *testing.T) {
	resetGlobalState()
	defer resetGlobalState()

	var console bytes.Buffer
	consoleOutput = &console

	c, err := Setup(Options{Name: "prowl", EnableConsoleLog: true, Level: DebugLevel})
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	WithComponent("test").Debug("debug message")
	assert.Contains(t, console.String(), "debug message")
	assert.Contains(t, console.String(), "component=test")
}

func TestSetup_FileLog(t *testing.T) {
	resetGlobalState()
	defer resetGlobalState()

	dir := filepath.Join(t.TempDir(), "nested", "logs")

	c, err := Setup(Options{Name: "prowl", Dir: dir})
	require.NoError(t, err)

	WithComponent("test").Info("written to file")
	WithComponent("test").Debug("below level")
	require.NoError(t, c.Close())

	data, err := os.ReadFile(filepath.Join(dir, "prowl.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.NotContains(t, string(data), "below level")
}

func TestSetup_Once(t *testing.T) {
	resetGlobalState()
	defer resetGlobalState()

	first, err := Setup(Options{Name: "first"})
	require.NoError(t, err)
	defer first.Close()

	second, err := Setup(Options{})
	require.NoError(t, err, "second call returns the first result")
	assert.Same(t, first, second)
}

func TestCloser_Idempotent(t *testing.T) {
	h := &hook{formatter: &logrus.TextFormatter{}}
	c := &closer{hook: h}

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.True(t, h.closed)
}

func TestHook_Fire(t *testing.T) {
	var file, console bytes.Buffer
	h := &hook{
		fileWriter:    &file,
		consoleWriter: &console,
		formatter:     &logrus.TextFormatter{DisableTimestamp: true},
	}

	entry := logrus.NewEntry(logrus.New())
	entry.Level = InfoLevel
	entry.Message = "fan out"

	require.NoError(t, h.Fire(entry))
	assert.Contains(t, file.String(), "fan out")
	assert.Contains(t, console.String(), "fan out")

	require.NoError(t, h.Close())
	file.Reset()
	require.NoError(t, h.Fire(entry))
	assert.Empty(t, file.String(), "closed hook must drop entries")
}
