package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	fileExt = "log"

	defaultMaxSizeMB  = 10
	defaultMaxBackups = 5
)

var (
	// Setup()이 프로세스 생명주기 동안 한 번만 실행되도록 보장합니다.
	setupOnce sync.Once

	globalCloser   io.Closer
	globalSetupErr error

	// consoleOutput 콘솔 로그 출력 대상 (테스트에서 교체)
	consoleOutput io.Writer = os.Stderr
)

// Setup 전역 로깅 시스템을 초기화합니다.
//
// CLI의 표준 출력은 명령 결과 전용이므로 콘솔 로그는 표준 에러로 내보냅니다.
// 반환된 Closer는 반드시 defer로 닫아야 합니다. 두 번째 호출부터는 최초 결과를 그대로 반환합니다.
func Setup(opts Options) (io.Closer, error) {
	setupOnce.Do(func() {
		globalCloser, globalSetupErr = setupInternal(opts)
	})

	return globalCloser, globalSetupErr
}

func setupInternal(opts Options) (io.Closer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("유효하지 않은 로그 설정: %w", err)
	}

	level := opts.Level
	if level == 0 {
		level = InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetReportCaller(opts.ReportCaller)

	// 모든 출력은 hook이 담당하므로 표준 로거의 포맷팅과 출력은 끈다.
	logrus.SetFormatter(&silentFormatter{})
	logrus.SetOutput(io.Discard)

	h := &hook{
		formatter: &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
			CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
				return frame.Function + "(line:" + strconv.Itoa(frame.Line) + ")", ""
			},
		},
	}

	var closers []io.Closer

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, fmt.Errorf("로그 디렉토리 생성 실패: %w", err)
		}

		maxSize := opts.MaxSizeMB
		if maxSize == 0 {
			maxSize = defaultMaxSizeMB
		}
		maxBackups := opts.MaxBackups
		if maxBackups == 0 {
			maxBackups = defaultMaxBackups
		}

		fileLogger := &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, fmt.Sprintf("%s.%s", opts.Name, fileExt)),
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			MaxAge:     opts.MaxAge,
			LocalTime:  true,
		}
		closers = append(closers, fileLogger)
		h.fileWriter = fileLogger
	}

	if opts.EnableConsoleLog {
		h.consoleWriter = consoleOutput
	}

	logrus.AddHook(h)

	c := &closer{
		closers: closers,
		hook:    h,
	}

	// Fatal 로그로 os.Exit이 호출되기 전에 남은 로그를 기록하고 파일을 닫는다.
	logrus.RegisterExitHandler(func() {
		_ = c.Close()
	})

	return c, nil
}

// silentFormatter 표준 로거의 포맷팅 비용을 없애기 위한 포맷터입니다. (실제 포맷팅은 hook이 수행)
type silentFormatter struct{}

func (f *silentFormatter) Format(_ *logrus.Entry) ([]byte, error) {
	return nil, nil
}
