// prowl 명령행에서 Prowl 푸시 알림을 전송하거나 API 키를 확인하는 도구입니다.
//
//	prowl add -event E -description D [-application A] [-priority P] [-url U] [-apikey K1,K2] [-config FILE]
//	prowl verify [-apikey K] [-config FILE]
//	prowl version
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/darkkaiser/go-prowl/internal/config"
	apperrors "github.com/darkkaiser/go-prowl/internal/pkg/errors"
	"github.com/darkkaiser/go-prowl/internal/pkg/version"
	applog "github.com/darkkaiser/go-prowl/pkg/log"
	"github.com/darkkaiser/go-prowl/pkg/prowl"
)

// component 로깅용 컴포넌트 이름
const component = "main"

// 종료 코드
const (
	exitOK      = 0
	exitFailure = 1 // 전송 실패, 설정 오류
	exitUsage   = 2 // 잘못된 인자, 알림 검증 실패
)

const usage = `사용법:
  prowl add -event E -description D [-application A] [-priority P] [-url U] [-apikey K1,K2] [-config FILE]
  prowl verify [-apikey K1,K2] [-config FILE]
  prowl version

설정 파일(기본: ./prowl.json)과 PROWL_ 접두사 환경 변수로 기본값을 지정할 수 있습니다.
  예: PROWL_PROWL__API_KEYS=key1,key2
`

// verifier API 키 확인 기능
type verifier interface {
	Verify(ctx context.Context, apiKey string) (*prowl.Quota, error)
}

// cli 명령 실행에 필요한 의존성. 테스트에서는 출력 대상과 클라이언트를 교체합니다.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	setupLog    func(cfg *config.AppConfig) (io.Closer, error)
	newSender   func(cfg *config.AppConfig) prowl.Sender
	newVerifier func(cfg *config.AppConfig) verifier
}

func newCLI(stdout, stderr io.Writer) *cli {
	return &cli{
		stdout:   stdout,
		stderr:   stderr,
		setupLog: setupLogging,
		newSender: func(cfg *config.AppConfig) prowl.Sender {
			return prowl.NewClient(cfg.Prowl.ClientOptions()...)
		},
		newVerifier: func(cfg *config.AppConfig) verifier {
			return prowl.NewClient(cfg.Prowl.ClientOptions()...)
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := newCLI(os.Stdout, os.Stderr).run(ctx, os.Args[1:])

	stop()
	os.Exit(code)
}

func (c *cli) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(c.stderr, usage)
		return exitUsage
	}

	switch args[0] {
	case "add":
		return c.runAdd(ctx, args[1:])
	case "verify":
		return c.runVerify(ctx, args[1:])
	case "version":
		fmt.Fprintln(c.stdout, version.Get().String())
		return exitOK
	case "help", "-h", "-help", "--help":
		fmt.Fprint(c.stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(c.stderr, "알 수 없는 명령입니다: '%s'\n\n%s", args[0], usage)
		return exitUsage
	}
}

// loadConfig 경로가 비어 있으면 기본 설정 파일을 선택적으로 읽습니다.
func (c *cli) loadConfig(path string) (*config.AppConfig, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadWithFile(path)
}

// prepare 설정을 로드하고 로깅을 초기화합니다. 반환된 Closer는 호출자가 닫아야 합니다.
func (c *cli) prepare(configPath string) (*config.AppConfig, io.Closer, error) {
	cfg, err := c.loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	closer, err := c.setupLog(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("로그 시스템 초기화 실패: %w", err)
	}

	fields := applog.Fields(version.Get().ToMap())
	fields["debug"] = cfg.Debug
	applog.WithComponentAndFields(component, fields).Debug("설정 로드 완료")

	return cfg, closer, nil
}

// logRequestFailure 전송 또는 확인 실패를 가장 안쪽 원인의 분류와 함께 Error 레벨로 기록합니다.
func logRequestFailure(op string, err error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"op":         op,
		"error_type": apperrors.UnderlyingType(err).String(),
		"root_cause": apperrors.RootCause(err).Error(),
		"error":      err.Error(),
	}).Error("Prowl 요청이 실패했습니다")
}

func (c *cli) fail(code int, err error) int {
	fmt.Fprintf(c.stderr, "[ERROR] %v\n", err)
	return code
}

func setupLogging(cfg *config.AppConfig) (io.Closer, error) {
	closer, err := applog.Setup(cfg.Log.Options(cfg.Debug))
	if err != nil {
		return nil, err
	}

	applog.SetDebugMode(cfg.Debug)

	return closer, nil
}

// splitKeys "k1, k2,,k3" -> [k1 k2 k3]
func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// exitCodeFor 알림 검증 실패는 사용자가 인자를 고쳐야 하므로 exitUsage, 그 외는 exitFailure입니다.
func exitCodeFor(err error) int {
	if errors.Is(err, prowl.ErrInvalidNotification) {
		return exitUsage
	}
	return exitFailure
}
