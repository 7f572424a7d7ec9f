package fetcher

import (
	"net/http"
	"time"

	applog "github.com/darkkaiser/go-prowl/pkg/log"
)

// LoggingFetcher 요청 메서드, 마스킹된 URL, 상태 코드, 소요 시간을 기록하는 미들웨어입니다.
// 성공과 실패 모두 Debug 레벨로 기록하며, 실패는 error 필드로 구분합니다. 상태 코드의 의미 해석은 호출자의 몫입니다.
type LoggingFetcher struct {
	delegate Fetcher
}

var _ Fetcher = (*LoggingFetcher)(nil)

// NewLoggingFetcher 새로운 LoggingFetcher 인스턴스를 생성합니다.
func NewLoggingFetcher(delegate Fetcher) *LoggingFetcher {
	return &LoggingFetcher{
		delegate: delegate,
	}
}

func (f *LoggingFetcher) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := f.delegate.Do(req)

	fields := applog.Fields{
		"method":   req.Method,
		"url":      RedactURL(req.URL),
		"duration": time.Since(start).String(),
	}

	if resp != nil {
		fields["status"] = resp.Status
		fields["status_code"] = resp.StatusCode
	}

	if err != nil {
		fields["error"] = err.Error()

		applog.WithComponent(component).
			WithContext(req.Context()).
			WithFields(fields).
			Debug("HTTP 요청 실패: 응답을 받지 못했습니다")

		return resp, err
	}

	applog.WithComponent(component).
		WithContext(req.Context()).
		WithFields(fields).
		Debug("HTTP 요청 완료")

	return resp, nil
}
