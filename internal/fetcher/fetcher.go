// Package fetcher Prowl API 호출에 사용하는 HTTP 요청 실행 계층입니다.
//
// 모든 구현체는 Fetcher 인터페이스를 따르며, 데코레이터 패턴으로 조합됩니다.
//
//	LoggingFetcher -> UserAgentFetcher -> MaxBytesFetcher -> HTTPFetcher
//
// 재시도와 타임아웃은 의도적으로 제공하지 않습니다. 취소와 마감 시간은 요청의 Context로만 제어합니다.
package fetcher

import (
	"net/http"
)

// component 로깅용 컴포넌트 이름
const component = "prowl.fetcher"

// Fetcher HTTP 요청을 수행하는 인터페이스입니다.
//
// 구현 시 주의사항:
//   - 반환된 응답 객체의 Body는 반드시 호출자가 닫아야 합니다.
//   - Context 취소 시 즉시 요청을 중단하고 에러를 반환해야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options Fetcher 체인 구성 옵션입니다.
type Options struct {
	// Client 실제 전송에 사용할 HTTP 클라이언트입니다. nil이면 http.DefaultClient를 사용합니다.
	// 호스트 애플리케이션이 커넥션 풀을 공유하도록 외부에서 주입받습니다.
	Client *http.Client

	// UserAgent 요청에 User-Agent 헤더가 없을 때 주입할 값입니다. 빈 문자열이면 주입하지 않습니다.
	UserAgent string

	// MaxResponseBytes 응답 본문 크기 제한입니다. 0이면 기본값, NoLimit이면 제한하지 않습니다.
	MaxResponseBytes int64
}

// New Options에 따라 Fetcher 체인을 구성합니다.
func New(opts Options) Fetcher {
	var f Fetcher = NewHTTPFetcher(opts.Client)

	f = NewMaxBytesFetcher(f, opts.MaxResponseBytes)

	if opts.UserAgent != "" {
		f = NewUserAgentFetcher(f, opts.UserAgent)
	}

	return NewLoggingFetcher(f)
}
