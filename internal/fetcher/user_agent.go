package fetcher

import (
	"net/http"
)

// UserAgentFetcher 요청에 User-Agent가 없을 때만 지정된 값을 주입합니다.
type UserAgentFetcher struct {
	delegate  Fetcher
	userAgent string
}

var _ Fetcher = (*UserAgentFetcher)(nil)

// NewUserAgentFetcher 새로운 UserAgentFetcher 인스턴스를 생성합니다.
func NewUserAgentFetcher(delegate Fetcher, userAgent string) *UserAgentFetcher {
	return &UserAgentFetcher{
		delegate:  delegate,
		userAgent: userAgent,
	}
}

// Do 원본 요청을 수정하지 않도록 복제본에 헤더를 설정하여 전달합니다.
func (f *UserAgentFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return f.delegate.Do(req)
	}

	clonedReq := req.Clone(req.Context())
	clonedReq.Header.Set("User-Agent", f.userAgent)

	return f.delegate.Do(clonedReq)
}
