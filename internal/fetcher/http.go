package fetcher

import (
	"errors"
	"net/http"
	"net/url"
)

// HTTPFetcher *http.Client로 요청을 실제 전송하는 체인의 마지막 구현체입니다.
type HTTPFetcher struct {
	client *http.Client
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher 주어진 클라이언트를 사용하는 HTTPFetcher를 생성합니다.
// client가 nil이면 http.DefaultClient를 사용합니다. (타임아웃 없음)
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

// Do 요청을 전송합니다. 전송 실패 시 *url.Error의 URL은 마스킹되어 반환됩니다.
func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := h.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			if u, perr := url.Parse(urlErr.URL); perr == nil {
				urlErr.URL = RedactURL(u)
			}
		}
	}
	return resp, err
}
