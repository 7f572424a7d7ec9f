package fetcher

import (
	"fmt"
	"net/http"
)

// HTTPStatusError Prowl API가 예상하지 못한 상태 코드로 응답했을 때의 상세 정보를 담는 에러입니다.
//
// Prowl이 문서화한 상태 코드(400, 401, 406, 409, 500)는 prowl.SendError로 분류되고,
// 그 외 상태 코드는 이 에러를 원인으로 하는 Transport 에러가 됩니다.
type HTTPStatusError struct {
	// StatusCode 예: 404, 503
	StatusCode int

	// Status 예: "503 Service Unavailable"
	Status string

	// URL 요청 대상 URL (민감한 쿼리 파라미터는 마스킹됨)
	URL string

	// Header 응답 헤더 (Cookie 등은 마스킹됨)
	Header http.Header

	// BodySnippet 응답 본문 앞부분
	BodySnippet string

	Cause error
}

// NewHTTPStatusError 응답과 이미 읽은 본문으로부터 HTTPStatusError를 생성합니다.
func NewHTTPStatusError(resp *http.Response, body []byte) *HTTPStatusError {
	e := &HTTPStatusError{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		Header:      redactHeaders(resp.Header),
		BodySnippet: BodySnippet(body),
	}
	if resp.Request != nil {
		e.URL = RedactURL(resp.Request.URL)
	}
	return e
}

// Error 형식: "HTTP {상태코드} ({상태텍스트}) URL: {URL}, Body: {본문일부}: {원인에러}"
func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d (%s)", e.StatusCode, e.Status)
	if e.URL != "" {
		msg += fmt.Sprintf(" URL: %s", e.URL)
	}
	if e.BodySnippet != "" {
		msg += fmt.Sprintf(", Body: %s", e.BodySnippet)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *HTTPStatusError) Unwrap() error {
	return e.Cause
}
