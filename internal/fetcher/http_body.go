package fetcher

import (
	"io"
	"strings"
	"unicode/utf8"
)

const (
	// maxDrainBytes 커넥션 재사용을 위해 Body를 비울 때 읽을 최대 바이트 수
	maxDrainBytes = 64 * 1024

	// maxSnippetBytes 에러 메시지에 포함할 응답 본문 최대 바이트 수
	maxSnippetBytes = 1024
)

// drainAndCloseBody HTTP Keep-Alive 커넥션이 재사용되도록 Body를 일정량 읽어 버린 후 닫습니다.
// maxDrainBytes를 넘는 본문을 가진 커넥션은 재사용되지 않습니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	defer body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxDrainBytes))
}

// DrainAndClose 응답 Body를 비우고 닫습니다. 응답을 모두 처리한 호출자가 defer로 사용합니다.
func DrainAndClose(body io.ReadCloser) {
	drainAndCloseBody(body)
}

// BodySnippet 응답 본문 앞부분을 에러 메시지용 문자열로 잘라 반환합니다.
// 잘린 위치가 UTF-8 문자 중간이면 해당 문자를 버립니다.
func BodySnippet(body []byte) string {
	if len(body) > maxSnippetBytes {
		body = body[:maxSnippetBytes]
		for len(body) > 0 && !utf8.Valid(body) {
			body = body[:len(body)-1]
		}
	}
	return strings.TrimSpace(string(body))
}
