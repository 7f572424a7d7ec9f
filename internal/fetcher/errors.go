package fetcher

import (
	"fmt"

	apperrors "github.com/darkkaiser/go-prowl/internal/pkg/errors"
)

// NewErrResponseBodyTooLarge 본문을 읽는 도중 크기 제한을 넘었을 때의 에러를 생성합니다.
func NewErrResponseBodyTooLarge(limit int64) error {
	return apperrors.Newf(apperrors.Unavailable, "응답 본문 크기가 제한(%d 바이트)을 초과했습니다", limit)
}

// NewErrResponseBodyTooLargeByContentLength Content-Length 헤더로 크기 초과를 감지했을 때의 에러를 생성합니다.
func NewErrResponseBodyTooLargeByContentLength(contentLength, limit int64) error {
	return apperrors.New(apperrors.Unavailable, fmt.Sprintf("응답 본문 크기(%d 바이트)가 제한(%d 바이트)을 초과했습니다", contentLength, limit))
}
