package fetcher

import (
	"errors"
	"io"
	"net/http"
)

const (
	// defaultMaxBytes Prowl 응답은 수백 바이트 수준의 XML이므로 넉넉하게 64KB로 제한합니다.
	defaultMaxBytes = 64 * 1024

	// NoLimit 응답 본문 크기를 제한하지 않음을 나타냅니다.
	NoLimit = -1
)

// maxBytesReader 크기 제한 초과 에러를 apperrors 형식으로 변환합니다.
type maxBytesReader struct {
	rc    io.ReadCloser
	limit int64
}

func (r *maxBytesReader) Read(p []byte) (n int, err error) {
	n, err = r.rc.Read(p)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return n, NewErrResponseBodyTooLarge(r.limit)
		}
	}
	return n, err
}

func (r *maxBytesReader) Close() error {
	return r.rc.Close()
}

// errBody 읽기 시도마다 같은 에러를 반환하는 본문입니다.
type errBody struct {
	err error
}

func (b errBody) Read([]byte) (int, error) { return 0, b.err }
func (b errBody) Close() error             { return nil }

// MaxBytesFetcher 응답 본문 크기를 제한하는 미들웨어입니다.
//
//   - Content-Length 헤더가 제한을 넘으면 원래 본문을 닫고, 읽는 즉시 에러를 반환하는 본문으로 교체합니다.
//   - Content-Length가 없거나 잘못된 응답은 읽는 시점에 차단합니다.
//
// 어느 경우든 상태 코드와 헤더는 그대로 전달되므로 호출자는 본문 없이도 상태 코드를 해석할 수 있습니다.
type MaxBytesFetcher struct {
	delegate Fetcher
	limit    int64
}

// NewMaxBytesFetcher 새로운 MaxBytesFetcher를 생성합니다. limit이 NoLimit이면 delegate를 그대로 반환합니다.
func NewMaxBytesFetcher(delegate Fetcher, limit int64) Fetcher {
	if limit == NoLimit {
		return delegate
	}
	if limit <= 0 {
		limit = defaultMaxBytes
	}

	return &MaxBytesFetcher{
		delegate: delegate,
		limit:    limit,
	}
}

func (f *MaxBytesFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	if resp.ContentLength > f.limit {
		drainAndCloseBody(resp.Body)
		resp.Body = errBody{err: NewErrResponseBodyTooLargeByContentLength(resp.ContentLength, f.limit)}
		return resp, nil
	}

	resp.Body = &maxBytesReader{
		rc:    http.MaxBytesReader(nil, resp.Body, f.limit),
		limit: f.limit,
	}

	return resp, nil
}
