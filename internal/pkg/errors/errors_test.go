package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStd = errors.New("standard error")

func TestNew(t *testing.T) {
	t.Parallel()

	err := New(InvalidInput, "event는 필수입니다")

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, InvalidInput, appErr.Type())
	assert.Equal(t, "event는 필수입니다", appErr.Message())
	assert.Equal(t, "[InvalidInput] event는 필수입니다", err.Error())
	assert.Nil(t, appErr.Unwrap())
}

func TestNewf(t *testing.T) {
	t.Parallel()

	err := Newf(RateLimited, "남은 호출 수: %d", 0)
	assert.Equal(t, "[RateLimited] 남은 호출 수: 0", err.Error())
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("Nil error returns nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, Internal, "ignored"))
		assert.Nil(t, Wrapf(nil, Internal, "ignored %d", 1))
	})

	t.Run("Keeps cause in chain", func(t *testing.T) {
		err := Wrap(errStd, Unavailable, "Prowl API 요청 실패")

		assert.Equal(t, "[Unavailable] Prowl API 요청 실패: standard error", err.Error())
		assert.True(t, errors.Is(err, errStd))
		assert.Equal(t, errStd, errors.Unwrap(err))
	})

	t.Run("Wrapf formats message", func(t *testing.T) {
		err := Wrapf(context.DeadlineExceeded, Timeout, "요청 시간 초과 (%s)", "add")
		assert.Equal(t, "[Timeout] 요청 시간 초과 (add): context deadline exceeded", err.Error())
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})
}

func TestIs(t *testing.T) {
	t.Parallel()

	inner := New(Unauthorized, "잘못된 API 키")
	outer := Wrap(inner, Unavailable, "알림 전송 실패")
	std := fmt.Errorf("context: %w", outer)

	assert.True(t, Is(outer, Unavailable))
	assert.True(t, Is(outer, Unauthorized))
	assert.True(t, Is(std, Unauthorized), "standard wrapping must not hide AppError")
	assert.False(t, Is(outer, RateLimited))
	assert.False(t, Is(nil, Unknown))
	assert.False(t, Is(errStd, Unknown))
}

func TestAs(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("outer: %w", New(NotFound, "설정 파일 없음"))

	var appErr *AppError
	require.True(t, As(err, &appErr))
	assert.Equal(t, NotFound, appErr.Type())
}

func TestRootCause(t *testing.T) {
	t.Parallel()

	assert.Nil(t, RootCause(nil))
	assert.Equal(t, errStd, RootCause(errStd))

	chain := Wrap(Wrap(errStd, System, "level 1"), Internal, "level 2")
	assert.Equal(t, errStd, RootCause(chain))
}

func TestUnderlyingType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"Nil", nil, Unknown},
		{"Standard error", errStd, Unknown},
		{"Single AppError", New(RateLimited, "limit"), RateLimited},
		{"Innermost wins", Wrap(New(Unauthorized, "key"), Unavailable, "send"), Unauthorized},
		{"Wrapped external", Wrap(errStd, ParsingFailed, "xml"), ParsingFailed},
		{"Behind fmt.Errorf", fmt.Errorf("x: %w", New(Forbidden, "not approved")), Forbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnderlyingType(tt.err))
		})
	}
}

func TestAppError_Format(t *testing.T) {
	t.Parallel()

	t.Run("Plain verbs", func(t *testing.T) {
		err := New(InvalidInput, "msg")
		assert.Equal(t, "[InvalidInput] msg", fmt.Sprintf("%v", err))
		assert.Equal(t, "[InvalidInput] msg", fmt.Sprintf("%s", err))
		assert.Equal(t, `"[InvalidInput] msg"`, fmt.Sprintf("%q", err))
	})

	t.Run("Detailed with stack and cause", func(t *testing.T) {
		err := Wrap(errStd, Unavailable, "send failed")
		out := fmt.Sprintf("%+v", err)

		assert.Contains(t, out, "[Unavailable] send failed")
		assert.Contains(t, out, "Stack trace:")
		assert.Contains(t, out, "errors_test.go")
		assert.Contains(t, out, "Caused by:")
		assert.Contains(t, out, "standard error")
	})

	t.Run("Stack printed once for AppError chain", func(t *testing.T) {
		err := Wrap(New(Unauthorized, "root"), Unavailable, "outer")
		out := fmt.Sprintf("%+v", err)

		assert.Equal(t, 1, countOccurrences(out, "Stack trace:"))
	})
}

func countOccurrences(s, sub string) int {
	n := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			n++
		}
	}
	return n
}
