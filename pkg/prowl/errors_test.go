package prowl

import (
	"errors"
	"testing"

	apperrors "github.com/darkkaiser/go-prowl/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestSendError_Is(t *testing.T) {
	sentinels := map[ErrorKind]error{
		BadRequest:   ErrBadRequest,
		Unauthorized: ErrUnauthorized,
		RateLimited:  ErrRateLimited,
		NotApproved:  ErrNotApproved,
		ServerError:  ErrServerError,
		Transport:    ErrTransport,
	}

	for kind, sentinel := range sentinels {
		t.Run(kind.String(), func(t *testing.T) {
			err := &SendError{Kind: kind, cause: apperrors.New(kind.errorType(), "x")}

			assert.True(t, errors.Is(err, sentinel))
			for other, s := range sentinels {
				if other != kind {
					assert.False(t, errors.Is(err, s), "%s must not match %s", kind, other)
				}
			}
			assert.False(t, errors.Is(err, ErrInvalidNotification))
		})
	}
}

func TestSendError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *SendError
		want string
	}{
		{
			name: "상태 코드와 메시지",
			err:  &SendError{Kind: Unauthorized, StatusCode: 401, Code: 401, Message: "Invalid API key"},
			want: "prowl: Unauthorized (HTTP 401): Invalid API key",
		},
		{
			name: "메시지 없음",
			err:  &SendError{Kind: ServerError, StatusCode: 500},
			want: "prowl: ServerError (HTTP 500)",
		},
		{
			name: "Transport는 원인을 포함한다",
			err:  &SendError{Kind: Transport, cause: errors.New("connection refused")},
			want: "prowl: Transport: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestSendError_Unwrap(t *testing.T) {
	cause := apperrors.New(apperrors.RateLimited, "limit")
	err := &SendError{Kind: RateLimited, cause: cause}

	assert.Same(t, cause, errors.Unwrap(err))
	assert.True(t, apperrors.Is(err, apperrors.RateLimited))
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "NotApproved", NotApproved.String())
	assert.Equal(t, "ErrorKind(99)", ErrorKind(99).String())
	assert.Nil(t, ErrorKind(99).sentinel())
	assert.Equal(t, apperrors.Forbidden, NotApproved.errorType())
}

func TestValidationError(t *testing.T) {
	err := newValidationError(FieldApplication, RuleMax, "256", nil)

	assert.Equal(t, "prowl: application 값은 최대 256자까지 입력할 수 있습니다", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidNotification))
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	assert.False(t, errors.Is(err, ErrBadRequest))

	keys := newValidationError(FieldAPIKeys, RuleMax, "5", 6)
	assert.Equal(t, "prowl: API 키는 최대 5개까지 지정할 수 있습니다", keys.Error())
}
