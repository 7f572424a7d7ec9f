package prowl

import (
	"errors"
	"fmt"

	apperrors "github.com/darkkaiser/go-prowl/internal/pkg/errors"
)

// 검증 규칙 이름 (ValidationError.Rule)
const (
	RuleRequired  = "required"   // 빈 값
	RuleMin       = "min"        // 최소 개수 미만
	RuleMax       = "max"        // 최대 길이/개수 초과
	RuleURL       = "url"        // URL 형식 오류
	RuleKeyFormat = "key_format" // API 키에 쉼표 또는 공백 포함
	RuleRange     = "range"      // 정의되지 않은 우선순위
	RuleUTF8      = "utf8"       // 잘못된 UTF-8 바이트 포함
)

// 필드 이름 (ValidationError.Field). Prowl API 파라미터 이름과 같은 표기를 사용합니다.
const (
	FieldAPIKeys     = "api_keys"
	FieldApplication = "application"
	FieldEvent       = "event"
	FieldDescription = "description"
	FieldURL         = "url"
	FieldPriority    = "priority"
)

// ErrInvalidNotification 모든 ValidationError가 errors.Is로 일치하는 센티널 에러입니다.
var ErrInvalidNotification = errors.New("prowl: invalid notification")

// ValidationError 알림 생성 시 어떤 필드가 어떤 조건을 위반했는지 나타냅니다.
type ValidationError struct {
	Field string // 예: "application"
	Rule  string // 예: RuleMax
	Param string // 위반한 경계 값 (예: "256"), 없으면 빈 문자열
	Value any    // 검사한 값 (api_keys의 개수 규칙은 키 개수)

	cause error
}

func newValidationError(field, rule, param string, value any) *ValidationError {
	e := &ValidationError{
		Field: field,
		Rule:  rule,
		Param: param,
		Value: value,
	}
	e.cause = apperrors.New(apperrors.InvalidInput, e.describe())
	return e
}

func (e *ValidationError) describe() string {
	switch e.Rule {
	case RuleRequired:
		return fmt.Sprintf("%s 값은 필수입니다", e.Field)
	case RuleMin:
		if e.Field == FieldAPIKeys {
			return fmt.Sprintf("API 키는 최소 %s개 이상이어야 합니다", e.Param)
		}
		return fmt.Sprintf("%s 값은 최소 %s자 이상이어야 합니다", e.Field, e.Param)
	case RuleMax:
		if e.Field == FieldAPIKeys {
			return fmt.Sprintf("API 키는 최대 %s개까지 지정할 수 있습니다", e.Param)
		}
		return fmt.Sprintf("%s 값은 최대 %s자까지 입력할 수 있습니다", e.Field, e.Param)
	case RuleURL:
		return fmt.Sprintf("%s 값이 올바른 URL 형식이 아닙니다", e.Field)
	case RuleKeyFormat:
		return "API 키에는 쉼표(,)나 공백을 포함할 수 없습니다"
	case RuleRange:
		return fmt.Sprintf("%s 값은 %d에서 %d 사이여야 합니다", e.Field, VeryLow, Emergency)
	case RuleUTF8:
		return fmt.Sprintf("%s 값에 올바르지 않은 UTF-8 문자가 포함되어 있습니다", e.Field)
	default:
		return fmt.Sprintf("%s 값이 조건(%s)을 만족하지 않습니다", e.Field, e.Rule)
	}
}

func (e *ValidationError) Error() string {
	return "prowl: " + e.describe()
}

// Unwrap InvalidInput 타입의 AppError를 반환합니다.
func (e *ValidationError) Unwrap() error {
	return e.cause
}

// Is errors.Is(err, ErrInvalidNotification)를 지원합니다.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidNotification
}

// ErrorKind SendError의 분류입니다.
type ErrorKind int

const (
	// BadRequest 400: 파라미터 오류. SendError.Message에 Prowl의 설명이 담깁니다.
	BadRequest ErrorKind = iota + 1

	// Unauthorized 401: 유효하지 않은 API 키
	Unauthorized

	// RateLimited 406: IP 주소의 시간당 호출 한도 초과
	RateLimited

	// NotApproved 409: 사용자가 요청을 승인하지 않음
	NotApproved

	// ServerError 500: Prowl 서버 내부 오류
	ServerError

	// Transport 네트워크 오류, 취소, 예상하지 못한 상태 코드, 응답 해석 실패
	Transport
)

// 각 ErrorKind에 대응하는 센티널 에러입니다. errors.Is(err, prowl.ErrUnauthorized)처럼 사용합니다.
var (
	ErrBadRequest   = errors.New("prowl: bad request")
	ErrUnauthorized = errors.New("prowl: unauthorized")
	ErrRateLimited  = errors.New("prowl: rate limited")
	ErrNotApproved  = errors.New("prowl: not approved")
	ErrServerError  = errors.New("prowl: server error")
	ErrTransport    = errors.New("prowl: transport failure")
)

func (k ErrorKind) String() string {
	switch k {
	case BadRequest:
		return "BadRequest"
	case Unauthorized:
		return "Unauthorized"
	case RateLimited:
		return "RateLimited"
	case NotApproved:
		return "NotApproved"
	case ServerError:
		return "ServerError"
	case Transport:
		return "Transport"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case BadRequest:
		return ErrBadRequest
	case Unauthorized:
		return ErrUnauthorized
	case RateLimited:
		return ErrRateLimited
	case NotApproved:
		return ErrNotApproved
	case ServerError:
		return ErrServerError
	case Transport:
		return ErrTransport
	default:
		return nil
	}
}

// errorType 내부 에러 분류로의 대응입니다.
func (k ErrorKind) errorType() apperrors.ErrorType {
	switch k {
	case BadRequest:
		return apperrors.InvalidInput
	case Unauthorized:
		return apperrors.Unauthorized
	case RateLimited:
		return apperrors.RateLimited
	case NotApproved:
		return apperrors.Forbidden
	case ServerError, Transport:
		return apperrors.Unavailable
	default:
		return apperrors.Unknown
	}
}

// SendError 알림 전송 실패를 나타냅니다. 라이브러리는 어떤 경우에도 재시도하지 않습니다.
type SendError struct {
	Kind ErrorKind

	// StatusCode HTTP 상태 코드. 응답을 받지 못한 Transport 에러는 0입니다.
	StatusCode int

	// Code Prowl 응답 본문의 <error code="..."> 값. 본문이 없으면 0입니다.
	Code int

	// Message Prowl 응답 본문의 에러 설명
	Message string

	cause error
}

func (e *SendError) Error() string {
	msg := "prowl: " + e.Kind.String()
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Kind == Transport && e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Unwrap 원인 에러를 반환합니다. Transport는 네트워크/컨텍스트 에러 또는 fetcher.HTTPStatusError를 감쌉니다.
func (e *SendError) Unwrap() error {
	return e.cause
}

// Is errors.Is(err, prowl.ErrRateLimited) 형태의 분류 검사를 지원합니다.
func (e *SendError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}
