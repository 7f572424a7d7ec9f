// Package errors go-prowl 내부에서 사용하는 타입 기반 에러를 제공합니다.
//
// 모든 에러는 ErrorType으로 분류되며, Wrap 계열 함수로 원인 에러를 감싸 컨텍스트를 누적합니다.
// 공개 API(pkg/prowl)의 SendError, ValidationError는 원인(Cause)으로 이 패키지의 AppError를 보관하므로,
// 모듈 내부 코드(CLI 등)는 Is(err, Unauthorized)처럼 분류 기준으로 에러를 검사할 수 있습니다.
//
// 사용 예:
//
//	if err != nil {
//	    return errors.Wrap(err, errors.Unavailable, "Prowl API 요청 전송에 실패했습니다")
//	}
//
//	if errors.Is(err, errors.InvalidInput) {
//	    // 입력값을 수정하도록 안내
//	}
//
// # ErrorType 선택 기준
//
//   - InvalidInput: 알림 필드, 설정값, 명령행 인자의 검증 실패
//   - Unauthorized: Prowl이 API 키를 거부한 경우 (HTTP 401)
//   - Forbidden: 승인되지 않은 요청 (HTTP 409)
//   - RateLimited: 시간당 호출 한도 초과 (HTTP 406)
//   - Unavailable: 네트워크 오류, Prowl 서버 장애 (HTTP 5xx)
//   - Timeout: Context 마감 시간 초과
//   - ParsingFailed: 응답 본문(XML) 해석 실패
//   - System: 파일, 디렉토리 등 로컬 자원 접근 실패
//   - NotFound: 설정 파일 등 참조 대상이 없음
//   - Internal: 버그로 간주되는 예상하지 못한 상태
package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// AppError 분류(ErrorType), 메시지, 원인 에러, 생성 위치의 스택을 함께 보관하는 에러입니다.
type AppError struct {
	errType ErrorType
	message string
	cause   error
	stack   []StackFrame
}

// Type 에러의 타입을 반환합니다.
func (e *AppError) Type() ErrorType {
	return e.errType
}

// Message 원인 에러를 제외한 메시지만 반환합니다.
func (e *AppError) Message() string {
	return e.message
}

// Stack 에러 생성 시점의 스택 프레임을 반환합니다.
func (e *AppError) Stack() []StackFrame {
	return e.stack
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.errType, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.errType, e.message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Format fmt.Formatter 인터페이스를 구현합니다.
// %+v 사용 시 스택 트레이스와 원인 에러 체인을 함께 출력합니다.
func (e *AppError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "[%s] %s", e.errType, e.message)

			// 스택은 체인의 끝(Root) 또는 외부 에러와의 경계에서만 출력한다.
			var target *AppError
			if e.cause == nil || !errors.As(e.cause, &target) {
				if len(e.stack) > 0 {
					fmt.Fprint(s, "\nStack trace:")
					for _, frame := range e.stack {
						funcName := frame.Function
						if idx := strings.LastIndex(funcName, "/"); idx != -1 {
							funcName = funcName[idx+1:]
						}
						fmt.Fprintf(s, "\n\t%s:%d %s", frame.File, frame.Line, funcName)
					}
				}
			}

			if e.cause != nil {
				fmt.Fprint(s, "\nCaused by:\n")
				if formatter, ok := e.cause.(fmt.Formatter); ok {
					formatter.Format(s, verb)
				} else {
					fmt.Fprintf(s, "\t%v", e.cause)
				}
			}
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// New 새로운 에러를 생성합니다.
func New(errType ErrorType, message string) error {
	return &AppError{
		errType: errType,
		message: message,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Newf 포맷 문자열을 사용하여 새로운 에러를 생성합니다.
func Newf(errType ErrorType, format string, args ...any) error {
	return &AppError{
		errType: errType,
		message: fmt.Sprintf(format, args...),
		stack:   captureStack(defaultCallerSkip),
	}
}

// Wrap 기존 에러를 감싸서 새로운 에러를 생성합니다. err이 nil이면 nil을 반환합니다.
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		errType: errType,
		message: message,
		cause:   err,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Wrapf 포맷 문자열을 사용하여 기존 에러를 감쌉니다. err이 nil이면 nil을 반환합니다.
func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &AppError{
		errType: errType,
		message: fmt.Sprintf(format, args...),
		cause:   err,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Is 에러 체인에 특정 ErrorType의 AppError가 포함되어 있는지 확인합니다.
func Is(err error, errType ErrorType) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.errType == errType {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// As 표준 errors.As를 그대로 위임합니다.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// RootCause 에러 체인의 가장 안쪽 에러를 반환합니다.
func RootCause(err error) error {
	if err == nil {
		return nil
	}

	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

// UnderlyingType 에러 체인에서 가장 안쪽에 있는 AppError의 ErrorType을 반환합니다.
// 체인에 AppError가 없으면 Unknown을 반환합니다.
//
//	err := Wrap(New(Unauthorized, "잘못된 API 키"), Unavailable, "알림 전송 실패")
//	UnderlyingType(err) // Unauthorized
func UnderlyingType(err error) ErrorType {
	last := Unknown

	for err != nil {
		if appErr, ok := err.(*AppError); ok {
			last = appErr.errType
		}
		err = errors.Unwrap(err)
	}

	return last
}
