package errors

import "strconv"

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

const (
	// Unknown 분류되지 않은 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그 등)
	Internal

	// System 로컬 시스템 자원(파일, 디렉토리 등) 오류
	System

	// InvalidInput 잘못된 입력값 (유효성 검사 실패)
	InvalidInput

	// NotFound 참조 대상을 찾을 수 없음
	NotFound

	// Unauthorized 인증 실패 (API 키 거부)
	Unauthorized

	// Forbidden 승인되지 않은 요청
	Forbidden

	// RateLimited 호출 한도 초과
	RateLimited

	// ParsingFailed 응답 데이터 해석 실패
	ParsingFailed

	// Timeout 작업 시간 초과
	Timeout

	// Unavailable 원격 서비스 또는 네트워크 일시적 사용 불가
	Unavailable
)

var errorTypeNames = [...]string{
	Unknown:       "Unknown",
	Internal:      "Internal",
	System:        "System",
	InvalidInput:  "InvalidInput",
	NotFound:      "NotFound",
	Unauthorized:  "Unauthorized",
	Forbidden:     "Forbidden",
	RateLimited:   "RateLimited",
	ParsingFailed: "ParsingFailed",
	Timeout:       "Timeout",
	Unavailable:   "Unavailable",
}

func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
