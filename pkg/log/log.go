// Package log logrus 기반의 구조적 로깅 헬퍼를 제공합니다.
//
// 라이브러리 코드는 WithComponent/WithComponentAndFields로 component 필드가 붙은 Entry를 얻어 기록하고,
// 출력 대상(콘솔, 로테이션 파일)은 애플리케이션이 Setup으로 구성합니다.
// Setup을 호출하지 않은 호스트 애플리케이션에서는 logrus 표준 로거 설정을 그대로 따릅니다.
package log

import (
	"github.com/sirupsen/logrus"
)

// SetDebugMode Debug 모드에 따라 로그 레벨을 설정합니다.
//   - Debug 모드: Trace 레벨 (모든 로그 출력)
//   - 운영 모드: Info 레벨
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
	} else {
		logrus.SetLevel(InfoLevel)
	}
}

// MaskSensitiveData API 키 등 민감한 값을 로그에 남길 수 있도록 마스킹합니다.
func MaskSensitiveData(data string) string {
	if data == "" {
		return ""
	}

	// 3자 이하는 전체 마스킹
	if len(data) <= 3 {
		return "***"
	}

	if len(data) <= 12 {
		return data[:4] + "***"
	}

	// 긴 키는 앞 4자 + 마스킹 + 뒤 4자
	return data[:4] + "***" + data[len(data)-4:]
}

// MaskSensitiveList 여러 개의 민감한 값을 각각 마스킹합니다.
func MaskSensitiveList(data []string) []string {
	masked := make([]string, len(data))
	for i, d := range data {
		masked[i] = MaskSensitiveData(d)
	}
	return masked
}

// WithComponent component 필드를 포함한 로그 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 로그 Entry를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	newFields := make(Fields, len(fields)+1)
	for k, v := range fields {
		newFields[k] = v
	}
	newFields["component"] = component
	return logrus.WithFields(newFields)
}
