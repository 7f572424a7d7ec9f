package fetcher

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// redacted 마스킹된 값을 대신하는 문자열
const redacted = "xxxxx"

var (
	// sensitiveExactKeys 대소문자 구분 없이 전체가 일치해야 마스킹되는 파라미터 키 목록입니다.
	// Prowl은 "apikey", "providerkey", "token"을 사용합니다.
	sensitiveExactKeys = []string{
		"apikey", "providerkey", "token", "key", "secret", "password",
		"api_key", "access_token", "app_key",
	}

	// sensitiveSuffixes 이 접미사로 끝나는 키는 마스킹됩니다.
	sensitiveSuffixes = []string{
		"_token", "_secret", "_password",
	}
)

// redactHeaders 민감한 헤더를 마스킹한 복사본을 반환합니다.
func redactHeaders(h http.Header) http.Header {
	if h == nil {
		return nil
	}

	masked := h.Clone()
	for _, key := range []string{"Authorization", "Proxy-Authorization", "Cookie", "Set-Cookie"} {
		if masked.Get(key) != "" {
			masked.Set(key, "***")
		}
	}

	return masked
}

// RedactURL URL의 사용자 정보와 민감한 쿼리 파라미터 값을 마스킹한 문자열을 반환합니다.
// 원본 URL은 변경되지 않습니다.
//
//	https://api.prowlapp.com/publicapi/verify?apikey=0123abcd → https://api.prowlapp.com/publicapi/verify?apikey=xxxxx
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	ru := *u

	if u.User != nil {
		if _, has := u.User.Password(); has {
			ru.User = url.UserPassword(u.User.Username(), redacted)
		} else if u.User.Username() != "" {
			ru.User = url.User(redacted)
		}
	}

	if u.RawQuery != "" {
		ru.RawQuery = RedactValues(ru.Query()).Encode()
	}

	return ru.String()
}

// RedactValues 민감한 키의 값을 마스킹한 url.Values 복사본을 반환합니다.
// 폼 본문을 디버그 로그에 남길 때 사용합니다.
func RedactValues(values url.Values) url.Values {
	masked := make(url.Values, len(values))
	for key, vals := range values {
		if isSensitiveKey(key) {
			masked[key] = []string{redacted}
			continue
		}
		masked[key] = slices.Clone(vals)
	}
	return masked
}

func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)

	if slices.Contains(sensitiveExactKeys, lowerKey) {
		return true
	}

	for _, suffix := range sensitiveSuffixes {
		if strings.HasSuffix(lowerKey, suffix) {
			return true
		}
	}

	return false
}
