package prowl

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	tagAPIKey   = "prowl_apikey"
	tagPriority = "prowl_priority"
	tagUTF8     = "prowl_utf8"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator 알림 검증에 사용하는 validator를 반환합니다. 사용자 정의 태그는 최초 호출 시 한 번만 등록됩니다.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// FieldError.Field()가 Go 필드명 대신 json 태그(Prowl 파라미터 표기)를 반환하도록 합니다.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// 등록 실패는 태그 이름이 잘못된 프로그래밍 오류이므로 panic 합니다.
		if err := v.RegisterValidation(tagAPIKey, validateAPIKey); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation(tagPriority, validatePriority); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation(tagUTF8, validateUTF8); err != nil {
			panic(err)
		}

		validate = v
	})

	return validate
}

// validateAPIKey 키가 쉼표로 이어 붙여 전송되므로 쉼표와 공백 문자를 허용하지 않습니다.
func validateAPIKey(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), isKeySeparator)
}

func isKeySeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// ValidateAPIKey API 키 하나가 Params.APIKeys의 원소 규칙(비어 있지 않고 쉼표와 공백이 없음)을 만족하는지 검증합니다.
func ValidateAPIKey(key string) error {
	if err := getValidator().Var(key, "required,"+tagAPIKey); err != nil {
		return toValidationError(err, FieldAPIKeys, nil)
	}
	return nil
}

func validatePriority(fl validator.FieldLevel) bool {
	return Priority(fl.Field().Int()).IsValid()
}

// validateUTF8 잘못된 UTF-8 바이트가 없는지 검사합니다.
func validateUTF8(fl validator.FieldLevel) bool {
	return utf8.ValidString(fl.Field().String())
}

// toValidationError validator가 반환한 첫 번째 위반을 ValidationError로 변환합니다.
// 단일 값 검사(Var)는 필드 이름이 없으므로 field로 지정합니다.
func toValidationError(err error, field string, value func(field string) any) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		// InvalidValidationError: Params가 아닌 값이 전달된 경우로 발생하지 않아야 합니다.
		return err
	}

	fe := ves[0]

	if field == "" {
		// 원소 단위 위반은 "api_keys[2]" 형태이므로 인덱스를 떼어냅니다.
		field, _, _ = strings.Cut(fe.Field(), "[")
	}

	var rule string
	switch fe.Tag() {
	case "required":
		rule = RuleRequired
	case "min":
		rule = RuleMin
	case "max":
		rule = RuleMax
	case "url", "http_url":
		rule = RuleURL
	case tagAPIKey:
		rule = RuleKeyFormat
	case tagPriority:
		rule = RuleRange
	case tagUTF8:
		rule = RuleUTF8
	default:
		rule = fe.Tag()
	}

	// 컬렉션 자체의 위반(개수)은 호출자가 지정한 값으로 보고합니다.
	v := fe.Value()
	if value != nil && !strings.Contains(fe.Field(), "[") {
		if override := value(field); override != nil {
			v = override
		}
	}

	return newValidationError(field, rule, fe.Param(), v)
}
