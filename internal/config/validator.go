package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	apperrors "github.com/darkkaiser/go-prowl/internal/pkg/errors"
	"github.com/darkkaiser/go-prowl/pkg/prowl"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator 설정 검증용 Validator를 반환합니다. 최초 호출 시 커스텀 유효성 검사 함수를 등록합니다.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// 에러 메시지에 Go 필드명(BaseURL) 대신 설정 키(base_url)를 보여주도록 설정합니다.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		if err := v.RegisterValidation("prowl_apikey", validateAPIKey); err != nil {
			panic(fmt.Sprintf("초기화 치명적 오류: 'prowl_apikey' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
		}
		if err := v.RegisterValidation("prowl_priority", validatePriority); err != nil {
			panic(fmt.Sprintf("초기화 치명적 오류: 'prowl_priority' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
		}

		validate = v
	})

	return validate
}

// validateAPIKey 검증은 prowl.ValidateAPIKey로 위임합니다.
func validateAPIKey(fl validator.FieldLevel) bool {
	return prowl.ValidateAPIKey(fl.Field().String()) == nil
}

// validatePriority "high", "-1"처럼 prowl.ParsePriority가 해석할 수 있는 값인지 검증합니다.
func validatePriority(fl validator.FieldLevel) bool {
	_, err := prowl.ParsePriority(fl.Field().String())
	return err == nil
}

// validate 설정 항목의 유효성을 검사하고, 첫 번째 위반을 사용자 친화적인 메시지로 반환합니다.
func (c *AppConfig) validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, "설정 검증 중 알 수 없는 오류가 발생했습니다")
	}

	// 첫 번째 에러만 상세히 보고
	fe := validationErrors[0]

	// Namespace: "AppConfig.prowl.base_url" -> "prowl.base_url"
	key := fe.Namespace()
	if _, rest, ok := strings.Cut(key, "."); ok {
		key = rest
	}

	switch fe.Tag() {
	case "prowl_apikey":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("API 키(%s)는 비어 있지 않아야 하며 쉼표나 공백을 포함할 수 없습니다", key))
	case "prowl_priority":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("기본 우선순위(%s)가 올바르지 않습니다: '%v' (very-low, moderate, normal, high, emergency 또는 -2~2)", key, fe.Value()))
	case "http_url":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("API 주소(%s)가 올바른 HTTP URL이 아닙니다: '%v'", key, fe.Value()))
	case "max":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 값이 최대값(%s)을 초과했습니다", key, fe.Param()))
	case "min":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 값은 %s 이상이어야 합니다", key, fe.Param()))
	default:
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("설정이 올바르지 않습니다: %s (조건: %s)", key, fe.Tag()))
	}
}
