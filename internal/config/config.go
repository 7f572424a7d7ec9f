// Package config prowl 명령행 도구의 설정을 로드합니다.
//
// 설정 값은 다음 순서로 덮어씁니다. (뒤쪽이 우선)
//
//  1. 기본값 (newDefaultConfig)
//  2. JSON 설정 파일 (기본: prowl.json)
//  3. PROWL_ 접두사 환경 변수 (계층 구분자: "__", 예: PROWL_PROWL__API_KEYS=k1,k2)
//
// 명령행 플래그는 로드 이후 호출자가 직접 적용합니다.
// 라이브러리(pkg/prowl)는 이 패키지를 사용하지 않습니다.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	apperrors "github.com/darkkaiser/go-prowl/internal/pkg/errors"
	applog "github.com/darkkaiser/go-prowl/pkg/log"
	"github.com/darkkaiser/go-prowl/pkg/prowl"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션 식별자. 설정 파일명과 로그 파일명에 사용됩니다.
	AppName = "prowl"

	// DefaultFilename 경로를 지정하지 않았을 때 읽는 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정 값을 덮어쓰는 환경 변수의 접두사입니다.
	EnvPrefix = "PROWL_"

	// DefaultApplication 알림의 application 필드 기본값
	DefaultApplication = "prowl-cli"

	// DefaultLogMaxAge 로그 파일 보관 기간 기본값 (일)
	DefaultLogMaxAge = 30
)

// AppConfig 설정의 최상위 구조체
type AppConfig struct {
	Debug bool        `json:"debug"`
	Prowl ProwlConfig `json:"prowl"`
	Log   LogConfig   `json:"log"`
}

// ProwlConfig Prowl API 호출 설정
type ProwlConfig struct {
	BaseURL          string   `json:"base_url" validate:"required,http_url"`
	APIKeys          []string `json:"api_keys" validate:"max=5,dive,prowl_apikey"`
	Application      string   `json:"application" validate:"required,max=256"`
	DefaultPriority  string   `json:"default_priority" validate:"omitempty,prowl_priority"`
	MaxResponseBytes int64    `json:"max_response_bytes" validate:"min=-1"`
}

// Priority 기본 우선순위와 지정 여부를 반환합니다. 검증을 통과한 설정에서만 호출해야 합니다.
func (c *ProwlConfig) Priority() (prowl.Priority, bool) {
	if c.DefaultPriority == "" {
		return prowl.Normal, false
	}
	p, err := prowl.ParsePriority(c.DefaultPriority)
	if err != nil {
		return prowl.Normal, false
	}
	return p, true
}

// ClientOptions 설정 값에 대응하는 prowl.Client 생성 옵션을 반환합니다.
func (c *ProwlConfig) ClientOptions() []prowl.Option {
	return []prowl.Option{
		prowl.WithBaseURL(c.BaseURL),
		prowl.WithMaxResponseBytes(c.MaxResponseBytes),
	}
}

// LogConfig 로그 출력 설정
type LogConfig struct {
	Dir        string `json:"dir"`
	MaxAge     int    `json:"max_age" validate:"min=0"`
	MaxSizeMB  int    `json:"max_size_mb" validate:"min=0"`
	MaxBackups int    `json:"max_backups" validate:"min=0"`
	Console    bool   `json:"console"`
}

// Options 로깅 시스템 초기화 옵션으로 변환합니다.
func (c *LogConfig) Options(debug bool) applog.Options {
	level := applog.InfoLevel
	if debug {
		level = applog.DebugLevel
	}

	return applog.Options{
		Name:             AppName,
		Dir:              c.Dir,
		Level:            level,
		MaxAge:           c.MaxAge,
		MaxSizeMB:        c.MaxSizeMB,
		MaxBackups:       c.MaxBackups,
		EnableConsoleLog: c.Console,
		ReportCaller:     debug,
	}
}

// newDefaultConfig 모든 설정 항목의 기본값을 반환합니다.
func newDefaultConfig() *AppConfig {
	return &AppConfig{
		Debug: false,
		Prowl: ProwlConfig{
			BaseURL:     prowl.DefaultBaseURL,
			Application: DefaultApplication,
		},
		Log: LogConfig{
			MaxAge:  DefaultLogMaxAge,
			Console: true,
		},
	}
}

// Load 기본 설정 파일(prowl.json)을 읽습니다. 파일이 없으면 기본값과 환경 변수만으로 설정을 구성합니다.
func Load() (*AppConfig, error) {
	return load(DefaultFilename, false)
}

// LoadWithFile 지정된 설정 파일을 읽습니다. 파일이 없으면 NotFound 에러를 반환합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	return load(filename, true)
}

func load(filename string, mustExist bool) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	if err := k.Load(structs.Provider(newDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드 (기본값 덮어쓰기)
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
		}
		if mustExist {
			return nil, apperrors.Wrap(err, apperrors.NotFound, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
	}

	// 3. 환경 변수 로드 (최우선 순위)
	// 예: PROWL_PROWL__API_KEYS -> prowl.api_keys
	if err := k.Load(env.Provider(EnvPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링
	var appConfig AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				// 환경 변수로 전달된 "k1,k2"를 []string으로 변환
				mapstructure.StringToSliceHookFunc(","),
			),
			ErrorUnused:      true, // 구조체에 없는 키(오타 등)가 있으면 에러
			WeaklyTypedInput: true,
			Result:           &appConfig,
		},
	}
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 데이터를 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사
	if err := appConfig.validate(); err != nil {
		return nil, err
	}

	return &appConfig, nil
}

// normalizeEnvKey 환경 변수 이름을 설정 키 경로로 변환합니다.
//
//	PROWL_LOG__MAX_AGE -> log.max_age
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}
