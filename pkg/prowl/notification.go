package prowl

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Params 알림을 만들기 위한 입력 값입니다. NewNotification으로 검증을 통과해야 전송할 수 있습니다.
//
// 필드 선언 순서가 곧 검증 순서입니다. 여러 필드가 동시에 잘못되면 가장 앞선 필드의 위반이 보고됩니다.
type Params struct {
	// APIKeys 수신자 API 키 목록 (1~5개). 중복은 첫 번째 등장 순서를 유지한 채 제거됩니다.
	APIKeys []string `json:"api_keys" validate:"min=1,max=5,dive,required,prowl_apikey"`

	// Application 보내는 애플리케이션 이름 (1~256자)
	Application string `json:"application" validate:"required,prowl_utf8,max=256"`

	// Event 알림 제목 (1~1024자)
	Event string `json:"event" validate:"required,prowl_utf8,max=1024"`

	// Description 알림 본문 (1~10000자)
	Description string `json:"description" validate:"required,prowl_utf8,max=10000"`

	// URL 알림에 첨부할 URL (선택, 512자 이하). 빈 문자열은 지정하지 않은 것으로 취급합니다.
	URL string `json:"url" validate:"omitempty,prowl_utf8,max=512,url"`

	// Priority 우선순위 (선택). nil이면 서비스 기본값을 사용합니다.
	Priority *Priority `json:"priority" validate:"omitempty,prowl_priority"`
}

// Notification 검증을 통과한 알림입니다. 생성 이후에는 변경할 수 없습니다.
type Notification struct {
	apiKeys     []string
	priority    *Priority
	url         string
	application string
	event       string
	description string
}

// NewNotification 입력 값을 정규화하고 검증하여 Notification을 생성합니다.
//
// 텍스트 필드는 NFC로 정규화한 뒤 문자(rune) 단위로 길이를 셉니다. 잘못된 UTF-8 바이트가 있으면 RuleUTF8 위반입니다.
// 위반이 있으면 첫 번째 위반을 *ValidationError로 반환합니다.
func NewNotification(p Params) (*Notification, error) {
	normalized := Params{
		APIKeys:     dedupKeys(p.APIKeys),
		Application: norm.NFC.String(p.Application),
		Event:       norm.NFC.String(p.Event),
		Description: norm.NFC.String(p.Description),
		URL:         p.URL,
	}
	if p.Priority != nil {
		normalized.Priority = p.Priority.Ptr()
	}

	if err := getValidator().Struct(normalized); err != nil {
		return nil, toValidationError(err, "", func(field string) any {
			if field == FieldAPIKeys {
				return len(normalized.APIKeys)
			}
			return nil
		})
	}

	return &Notification{
		apiKeys:     normalized.APIKeys,
		priority:    normalized.Priority,
		url:         normalized.URL,
		application: normalized.Application,
		event:       normalized.Event,
		description: normalized.Description,
	}, nil
}

// dedupKeys 첫 번째 등장 순서를 유지하면서 중복 키를 제거합니다. 원본 슬라이스는 변경하지 않습니다.
func dedupKeys(keys []string) []string {
	if keys == nil {
		return nil
	}

	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// APIKeys 수신자 API 키 목록의 복사본을 반환합니다.
func (n *Notification) APIKeys() []string { return slices.Clone(n.apiKeys) }

// Priority 우선순위와 지정 여부를 반환합니다.
func (n *Notification) Priority() (Priority, bool) {
	if n.priority == nil {
		return Normal, false
	}
	return *n.priority, true
}

func (n *Notification) URL() string         { return n.url }
func (n *Notification) Application() string { return n.application }
func (n *Notification) Event() string       { return n.event }
func (n *Notification) Description() string { return n.description }

// Values Prowl add API에 전송할 폼 파라미터를 반환합니다.
// priority와 url은 지정된 경우에만 포함됩니다.
func (n *Notification) Values() url.Values {
	v := url.Values{}
	v.Set("apikey", strings.Join(n.apiKeys, ","))
	v.Set("application", n.application)
	v.Set("event", n.event)
	v.Set("description", n.description)
	if n.priority != nil {
		v.Set("priority", strconv.Itoa(n.priority.Int()))
	}
	if n.url != "" {
		v.Set("url", n.url)
	}
	return v
}
