package prowl

import (
	"strconv"
	"strings"
	"time"

	"github.com/clbanning/mxj"
	apperrors "github.com/darkkaiser/go-prowl/internal/pkg/errors"
)

// Quota 성공 응답에 포함된 API 호출 한도 정보입니다.
type Quota struct {
	// Remaining 한도가 초기화되기 전까지 남은 호출 수
	Remaining int

	// ResetDate 호출 한도가 초기화되는 시각
	ResetDate time.Time
}

// apiResponse Prowl 응답 본문을 해석한 결과입니다.
//
//	<prowl><success code="200" remaining="999" resetdate="1700000000"/></prowl>
//	<prowl><error code="401">Invalid API key</error></prowl>
type apiResponse struct {
	success bool
	code    int
	message string
	quota   *Quota
}

func parseResponse(body []byte) (*apiResponse, error) {
	mv, err := mxj.NewMapXml(body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "Prowl 응답 XML을 해석할 수 없습니다")
	}

	root, ok := mv["prowl"].(map[string]interface{})
	if !ok {
		return nil, apperrors.New(apperrors.ParsingFailed, "Prowl 응답에 <prowl> 요소가 없습니다")
	}

	if node, ok := root["success"]; ok {
		attrs := elementAttrs(node)
		r := &apiResponse{success: true, code: atoi(attrs["-code"])}

		if remaining, ok := attrs["-remaining"]; ok {
			q := &Quota{Remaining: atoi(remaining)}
			if ts := atoi(attrs["-resetdate"]); ts > 0 {
				q.ResetDate = time.Unix(int64(ts), 0).UTC()
			}
			r.quota = q
		}
		return r, nil
	}

	if node, ok := root["error"]; ok {
		attrs := elementAttrs(node)
		return &apiResponse{
			code:    atoi(attrs["-code"]),
			message: strings.TrimSpace(attrs["#text"]),
		}, nil
	}

	return nil, apperrors.New(apperrors.ParsingFailed, "Prowl 응답에 <success> 또는 <error> 요소가 없습니다")
}

// elementAttrs 속성은 "-이름", 텍스트는 "#text" 키로 반환합니다.
// 속성이 없는 요소는 mxj가 문자열 값으로 반환하므로 텍스트로 취급합니다.
func elementAttrs(node interface{}) map[string]string {
	out := make(map[string]string)

	switch v := node.(type) {
	case map[string]interface{}:
		for k, val := range v {
			if s, ok := val.(string); ok {
				out[k] = s
			}
		}
	case []interface{}:
		// 같은 요소가 여러 번 나오면 첫 번째만 사용합니다.
		if len(v) > 0 {
			return elementAttrs(v[0])
		}
	case string:
		out["#text"] = v
	}

	return out
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
