package prowl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/darkkaiser/go-prowl/internal/fetcher"
	apperrors "github.com/darkkaiser/go-prowl/internal/pkg/errors"
	"github.com/darkkaiser/go-prowl/internal/pkg/version"
	applog "github.com/darkkaiser/go-prowl/pkg/log"
)

// component 로깅용 컴포넌트 이름
const component = "prowl.client"

// DefaultBaseURL Prowl Public API의 기본 주소입니다.
const DefaultBaseURL = "https://api.prowlapp.com/publicapi"

// Sender 알림을 전송하는 인터페이스입니다. *Client가 구현하며, 테스트에서는 mocks.MockSender를 사용합니다.
type Sender interface {
	Add(ctx context.Context, n *Notification) (*Quota, error)
}

// Client Prowl Public API 클라이언트입니다.
//
// 생성 이후 변경되지 않는 설정과 호스트의 *http.Client만 보관하므로 여러 고루틴에서 동시에 사용해도 안전합니다.
// 재시도와 타임아웃은 수행하지 않으며, 취소와 마감 시간은 ctx로만 제어됩니다.
type Client struct {
	baseURL string
	fetcher fetcher.Fetcher
}

var _ Sender = (*Client)(nil)

type clientOptions struct {
	httpClient       *http.Client
	baseURL          string
	userAgent        string
	maxResponseBytes int64
}

// Option Client 생성 옵션입니다.
type Option func(*clientOptions)

// WithHTTPClient 전송에 사용할 HTTP 클라이언트를 지정합니다. 기본값은 http.DefaultClient입니다.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// WithBaseURL API 주소를 지정합니다. 테스트 서버나 프록시를 사용할 때 지정합니다.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithUserAgent User-Agent 헤더 값을 지정합니다. 기본값은 "go-prowl/<버전> (<OS>; <아키텍처>)"입니다.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) {
		o.userAgent = ua
	}
}

// WithMaxResponseBytes 응답 본문 크기 제한을 지정합니다. 0이면 기본값(64KB)을 사용합니다.
func WithMaxResponseBytes(n int64) Option {
	return func(o *clientOptions) {
		o.maxResponseBytes = n
	}
}

// NewClient 새로운 Client를 생성합니다.
func NewClient(opts ...Option) *Client {
	o := clientOptions{
		baseURL:   DefaultBaseURL,
		userAgent: version.UserAgent(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(o.baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		fetcher: fetcher.New(fetcher.Options{
			Client:           o.httpClient,
			UserAgent:        o.userAgent,
			MaxResponseBytes: o.maxResponseBytes,
		}),
	}
}

// BaseURL 요청을 보내는 API 주소를 반환합니다.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Add 알림 하나를 전송합니다.
//
// 응답 본문을 모두 읽을 때까지 호출한 고루틴을 블록합니다.
// 성공(200) 시 응답에 포함된 호출 한도 정보를 반환하며, 본문을 해석할 수 없으면 Quota는 nil입니다.
// 실패 시 *SendError를 반환합니다.
func (c *Client) Add(ctx context.Context, n *Notification) (*Quota, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: notification is nil", ErrInvalidNotification)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"api_keys":    applog.MaskSensitiveList(n.apiKeys),
		"application": n.application,
		"event":       n.event,
	}).Debug("Prowl 알림 전송 요청")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/add", strings.NewReader(n.Values().Encode()))
	if err != nil {
		return nil, newTransportError(0, apperrors.Wrap(err, apperrors.Internal, "Prowl 요청을 생성할 수 없습니다"))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(ctx, req, "add")
}

// Verify API 키가 유효한지 확인합니다. 키 형식은 Params.APIKeys의 원소와 같은 규칙으로 먼저 검증합니다.
func (c *Client) Verify(ctx context.Context, apiKey string) (*Quota, error) {
	if err := ValidateAPIKey(apiKey); err != nil {
		return nil, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"api_key": applog.MaskSensitiveData(apiKey),
	}).Debug("Prowl API 키 확인 요청")

	reqURL := c.baseURL + "/verify?" + url.Values{"apikey": {apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, newTransportError(0, apperrors.Wrap(err, apperrors.Internal, "Prowl 요청을 생성할 수 없습니다"))
	}

	return c.do(ctx, req, "verify")
}

// do 요청을 전송하고 응답 상태 코드를 SendError 분류로 변환합니다. 응답 본문은 모든 경로에서 닫힙니다.
//
// 결과는 상태 코드로 결정되며 본문은 부가 정보입니다. 본문을 읽지 못하면 서비스 메시지와 Quota 없이 상태 코드만으로 분류합니다.
// 라이브러리는 Debug 레벨로만 기록하며, 실패를 사용자에게 알리는 일은 호출자의 몫입니다.
func (c *Client) do(ctx context.Context, req *http.Request, op string) (*Quota, error) {
	resp, err := c.fetcher.Do(req)
	if err != nil {
		return nil, c.fail(op, newTransportError(0, wrapTransportCause(ctx, err, op)))
	}
	defer fetcher.DrainAndClose(resp.Body)

	kind, documented := kindForStatus(resp.StatusCode)

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"op":          op,
			"status_code": resp.StatusCode,
			"error":       readErr.Error(),
		}).Debug("Prowl 응답 본문을 읽을 수 없습니다")
	}

	if resp.StatusCode == http.StatusOK {
		if readErr != nil {
			return nil, nil
		}

		r, err := parseResponse(body)
		if err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"op":    op,
				"error": err.Error(),
			}).Debug("Prowl 성공 응답의 본문을 해석할 수 없습니다")

			return nil, nil
		}

		return r.quota, nil
	}

	if !documented {
		statusErr := fetcher.NewHTTPStatusError(resp, body)
		return nil, c.fail(op, newTransportError(resp.StatusCode, apperrors.Wrap(statusErr, apperrors.Unavailable, "Prowl API가 예상하지 못한 상태 코드로 응답했습니다")))
	}

	sendErr := &SendError{
		Kind:       kind,
		StatusCode: resp.StatusCode,
	}
	if readErr == nil {
		if r, err := parseResponse(body); err == nil && !r.success {
			sendErr.Code = r.code
			sendErr.Message = r.message
		}
	}

	msg := sendErr.Message
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	sendErr.cause = apperrors.New(kind.errorType(), msg)

	return nil, c.fail(op, sendErr)
}

func (c *Client) fail(op string, e *SendError) error {
	applog.WithComponentAndFields(component, applog.Fields{
		"op":          op,
		"kind":        e.Kind.String(),
		"status_code": e.StatusCode,
		"code":        e.Code,
		"message":     e.Message,
		"error":       e.Error(),
	}).Debug("Prowl API 요청이 실패했습니다")

	return e
}

// kindForStatus Prowl이 문서화한 상태 코드의 분류를 반환합니다. 문서화되지 않은 코드는 (Transport, false)입니다.
func kindForStatus(code int) (ErrorKind, bool) {
	switch code {
	case http.StatusOK:
		return 0, true
	case http.StatusBadRequest:
		return BadRequest, true
	case http.StatusUnauthorized:
		return Unauthorized, true
	case http.StatusNotAcceptable:
		return RateLimited, true
	case http.StatusConflict:
		return NotApproved, true
	case http.StatusInternalServerError:
		return ServerError, true
	default:
		return Transport, false
	}
}

func newTransportError(statusCode int, cause error) *SendError {
	return &SendError{
		Kind:       Transport,
		StatusCode: statusCode,
		cause:      cause,
	}
}

// wrapTransportCause 마감 시간 초과는 Timeout, 이미 분류된 AppError는 그대로, 그 외는 Unavailable로 감쌉니다.
func wrapTransportCause(ctx context.Context, err error, op string) error {
	const format = "Prowl API %s 요청 전송에 실패했습니다"

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.Wrapf(err, apperrors.Timeout, format, op)
	}

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return apperrors.Wrapf(err, appErr.Type(), format, op)
	}

	return apperrors.Wrapf(err, apperrors.Unavailable, format, op)
}
