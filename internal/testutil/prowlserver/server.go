// Package prowlserver 테스트용 가짜 Prowl Public API 서버를 제공합니다.
//
// /publicapi/add, /publicapi/verify 두 엔드포인트를 실제 서비스와 같은 XML 형식으로 응답하며,
// 받은 요청을 기록하므로 테스트에서 전송된 폼 파라미터를 검사할 수 있습니다.
package prowlserver

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
)

const (
	// DefaultRemaining 초기 호출 가능 횟수 (Prowl의 시간당 기본 한도)
	DefaultRemaining = 1000

	basePath = "/publicapi"
)

// Request 서버가 받은 요청의 기록입니다.
type Request struct {
	Method      string
	Path        string
	ContentType string
	UserAgent   string
	Form        url.Values
}

type forcedResponse struct {
	status  int
	message string
	raw     string
}

// Server 가짜 Prowl API 서버입니다.
type Server struct {
	// URL 클라이언트의 WithBaseURL에 전달할 주소 (예: http://127.0.0.1:12345/publicapi)
	URL string

	ts *httptest.Server
	e  *echo.Echo

	mu        sync.Mutex
	validKeys map[string]struct{}
	remaining int
	resetDate time.Time
	forced    *forcedResponse
	requests  []Request
}

// Option 서버 생성 옵션입니다.
type Option func(*Server)

// WithValidKeys 유효한 API 키를 지정합니다. 지정하지 않으면 모든 키를 유효한 것으로 취급합니다.
func WithValidKeys(keys ...string) Option {
	return func(s *Server) {
		s.validKeys = make(map[string]struct{}, len(keys))
		for _, k := range keys {
			s.validKeys[k] = struct{}{}
		}
	}
}

// WithRemaining 초기 호출 가능 횟수를 지정합니다. 0이 되면 406으로 응답합니다.
func WithRemaining(n int) Option {
	return func(s *Server) {
		s.remaining = n
	}
}

// WithResetDate 응답에 포함할 한도 초기화 시각을 지정합니다.
func WithResetDate(t time.Time) Option {
	return func(s *Server) {
		s.resetDate = t
	}
}

// New 서버를 시작합니다. 서버는 테스트 종료 시 자동으로 닫힙니다.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		remaining: DefaultRemaining,
		resetDate: time.Now().Add(time.Hour).Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(s.record)

	g := e.Group(basePath)
	g.POST("/add", s.handleAdd)
	g.GET("/verify", s.handleVerify)

	s.e = e
	s.ts = httptest.NewServer(e)
	s.URL = s.ts.URL + basePath

	t.Cleanup(s.Close)

	return s
}

// Close 서버를 종료합니다. 여러 번 호출해도 안전합니다.
func (s *Server) Close() {
	s.ts.Close()
}

// Client 서버에 연결된 HTTP 클라이언트를 반환합니다.
func (s *Server) Client() *http.Client {
	return s.ts.Client()
}

// RespondWith 이후 모든 요청에 지정한 상태 코드와 에러 메시지로 응답하도록 합니다.
// status가 200이면 정상 성공 응답 형식을 사용합니다.
func (s *Server) RespondWith(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.forced = &forcedResponse{status: status, message: message}
}

// RespondRaw 이후 모든 요청에 지정한 상태 코드와 본문을 그대로 응답하도록 합니다.
func (s *Server) RespondRaw(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.forced = &forcedResponse{status: status, raw: body}
}

// Requests 지금까지 받은 요청의 복사본을 반환합니다.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.requests)
}

// LastRequest 마지막으로 받은 요청을 반환합니다.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Remaining 남은 호출 가능 횟수를 반환합니다.
func (s *Server) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.remaining
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		form, err := c.FormParams()
		if err != nil {
			form = url.Values{}
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:      req.Method,
			Path:        req.URL.Path,
			ContentType: req.Header.Get(echo.HeaderContentType),
			UserAgent:   req.UserAgent(),
			Form:        cloneValues(form),
		})
		s.mu.Unlock()

		return next(c)
	}
}

func (s *Server) handleAdd(c echo.Context) error {
	if done, err := s.respondForced(c); done {
		return err
	}

	keys := strings.Split(c.FormValue("apikey"), ",")
	if c.FormValue("apikey") == "" {
		return s.respondError(c, http.StatusBadRequest, "Missing apikey")
	}
	if len(keys) > 5 {
		return s.respondError(c, http.StatusBadRequest, "Too many API keys")
	}

	for _, p := range []struct {
		name string
		max  int
	}{
		{"application", 256},
		{"event", 1024},
		{"description", 10000},
		{"url", 512},
	} {
		if utf8.RuneCountInString(c.FormValue(p.name)) > p.max {
			return s.respondError(c, http.StatusBadRequest, "Parameter "+p.name+" is too long")
		}
	}
	if c.FormValue("application") == "" {
		return s.respondError(c, http.StatusBadRequest, "Missing application")
	}
	if c.FormValue("event") == "" && c.FormValue("description") == "" {
		return s.respondError(c, http.StatusBadRequest, "Missing event or description")
	}
	if v := c.FormValue("priority"); v != "" {
		if p, err := strconv.Atoi(v); err != nil || p < -2 || p > 2 {
			return s.respondError(c, http.StatusBadRequest, "Invalid priority")
		}
	}

	for _, k := range keys {
		if !s.isValidKey(k) {
			return s.respondError(c, http.StatusUnauthorized, "Invalid API key")
		}
	}

	return s.respondSuccess(c)
}

func (s *Server) handleVerify(c echo.Context) error {
	if done, err := s.respondForced(c); done {
		return err
	}

	key := c.QueryParam("apikey")
	if key == "" {
		return s.respondError(c, http.StatusBadRequest, "Missing apikey")
	}
	if !s.isValidKey(key) {
		return s.respondError(c, http.StatusUnauthorized, "Invalid API key")
	}

	return s.respondSuccess(c)
}

func (s *Server) isValidKey(k string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.validKeys == nil {
		return k != ""
	}
	_, ok := s.validKeys[k]
	return ok
}

func (s *Server) respondForced(c echo.Context) (bool, error) {
	s.mu.Lock()
	f := s.forced
	s.mu.Unlock()

	if f == nil {
		return false, nil
	}

	if f.raw != "" {
		return true, c.Blob(f.status, echo.MIMETextXMLCharsetUTF8, []byte(f.raw))
	}
	if f.status == http.StatusOK {
		return true, s.respondSuccess(c)
	}
	return true, s.respondError(c, f.status, f.message)
}

func (s *Server) respondSuccess(c echo.Context) error {
	s.mu.Lock()
	if s.remaining <= 0 {
		s.mu.Unlock()
		return s.respondError(c, http.StatusNotAcceptable, "Not accepted: Your IP address has exceeded the API limit")
	}
	s.remaining--
	body := xmlResponse{
		Success: &xmlSuccess{
			Code:      http.StatusOK,
			Remaining: s.remaining,
			ResetDate: s.resetDate.Unix(),
		},
	}
	s.mu.Unlock()

	return c.XML(http.StatusOK, body)
}

func (s *Server) respondError(c echo.Context, status int, message string) error {
	return c.XML(status, xmlResponse{
		Error: &xmlError{
			Code:    status,
			Message: message,
		},
	})
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = slices.Clone(vs)
	}
	return out
}
