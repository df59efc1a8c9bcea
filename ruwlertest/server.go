package ruwlertest

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ruwler/ruwler-go/component"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Reply is one programmed answer.
type Reply struct {
	Status int
	// Body is sent as JSON unless it is a string or []byte, which are sent verbatim.
	Body        any
	ContentType string
	Header      map[string]string
	// Delay holds the answer back, or until the client gives up.
	Delay time.Duration
	// HangUp closes the connection without writing a response.
	HangUp bool
}

// Recorded is a request as the server saw it.
type Recorded struct {
	Method     string
	Path       string
	RawQuery   string
	RequestURI string
	Header     http.Header
	Body       []byte
}

// JSONBody decodes the recorded body into a generic value.
func (r Recorded) JSONBody() (map[string]any, error) {
	var out map[string]any
	if len(r.Body) == 0 {
		return nil, nil
	}
	err := json.Unmarshal(r.Body, &out)
	return out, err
}

// Query parses the recorded query string.
func (r Recorded) Query() url.Values {
	q, _ := url.ParseQuery(r.RawQuery)
	return q
}

// Server is a fake Ruwler API backed by httptest.Server and Gin.
// It implements component.Component.
type Server struct {
	mu       sync.Mutex
	engine   *gin.Engine
	ts       *httptest.Server
	routes   map[string][]Reply
	requests []Recorded
	fallback Reply
}

var _ component.Component = (*Server)(nil)

// New creates a server that is not listening yet.
func New() *Server {
	s := &Server{
		routes: make(map[string][]Reply),
		fallback: Reply{
			Status: http.StatusNotFound,
			Body:   map[string]any{"description": "not found"},
		},
	}
	s.engine = gin.New()
	s.engine.Use(requestID())
	s.engine.NoRoute(s.dispatch)
	return s
}

// Start creates and starts a server that is stopped when the test ends.
func Start(t testing.TB) *Server {
	t.Helper()
	s := New()
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("failed to start fake Ruwler API: %v", err)
	}
	t.Cleanup(func() { _ = s.Stop(context.Background()) })
	return s
}

// Handle programs replies for method and path. Successive requests get
// successive replies and the last one repeats.
func (s *Server) Handle(method, path string, replies ...Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[routeKey(method, path)] = append([]Reply(nil), replies...)
}

// JSON programs a single JSON reply.
func (s *Server) JSON(method, path string, status int, body any) {
	s.Handle(method, path, Reply{Status: status, Body: body})
}

// Fallback replaces the reply used for unprogrammed routes.
func (s *Server) Fallback(r Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = r
}

// Requests returns every request received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() (Recorded, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Recorded{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// URL returns the base URL, or "" before Start.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ts == nil {
		return ""
	}
	return s.ts.URL
}

// Endpoint splits the base URL into the parts a client config needs.
func (s *Server) Endpoint() (scheme, host string, port int) {
	u, err := url.Parse(s.URL())
	if err != nil {
		return "", "", 0
	}
	h, p, err := net.SplitHostPort(u.Host)
	if err != nil {
		return u.Scheme, u.Host, 0
	}
	port, _ = strconv.Atoi(p)
	return u.Scheme, h, port
}

func (s *Server) dispatch(c *gin.Context) {
	body, _ := c.GetRawData()
	rec := Recorded{
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		RawQuery:   c.Request.URL.RawQuery,
		RequestURI: c.Request.RequestURI,
		Header:     c.Request.Header.Clone(),
		Body:       body,
	}
	reply := s.record(rec)

	if reply.Delay > 0 {
		select {
		case <-time.After(reply.Delay):
		case <-c.Request.Context().Done():
			return
		}
	}
	if reply.HangUp {
		if conn, _, err := c.Writer.Hijack(); err == nil {
			_ = conn.Close()
		}
		return
	}
	for k, v := range reply.Header {
		c.Header(k, v)
	}
	writeReply(c, reply)
}

func (s *Server) record(rec Recorded) Reply {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, rec)

	key := routeKey(rec.Method, rec.Path)
	replies, ok := s.routes[key]
	if !ok || len(replies) == 0 {
		return s.fallback
	}
	reply := replies[0]
	if len(replies) > 1 {
		s.routes[key] = replies[1:]
	}
	return reply
}

func writeReply(c *gin.Context, r Reply) {
	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	switch body := r.Body.(type) {
	case nil:
		c.Status(status)
	case string:
		c.Data(status, contentTypeOr(r.ContentType, "text/plain; charset=utf-8"), []byte(body))
	case []byte:
		c.Data(status, contentTypeOr(r.ContentType, "application/octet-stream"), body)
	default:
		payload, err := json.Marshal(body)
		if err != nil {
			c.String(http.StatusInternalServerError, fmt.Sprintf("ruwlertest: %v", err))
			return
		}
		c.Data(status, contentTypeOr(r.ContentType, "application/ld+json"), payload)
	}
}

func contentTypeOr(ct, fallback string) string {
	if ct != "" {
		return ct
	}
	return fallback
}

func routeKey(method, path string) string { return method + " " + path }

// requestID echoes X-Request-Id, generating one when the client sent none.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

// --- component.Component ---

func (s *Server) Name() string { return "ruwler-fake" }

func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ts != nil {
		return fmt.Errorf("ruwlertest: server already started")
	}
	s.ts = httptest.NewServer(s.engine)
	return nil
}

func (s *Server) Stop(_ context.Context) error {
	s.mu.Lock()
	ts := s.ts
	s.ts = nil
	s.mu.Unlock()
	if ts != nil {
		ts.Close()
	}
	return nil
}

func (s *Server) Health(_ context.Context) component.Health {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ts == nil {
		return component.Health{Name: s.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: s.Name(), Status: component.StatusHealthy}
}

// Reset forgets programmed routes and recorded requests.
func (s *Server) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = make(map[string][]Reply)
	s.requests = nil
	return nil
}
