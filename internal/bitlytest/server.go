// Package bitlytest runs an in-process fake of the bitly v3 API for tests.
//
// The fake answers like the real service: HTTP 200 with a
// {status_code, status_txt, data} body, the status code carrying the outcome.
package bitlytest

import (
	"encoding/json"
	"fmt"
	"hash/crc32"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Envelope is the body every API method answers with.
type Envelope struct {
	StatusCode int         `json:"status_code"`
	StatusTxt  string      `json:"status_txt"`
	Data       interface{} `json:"data"`
}

// OK wraps data in a 200 envelope.
func OK(data interface{}) Envelope {
	return Envelope{StatusCode: http.StatusOK, StatusTxt: "OK", Data: data}
}

// Fail builds an error envelope with null data.
func Fail(code int, txt string) Envelope {
	return Envelope{StatusCode: code, StatusTxt: txt}
}

// HandlerFunc answers one API method given the query it was called with.
type HandlerFunc func(query url.Values) Envelope

// Call is a request received by the server.
type Call struct {
	Version string
	Method  string
	Query   url.Values
}

// Server is a fake bitly API accepting a single access token.
type Server struct {
	*httptest.Server

	token string

	mu       sync.Mutex
	handlers map[string]HandlerFunc
	calls    []Call
}

// NewServer starts a fake API accepting token. Close it when done.
func NewServer(token string) *Server {
	s := &Server{
		token: token,
		handlers: map[string]HandlerFunc{
			"shorten": shorten,
			"expand":  expand,
		},
	}
	for _, method := range []string{"clicks", "clicks_by_minute", "clicks_by_day", "lookup", "info", "referrers", "countries"} {
		s.handlers[method] = Echo(method)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/{version}/*", s.serveMethod)

	s.Server = httptest.NewServer(r)
	return s
}

// APIURL returns the host:port to configure a client's APIURL with; the
// scheme is "http".
func (s *Server) APIURL() string {
	return strings.TrimPrefix(s.URL, "http://")
}

// Handle replaces the handler for method.
func (s *Server) Handle(method string, h HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = h
}

// Calls returns every request received so far, in arrival order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// LastCall returns the most recent request.
func (s *Server) LastCall() (Call, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return Call{}, false
	}
	return s.calls[len(s.calls)-1], true
}

func (s *Server) serveMethod(w http.ResponseWriter, r *http.Request) {
	call := Call{
		Version: chi.URLParam(r, "version"),
		Method:  chi.URLParam(r, "*"),
		Query:   r.URL.Query(),
	}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	handler, ok := s.handlers[call.Method]
	s.mu.Unlock()

	var env Envelope
	switch token := call.Query.Get("access_token"); {
	case token == "":
		env = Fail(http.StatusInternalServerError, "MISSING_ARG_ACCESS_TOKEN")
	case token != s.token:
		env = Fail(http.StatusInternalServerError, "INVALID_ACCESS_TOKEN")
	case !ok:
		env = Fail(http.StatusNotFound, "NOT_FOUND")
	default:
		env = handler(call.Query)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(env)
}

// Echo answers with the query minus the access token, under key.
func Echo(key string) HandlerFunc {
	return func(query url.Values) Envelope {
		params := make(map[string][]string, len(query))
		for k, v := range query {
			if k != "access_token" {
				params[k] = v
			}
		}
		return OK(map[string]interface{}{key: params})
	}
}

// HashOf returns the deterministic hash the fake assigns to longURL.
func HashOf(longURL string) string {
	return fmt.Sprintf("%07x", crc32.ChecksumIEEE([]byte(longURL)))[:7]
}

func shorten(query url.Values) Envelope {
	longURL := query.Get("longUrl")
	if longURL == "" {
		return Fail(http.StatusInternalServerError, "MISSING_ARG_URI")
	}
	if !strings.Contains(longURL, "://") {
		return Fail(http.StatusInternalServerError, "INVALID_URI")
	}

	hash := HashOf(longURL)
	return OK(map[string]interface{}{
		"long_url":    longURL,
		"url":         "http://bit.ly/" + hash,
		"hash":        hash,
		"global_hash": hash,
		"new_hash":    1,
	})
}

func expand(query url.Values) Envelope {
	var entries []map[string]string
	for _, key := range []string{"shortUrl", "shortUrl[]"} {
		for _, shortURL := range query[key] {
			hash := shortURL[strings.LastIndex(shortURL, "/")+1:]
			entries = append(entries, map[string]string{
				"short_url": shortURL,
				"hash":      hash,
				"long_url":  "https://example.com/" + hash,
			})
		}
	}
	for _, key := range []string{"hash", "hash[]"} {
		for _, hash := range query[key] {
			entries = append(entries, map[string]string{
				"hash":     hash,
				"long_url": "https://example.com/" + hash,
			})
		}
	}
	if len(entries) == 0 {
		return Fail(http.StatusInternalServerError, "MISSING_ARG_SHORTURL_OR_HASH")
	}
	return OK(map[string]interface{}{"expand": entries})
}
