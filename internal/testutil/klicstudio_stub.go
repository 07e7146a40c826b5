package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// StubKlicStudio is an in-process KlicStudio lookalike for client tests.
// Handlers are registered per method and path; unmatched requests get a 404.
// Every request is captured and counted so tests can assert exactly how many
// calls an operation made. This is a test helper and should not be used in
// production code.
type StubKlicStudio struct {
	server *httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []CapturedRequest
}

// CapturedRequest is a snapshot of one request the stub served.
type CapturedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// NewStubKlicStudio starts a stub server that is shut down with the test.
func NewStubKlicStudio(t *testing.T) *StubKlicStudio {
	t.Helper()
	stub := &StubKlicStudio{
		handlers: make(map[string]http.HandlerFunc),
	}
	stub.server = httptest.NewServer(http.HandlerFunc(stub.dispatch))
	t.Cleanup(stub.server.Close)
	return stub
}

// URL returns the stub's base URL.
func (s *StubKlicStudio) URL() string {
	return s.server.URL
}

// Close shuts the stub down before test cleanup would. Closing twice is
// harmless, so tests may call it to simulate an unreachable service.
func (s *StubKlicStudio) Close() {
	s.server.Close()
}

// Handle registers a raw handler for a method and path.
func (s *StubKlicStudio) Handle(method, path string, handler http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method+" "+path] = handler
}

// HandleEnvelope registers a canned success envelope whose data payload is
// the JSON encoding of data.
func (s *StubKlicStudio) HandleEnvelope(method, path string, data interface{}) {
	s.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		WriteEnvelope(w, data)
	})
}

// HandleEnvelopeError registers a canned failure envelope. The HTTP status
// stays 200: the service reports failures inside the envelope.
func (s *StubKlicStudio) HandleEnvelopeError(method, path string, code int, msg string) {
	s.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		WriteEnvelopeError(w, code, msg)
	})
}

// HandleStatus registers a canned bare HTTP status response.
func (s *StubKlicStudio) HandleStatus(method, path string, status int) {
	s.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
}

func (s *StubKlicStudio) dispatch(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, CapturedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	handler, ok := s.handlers[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	handler(w, r)
}

// RequestCount returns how many requests hit a method and path.
func (s *StubKlicStudio) RequestCount(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, req := range s.requests {
		if req.Method == method && req.Path == path {
			count++
		}
	}
	return count
}

// TotalRequests returns how many requests the stub served in total.
func (s *StubKlicStudio) TotalRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// LastRequest returns the most recent request for a method and path, or nil.
func (s *StubKlicStudio) LastRequest(method, path string) *CapturedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Method == method && s.requests[i].Path == path {
			req := s.requests[i]
			return &req
		}
	}
	return nil
}

// StaticBase is a fixed base URL source for tests.
type StaticBase string

// BaseURL returns the fixed URL.
func (b StaticBase) BaseURL() string { return string(b) }

// WriteEnvelope writes a success envelope carrying data.
func WriteEnvelope(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": 0,
		"msg":   "success",
		"data":  data,
	})
}

// WriteEnvelopeError writes a failure envelope with the service's non-zero
// error code convention.
func WriteEnvelopeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": code,
		"msg":   msg,
		"data":  nil,
	})
}
