package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
)

// StubTransport is an http.RoundTripper that only answers registered
// requests. Anything else fails the test and never reaches the network.
type StubTransport struct {
	t testing.TB

	mu        sync.Mutex
	stubs     []*StubbedRequest
	requested []string
}

func NewStubTransport(t testing.TB) *StubTransport {
	return &StubTransport{t: t}
}

// StubbedRequest is one registered method+URL. It answers 200 with an
// empty body until told otherwise.
type StubbedRequest struct {
	t      testing.TB
	Method string
	URL    string

	mu     sync.Mutex
	status int
	body   []byte
	header http.Header
	bodies []string
}

// Stub registers method+url. Later registrations for the same key win.
func (st *StubTransport) Stub(method, url string) *StubbedRequest {
	st.mu.Lock()
	defer st.mu.Unlock()

	stub := &StubbedRequest{
		t:      st.t,
		Method: method,
		URL:    url,
		status: http.StatusOK,
		header: http.Header{"Content-Type": []string{"application/json"}},
	}
	st.stubs = append(st.stubs, stub)
	return stub
}

func (st *StubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	url := req.URL.String()
	key := req.Method + " " + url

	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
	}

	st.mu.Lock()
	st.requested = append(st.requested, key)
	var match *StubbedRequest
	for i := len(st.stubs) - 1; i >= 0; i-- {
		if st.stubs[i].Method == req.Method && st.stubs[i].URL == url {
			match = st.stubs[i]
			break
		}
	}
	st.mu.Unlock()

	if match == nil {
		st.t.Errorf("Real HTTP connections are disabled. Unregistered request: %s", key)
		return nil, fmt.Errorf("unregistered request: %s", key)
	}
	return match.respond(req, body), nil
}

// Requested reports whether method+url went through the transport.
func (st *StubTransport) Requested(method, url string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, key := range st.requested {
		if key == method+" "+url {
			return true
		}
	}
	return false
}

// Reset drops every stub and the request log.
func (st *StubTransport) Reset() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.stubs = nil
	st.requested = nil
}

// ToReturn sets the response status and body.
func (s *StubbedRequest) ToReturn(status int, body string) *StubbedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = []byte(body)
	return s
}

// ToReturnJSON sets the response to status with v encoded as JSON.
func (s *StubbedRequest) ToReturnJSON(status int, v any) *StubbedRequest {
	data, err := json.Marshal(v)
	if err != nil {
		s.t.Errorf("cannot encode stub response for %s %s: %v", s.Method, s.URL, err)
		return s
	}
	return s.ToReturn(status, string(data))
}

// Times returns how many requests matched this stub.
func (s *StubbedRequest) Times() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bodies)
}

// Bodies returns the request bodies received, in order.
func (s *StubbedRequest) Bodies() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.bodies...)
}

func (s *StubbedRequest) respond(req *http.Request, body []byte) *http.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies = append(s.bodies, string(body))

	return &http.Response{
		StatusCode:    s.status,
		Status:        fmt.Sprintf("%d %s", s.status, http.StatusText(s.status)),
		Header:        s.header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(s.body)),
		ContentLength: int64(len(s.body)),
		Request:       req,
	}
}
