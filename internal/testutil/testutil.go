package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// TokenRequest is a token request captured by a TokenServer
type TokenRequest struct {
	Method  string
	Path    string
	Header  http.Header
	Form    url.Values
	BasicID string // client id from HTTP basic auth, if used
}

// TokenServer is a fake OAuth2 token endpoint that records every request.
type TokenServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []TokenRequest

	// Status is the HTTP status returned (default 200)
	Status int

	// Response is encoded as the JSON body
	Response map[string]any
}

// NewTokenServer starts a token endpoint answering with response. The
// server is closed when the test finishes.
func NewTokenServer(t *testing.T, response map[string]any) *TokenServer {
	t.Helper()

	ts := &TokenServer{
		Status:   http.StatusOK,
		Response: response,
	}
	ts.Server = httptest.NewServer(http.HandlerFunc(ts.handle))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *TokenServer) handle(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	basicID, _, _ := r.BasicAuth()

	ts.mu.Lock()
	ts.requests = append(ts.requests, TokenRequest{
		Method:  r.Method,
		Path:    r.URL.Path,
		Header:  r.Header.Clone(),
		Form:    r.PostForm,
		BasicID: basicID,
	})
	status := ts.Status
	response := ts.Response
	ts.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

// Requests returns a copy of all requests received so far
func (ts *TokenServer) Requests() []TokenRequest {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]TokenRequest(nil), ts.requests...)
}

// LastRequest returns the most recent request, failing the test if none arrived
func (ts *TokenServer) LastRequest(t *testing.T) TokenRequest {
	t.Helper()
	reqs := ts.Requests()
	if len(reqs) == 0 {
		t.Fatal("token server received no requests")
	}
	return reqs[len(reqs)-1]
}
