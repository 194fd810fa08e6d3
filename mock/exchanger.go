// Package mock provides a mock token exchanger for testing code that uses
// the refresh registry.
package mock

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"golang.org/x/oauth2"
)

// Call records the arguments of one Exchange invocation
type Call struct {
	Code   string
	Params url.Values
}

// Exchanger is a mock implementation of refresh.Exchanger
type Exchanger struct {
	// ExchangeFunc is called when Exchange() is invoked
	ExchangeFunc func(ctx context.Context, code string, params url.Values) (*oauth2.Token, error)

	calls []Call

	// mu protects calls from concurrent access
	mu sync.RWMutex
}

// NewExchanger creates a mock exchanger that echoes the presented refresh
// token back alongside a fixed access token
func NewExchanger() *Exchanger {
	return &Exchanger{
		ExchangeFunc: func(ctx context.Context, code string, params url.Values) (*oauth2.Token, error) {
			return &oauth2.Token{
				AccessToken:  "new-mock-access-token",
				TokenType:    "Bearer",
				RefreshToken: code,
			}, nil
		},
	}
}

// NewEchoExchanger creates a mock exchanger that returns accessToken and
// echoes the presented refresh token
func NewEchoExchanger(accessToken string) *Exchanger {
	m := NewExchanger()
	m.ExchangeFunc = func(ctx context.Context, code string, params url.Values) (*oauth2.Token, error) {
		return &oauth2.Token{
			AccessToken:  accessToken,
			TokenType:    "Bearer",
			RefreshToken: code,
		}, nil
	}
	return m
}

// NewFailingExchanger creates a mock exchanger that always returns err
func NewFailingExchanger(err error) *Exchanger {
	m := NewExchanger()
	m.ExchangeFunc = func(ctx context.Context, code string, params url.Values) (*oauth2.Token, error) {
		return nil, err
	}
	return m
}

// Exchange records the call and delegates to ExchangeFunc
func (m *Exchanger) Exchange(ctx context.Context, code string, params url.Values) (*oauth2.Token, error) {
	// Release lock BEFORE calling user function (it may call back into the mock)
	m.mu.Lock()
	m.calls = append(m.calls, Call{Code: code, Params: cloneValues(params)})
	fn := m.ExchangeFunc
	m.mu.Unlock()

	if fn == nil {
		return nil, fmt.Errorf("ExchangeFunc not configured")
	}
	return fn(ctx, code, params)
}

// CallCount returns the number of times Exchange was called
func (m *Exchanger) CallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.calls)
}

// Calls returns a copy of all recorded calls
func (m *Exchanger) Calls() []Call {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Call(nil), m.calls...)
}

// LastCall returns the most recent call and whether there was one
func (m *Exchanger) LastCall() (Call, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.calls) == 0 {
		return Call{}, false
	}
	return m.calls[len(m.calls)-1], true
}

// Reset clears all recorded calls
func (m *Exchanger) Reset() {
	m.mu.Lock()
	m.calls = nil
	m.mu.Unlock()
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return nil
	}
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
