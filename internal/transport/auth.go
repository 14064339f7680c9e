package transport

import (
	"context"
	"net/http"
	"time"
)

type TokenSource interface {
	AccessToken(ctx context.Context) (string, bool)
}

// AuthTransport attaches the current bearer token to every outgoing request.
// The token is read again for each request since it can rotate between calls.
type AuthTransport struct {
	Base   http.RoundTripper
	Tokens TokenSource
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, ok := t.Tokens.AccessToken(req.Context())
	if !ok {
		return t.base().RoundTrip(req)
	}

	// RoundTrip must not modify the caller's request.
	authReq := req.Clone(req.Context())
	authReq.Header.Set("Authorization", "Bearer "+token)

	return t.base().RoundTrip(authReq)
}

func (t *AuthTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func NewClient(tokens TokenSource, timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &AuthTransport{Tokens: tokens},
		Timeout:   timeout,
	}
}
