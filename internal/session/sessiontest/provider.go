// Package sessiontest provides an in-memory identity provider for tests.
package sessiontest

import (
	"context"
	"errors"
	"sync"

	"github.com/BloggingApp/post-editor/internal/model"
)

var ErrProbeFailed = errors.New("probe failed")

type Provider struct {
	mu          sync.Mutex
	user        *model.User
	token       string
	probeErr    error
	logoutCalls int
	tokenReads  int

	changes chan bool
}

func NewProvider() *Provider {
	return &Provider{changes: make(chan bool, 64)}
}

// SignIn makes the provider authenticated and emits true on its change stream.
func (p *Provider) SignIn(email, token string) {
	p.mu.Lock()
	p.user = &model.User{Email: email}
	p.token = token
	p.mu.Unlock()

	p.changes <- true
}

// Expire drops the session and emits false.
func (p *Provider) Expire() {
	p.mu.Lock()
	p.user = nil
	p.token = ""
	p.mu.Unlock()

	p.changes <- false
}

// Emit pushes a raw value without touching the session.
func (p *Provider) Emit(v bool) {
	p.changes <- v
}

func (p *Provider) SetToken(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.token = token
}

func (p *Provider) FailProbe(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.probeErr = err
}

func (p *Provider) LogoutCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.logoutCalls
}

func (p *Provider) TokenReads() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.tokenReads
}

func (p *Provider) IsAuthenticated(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.probeErr != nil {
		return false, p.probeErr
	}
	return p.user != nil, nil
}

func (p *Provider) Changes() <-chan bool {
	return p.changes
}

func (p *Provider) GetUser(ctx context.Context) (*model.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.user == nil {
		return nil, errors.New("not signed in")
	}
	user := *p.user
	return &user, nil
}

func (p *Provider) GetAccessToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.tokenReads++
	return p.token, nil
}

// Logout drops the session and emits false, like a real provider does.
func (p *Provider) Logout(ctx context.Context) error {
	p.mu.Lock()
	p.logoutCalls++
	p.user = nil
	p.token = ""
	p.mu.Unlock()

	p.changes <- false
	return nil
}
