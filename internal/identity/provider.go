package identity

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/BloggingApp/post-editor/internal/model"
	"go.uber.org/zap"
)

var ErrNotSignedIn = errors.New("not signed in")

// Provider is a session provider over a bearer JWT obtained outside this process.
type Provider struct {
	logger *zap.Logger
	store  TokenStore
	now    func() time.Time

	mu       sync.Mutex
	observed bool
	last     bool
	pending  []bool
	notify   chan struct{}
	done     chan struct{}
	once     sync.Once
	changes  chan bool
}

func NewProvider(logger *zap.Logger, store TokenStore) *Provider {
	p := &Provider{
		logger:  logger,
		store:   store,
		now:     time.Now,
		notify:  make(chan struct{}, 1),
		done:    make(chan struct{}),
		changes: make(chan bool),
	}
	go p.forward()
	return p
}

// Close stops the change stream. Transitions not yet read are discarded.
func (p *Provider) Close() {
	p.once.Do(func() {
		close(p.done)
	})
}

// SignIn stores token and reports the transition.
func (p *Provider) SignIn(ctx context.Context, token string) (*model.User, error) {
	user, err := userFromToken(token)
	if err != nil {
		return nil, err
	}
	if p.expired(token) {
		return nil, ErrNotSignedIn
	}

	if err := p.store.Save(ctx, token); err != nil {
		return nil, err
	}
	p.emit(true)

	return user, nil
}

func (p *Provider) IsAuthenticated(ctx context.Context) (bool, error) {
	_, err := p.activeToken(ctx)
	if errors.Is(err, ErrNotSignedIn) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *Provider) Changes() <-chan bool {
	return p.changes
}

func (p *Provider) GetUser(ctx context.Context) (*model.User, error) {
	token, err := p.activeToken(ctx)
	if err != nil {
		return nil, err
	}
	return userFromToken(token)
}

func (p *Provider) GetAccessToken(ctx context.Context) (string, error) {
	token, err := p.activeToken(ctx)
	if errors.Is(err, ErrNotSignedIn) {
		return "", nil
	}
	return token, err
}

func (p *Provider) Logout(ctx context.Context) error {
	if err := p.store.Delete(ctx); err != nil {
		return err
	}
	p.emit(false)
	return nil
}

// activeToken returns the stored token, dropping it once expired.
func (p *Provider) activeToken(ctx context.Context) (string, error) {
	token, err := p.store.Load(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		p.observe(false)
		return "", ErrNotSignedIn
	}

	if p.expired(token) {
		p.logger.Sugar().Infof("access token expired, dropping session")
		if err := p.store.Delete(ctx); err != nil {
			p.logger.Sugar().Errorf("failed to delete expired token: %s", err.Error())
		}
		p.observe(false)
		return "", ErrNotSignedIn
	}

	p.observe(true)

	return token, nil
}

func (p *Provider) expired(token string) bool {
	exp, ok := tokenExpiry(token)
	return ok && !p.now().Before(exp)
}

// observe records what the store holds. The first observation is the baseline
// the bridge probes at startup; later ones emit when the store changed under us,
// e.g. another process signed in or out.
func (p *Provider) observe(authenticated bool) {
	p.mu.Lock()
	if !p.observed {
		p.observed = true
		p.last = authenticated
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.emit(authenticated)
}

// emit queues only real transitions. The queue is unbounded so a slow reader
// delays transitions but never loses one.
func (p *Provider) emit(authenticated bool) {
	p.mu.Lock()
	p.observed = true
	if p.last == authenticated {
		p.mu.Unlock()
		return
	}
	p.last = authenticated
	p.pending = append(p.pending, authenticated)
	p.mu.Unlock()

	select {
	case p.notify <- struct{}{}:
	default:
	}
}

func (p *Provider) forward() {
	defer close(p.changes)

	for {
		p.mu.Lock()
		if len(p.pending) == 0 {
			p.mu.Unlock()
			select {
			case <-p.notify:
				continue
			case <-p.done:
				return
			}
		}
		v := p.pending[0]
		p.pending = p.pending[1:]
		p.mu.Unlock()

		select {
		case p.changes <- v:
		case <-p.done:
			return
		}
	}
}
