package session

import (
	"context"
	"sync"

	"github.com/BloggingApp/post-editor/internal/model"
	"github.com/BloggingApp/post-editor/internal/navigation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Bridge owns the process-wide session state. Every other component reads it
// through the bridge; only the provider's change stream and Logout mutate it.
type Bridge struct {
	logger    *zap.Logger
	provider  Provider
	navigator navigation.Navigator

	mu            sync.RWMutex
	authenticated bool
	published     bool
	subscribers   map[uuid.UUID]*Subscription

	startOnce sync.Once
}

func NewBridge(logger *zap.Logger, provider Provider, navigator navigation.Navigator) *Bridge {
	return &Bridge{
		logger:      logger,
		provider:    provider,
		navigator:   navigator,
		subscribers: make(map[uuid.UUID]*Subscription),
	}
}

// Start runs the startup probe and begins pumping the provider's change stream.
// The pump stops when ctx is done or the provider closes its stream.
func (b *Bridge) Start(ctx context.Context) {
	b.startOnce.Do(func() {
		authenticated, err := b.provider.IsAuthenticated(ctx)
		if err != nil {
			b.logger.Sugar().Errorf("failed to probe identity session: %s", err.Error())
			authenticated = false
		}
		b.publish(authenticated)

		go b.pump(ctx, b.provider.Changes())
	})
}

func (b *Bridge) pump(ctx context.Context, changes <-chan bool) {
	if changes == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-changes:
			if !ok {
				return
			}
			b.publish(v)
		}
	}
}

// publish delivers a transition. After the startup probe a value equal to the
// current state is dropped, so Logout and the provider's own logout event reach
// subscribers once.
func (b *Bridge) publish(authenticated bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.published && b.authenticated == authenticated {
		return
	}
	b.published = true
	b.authenticated = authenticated
	// push under the lock keeps publish order identical for every subscriber
	for _, sub := range b.subscribers {
		sub.push(authenticated)
	}
}

// CurrentlyAuthenticated asks the provider at call time. A failed probe is
// reported once as unauthenticated.
func (b *Bridge) CurrentlyAuthenticated(ctx context.Context) bool {
	authenticated, err := b.provider.IsAuthenticated(ctx)
	if err != nil {
		b.logger.Sugar().Errorf("failed to probe identity session: %s", err.Error())
		return false
	}
	return authenticated
}

// Authenticated returns the last published state.
func (b *Bridge) Authenticated() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.authenticated
}

func (b *Bridge) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := newSubscription(b.unsubscribe)
	b.subscribers[sub.id] = sub
	return sub
}

func (b *Bridge) unsubscribe(id uuid.UUID) {
	b.mu.Lock()
	delete(b.subscribers, id)
	b.mu.Unlock()
}

func (b *Bridge) CurrentUser(ctx context.Context) (*model.User, error) {
	user, err := b.provider.GetUser(ctx)
	if err != nil {
		b.logger.Sugar().Debugf("failed to get session user: %s", err.Error())
		return nil, ErrSessionUnavailable
	}
	if user == nil {
		return nil, ErrSessionUnavailable
	}
	return user, nil
}

// AccessToken re-reads the token from the provider on every call.
func (b *Bridge) AccessToken(ctx context.Context) (string, bool) {
	token, err := b.provider.GetAccessToken(ctx)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// Logout terminates the provider session, tells every subscriber and navigates to
// redirectPath.
func (b *Bridge) Logout(ctx context.Context, redirectPath string) error {
	if err := b.provider.Logout(ctx); err != nil {
		b.logger.Sugar().Errorf("failed to logout: %s", err.Error())
		return err
	}

	b.publish(false)

	if b.navigator != nil {
		b.navigator.Navigate(redirectPath)
	}

	return nil
}

// Subscribers reports how many handles are currently open.
func (b *Bridge) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subscribers)
}
