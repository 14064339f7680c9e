// Package listing holds the post list view state.
package listing

import (
	"context"
	"errors"
	"sync"

	"github.com/BloggingApp/post-editor/internal/client"
	"github.com/BloggingApp/post-editor/internal/model"
	"github.com/BloggingApp/post-editor/internal/session"
	"go.uber.org/zap"
)

type Posts interface {
	ListPosts(ctx context.Context) ([]model.Post, error)
	DeletePost(ctx context.Context, id int64) error
}

type Session interface {
	CurrentlyAuthenticated(ctx context.Context) bool
	Subscribe() *session.Subscription
}

type View struct {
	logger  *zap.Logger
	posts   Posts
	session Session

	mu            sync.RWMutex
	items         []model.Post
	authenticated bool
	sub           *session.Subscription
	closed        bool
}

func New(logger *zap.Logger, posts Posts, sess Session) *View {
	return &View{
		logger:  logger,
		posts:   posts,
		session: sess,
	}
}

// Load probes the session, subscribes to its changes and fetches the posts.
func (v *View) Load(ctx context.Context) error {
	sub := v.session.Subscribe()
	authenticated := v.session.CurrentlyAuthenticated(ctx)

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		sub.Close()
		return nil
	}
	if v.sub != nil {
		v.sub.Close()
	}
	v.sub = sub
	v.authenticated = authenticated
	v.mu.Unlock()

	go v.watchAuth(sub)

	posts, err := v.posts.ListPosts(ctx)
	if err != nil {
		v.logger.Sugar().Errorf("failed to list posts: %s", err.Error())
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.closed {
		v.items = posts
	}

	return nil
}

func (v *View) watchAuth(sub *session.Subscription) {
	for authenticated := range sub.C() {
		v.mu.Lock()
		v.authenticated = authenticated
		v.mu.Unlock()
	}
}

func (v *View) Posts() []model.Post {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]model.Post, len(v.items))
	copy(out, v.items)
	return out
}

func (v *View) Authenticated() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.authenticated
}

// Delete removes the post on the server and drops it from the local list
// whatever the server answered. A missing post counts as deleted.
func (v *View) Delete(ctx context.Context, id int64) error {
	err := v.posts.DeletePost(ctx, id)

	v.mu.Lock()
	kept := v.items[:0:0]
	for _, post := range v.items {
		if post.IDValue() != id {
			kept = append(kept, post)
		}
	}
	v.items = kept
	v.mu.Unlock()

	if err != nil && !errors.Is(err, client.ErrNotFound) {
		v.logger.Sugar().Errorf("failed to delete post(%d): %s", id, err.Error())
		return err
	}

	return nil
}

func (v *View) Close() {
	v.mu.Lock()
	v.closed = true
	sub := v.sub
	v.sub = nil
	v.mu.Unlock()

	if sub != nil {
		sub.Close()
	}
}
