// Package editor drives a single post through load, edit and save.
//
// An Editor is bound to the navigation path it was created for. Its mode is
// resolved once and a new Editor is needed for a different path.
package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/BloggingApp/post-editor/internal/idgen"
	"github.com/BloggingApp/post-editor/internal/model"
	"github.com/BloggingApp/post-editor/internal/navigation"
	"github.com/BloggingApp/post-editor/internal/route"
	"github.com/BloggingApp/post-editor/internal/session"
	"go.uber.org/zap"
)

type Posts interface {
	ListPosts(ctx context.Context) ([]model.Post, error)
	GetPost(ctx context.Context, id int64) (*model.Post, error)
	CreatePost(ctx context.Context, post model.Post) (*model.Post, error)
	UpdatePost(ctx context.Context, post model.Post) (*model.Post, error)
}

type Session interface {
	CurrentUser(ctx context.Context) (*model.User, error)
	Authenticated() bool
	Subscribe() *session.Subscription
}

type Deps struct {
	Logger    *zap.Logger
	Posts     Posts
	Session   Session
	Navigator navigation.Navigator
}

type Editor struct {
	logger    *zap.Logger
	posts     Posts
	session   Session
	navigator navigation.Navigator
	mode      route.Mode
	sub       *session.Subscription

	mu            sync.RWMutex
	state         State
	working       model.Post
	bootstrap     []model.Post
	authorEmail   string
	authenticated bool
	err           error
	closed        bool
}

// New resolves the editor mode from path and subscribes to authentication changes.
func New(deps Deps, path string) (*Editor, error) {
	mode, err := route.Resolve(path)
	if err != nil {
		return nil, err
	}

	sub := deps.Session.Subscribe()
	e := &Editor{
		logger:        deps.Logger,
		posts:         deps.Posts,
		session:       deps.Session,
		navigator:     deps.Navigator,
		mode:          mode,
		sub:           sub,
		state:         StateLoading,
		authenticated: deps.Session.Authenticated(),
	}
	go e.watchAuth(sub)

	return e, nil
}

func (e *Editor) watchAuth(sub *session.Subscription) {
	for authenticated := range sub.C() {
		e.mu.Lock()
		e.authenticated = authenticated
		e.mu.Unlock()
	}
}

func (e *Editor) Mode() route.Mode {
	return e.mode
}

func (e *Editor) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.state
}

// Err returns the error of the last failed load or save.
func (e *Editor) Err() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.err
}

func (e *Editor) Authenticated() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.authenticated
}

// Post returns a copy of the working copy.
func (e *Editor) Post() model.Post {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.working
}

func (e *Editor) AuthorEmail() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.authorEmail
}

// NextID previews the id a create-mode save would assign.
func (e *Editor) NextID() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return idgen.NextID(e.bootstrap)
}

// Load fetches what the mode needs and moves the editor to Ready or Failed.
func (e *Editor) Load(ctx context.Context) error {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return ErrClosed
	}
	if e.state != StateLoading {
		e.mu.RUnlock()
		return nil
	}
	e.mu.RUnlock()

	switch mode := e.mode.(type) {
	case route.Create:
		return e.loadNew(ctx)
	case route.Edit:
		return e.loadExisting(ctx, mode.ID)
	default:
		return fmt.Errorf("unsupported editor mode %v", mode)
	}
}

func (e *Editor) loadNew(ctx context.Context) error {
	email := e.currentAuthor(ctx)

	posts, err := e.posts.ListPosts(ctx)
	if err != nil {
		e.logger.Sugar().Errorf("failed to list posts for a new post: %s", err.Error())
		posts = nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	e.bootstrap = posts
	e.authorEmail = email
	e.working = model.Post{}
	e.err = err
	e.state = StateReady

	return nil
}

func (e *Editor) loadExisting(ctx context.Context, id int64) error {
	email := e.currentAuthor(ctx)

	post, err := e.posts.GetPost(ctx, id)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	e.authorEmail = email
	if err != nil {
		e.logger.Sugar().Errorf("failed to load post(%d): %s", id, err.Error())
		e.err = err
		e.state = StateFailed
		return err
	}

	e.working = *post
	// the route owns the identity; a response without an id must not turn Save into a create
	e.working.ID = model.ID(id)
	e.state = StateReady

	return nil
}

func (e *Editor) currentAuthor(ctx context.Context) string {
	user, err := e.session.CurrentUser(ctx)
	if err != nil {
		e.logger.Sugar().Errorf("failed to get current user: %s", err.Error())
		return ""
	}
	return user.Email
}

func (e *Editor) SetTitle(title string) error {
	return e.edit(func(p *model.Post) { p.Title = title })
}

func (e *Editor) SetBody(body string) error {
	return e.edit(func(p *model.Post) { p.Body = body })
}

func (e *Editor) SetDescription(description string) error {
	return e.edit(func(p *model.Post) { p.Description = description })
}

func (e *Editor) edit(fn func(p *model.Post)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if e.state != StateReady {
		return ErrNotReady
	}
	fn(&e.working)

	return nil
}

// Save persists the working copy. On success the editor navigates to the post
// list; on failure it returns to Ready with the working copy untouched.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.state != StateReady {
		e.mu.Unlock()
		return ErrNotReady
	}

	post := e.working
	_, create := e.mode.(route.Create)
	if create {
		post = post.WithID(idgen.NextID(e.bootstrap))
		post.AuthorEmail = e.authorEmail
	}
	e.state = StateSaving
	e.mu.Unlock()

	var err error
	if create {
		_, err = e.posts.CreatePost(ctx, post)
	} else {
		_, err = e.posts.UpdatePost(ctx, post)
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		e.logger.Sugar().Errorf("failed to save post(%d): %s", post.IDValue(), err.Error())
		e.err = err
		e.state = StateReady
		e.mu.Unlock()
		return err
	}
	e.err = nil
	e.state = StateDone
	e.mu.Unlock()

	e.navigator.Navigate(route.ListPath)

	return nil
}

// Close discards the working copy and releases the auth subscription. Results of
// calls still in flight are ignored.
func (e *Editor) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	e.sub.Close()
}
