package listing

import (
	"context"
	"testing"
	"time"

	"github.com/BloggingApp/post-editor/internal/client"
	"github.com/BloggingApp/post-editor/internal/handler/handlertest"
	"github.com/BloggingApp/post-editor/internal/model"
	"github.com/BloggingApp/post-editor/internal/navigation"
	"github.com/BloggingApp/post-editor/internal/session"
	"github.com/BloggingApp/post-editor/internal/session/sessiontest"
	"github.com/BloggingApp/post-editor/internal/transport"
	"github.com/BloggingApp/post-editor/pkg/utils"
	"go.uber.org/zap"
)

func newView(t *testing.T) (*View, *handlertest.Server, *sessiontest.Provider, *session.Bridge) {
	t.Helper()

	srv := handlertest.NewServer(t)
	provider := sessiontest.NewProvider()
	bridge := session.NewBridge(zap.NewNop(), provider, navigation.NewHistory("/posts"))

	tok, err := utils.EncodeJWT("ann@example.com", time.Hour, handlertest.Secret)
	if err != nil {
		t.Fatalf("EncodeJWT: %v", err)
	}
	provider.SignIn("ann@example.com", tok)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	bridge.Start(ctx)

	posts := client.New(zap.NewNop(), srv.APIURL(), transport.NewClient(bridge, 5*time.Second))
	view := New(zap.NewNop(), posts, bridge)
	t.Cleanup(view.Close)

	return view, srv, provider, bridge
}

func ids(posts []model.Post) []int64 {
	out := make([]int64, 0, len(posts))
	for _, post := range posts {
		out = append(out, post.IDValue())
	}
	return out
}

func TestView_LoadAndDeleteTwice(t *testing.T) {
	t.Parallel()

	view, srv, _, _ := newView(t)
	srv.Posts.Seed(model.Post{ID: model.ID(0)}, model.Post{ID: model.ID(2)}, model.Post{ID: model.ID(5)})
	ctx := context.Background()

	if err := view.Load(ctx); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !view.Authenticated() {
		t.Fatalf("Authenticated() = false")
	}
	if got := ids(view.Posts()); len(got) != 3 {
		t.Fatalf("Posts() = %v", got)
	}

	if err := view.Delete(ctx, 2); err != nil {
		t.Fatalf("first Delete() error: %v", err)
	}
	once := ids(view.Posts())

	if err := view.Delete(ctx, 2); err != nil {
		t.Fatalf("second Delete() error: %v", err)
	}
	twice := ids(view.Posts())

	if len(once) != 2 || len(twice) != 2 || once[0] != twice[0] || once[1] != twice[1] {
		t.Fatalf("membership differs: once=%v twice=%v", once, twice)
	}
	if srv.Posts.Len() != 2 {
		t.Fatalf("server has %d posts", srv.Posts.Len())
	}
}

func TestView_DeleteFiltersEvenWhenServerRejects(t *testing.T) {
	t.Parallel()

	view, srv, provider, _ := newView(t)
	srv.Posts.Seed(model.Post{ID: model.ID(1)})
	ctx := context.Background()

	if err := view.Load(ctx); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Without a token the server answers 401.
	provider.SetToken("")
	if err := view.Delete(ctx, 1); err == nil {
		t.Fatalf("Delete() error = nil, want unauthorized")
	}
	if len(view.Posts()) != 0 {
		t.Fatalf("Posts() = %v after delete", ids(view.Posts()))
	}
}

func TestView_TracksAuthChanges(t *testing.T) {
	t.Parallel()

	view, _, provider, bridge := newView(t)
	if err := view.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	provider.Expire()

	deadline := time.Now().Add(2 * time.Second)
	for view.Authenticated() {
		if time.Now().After(deadline) {
			t.Fatalf("view still authenticated after expiry")
		}
		time.Sleep(5 * time.Millisecond)
	}

	view.Close()
	if bridge.Subscribers() != 0 {
		t.Fatalf("Subscribers() = %d after close", bridge.Subscribers())
	}
}

var _ Posts = (*client.Client)(nil)
