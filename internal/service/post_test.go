package service

import (
	"context"
	"errors"
	"testing"

	"github.com/BloggingApp/post-editor/internal/model"
	"github.com/BloggingApp/post-editor/internal/repository/redisrepo"
	"github.com/BloggingApp/post-editor/internal/repository/repositorytest"
	"go.uber.org/zap"
)

func TestPostService_CreateAndFind(t *testing.T) {
	t.Parallel()

	repo, _, cache := repositorytest.New()
	svc := New(zap.NewNop(), repo)
	ctx := context.Background()

	post := model.Post{ID: model.ID(6), Title: "t", Body: "b", Description: "d", AuthorEmail: "ann@example.com"}
	if _, err := svc.Post.Create(ctx, post); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := svc.Post.FindByID(ctx, 6)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if got.Title != "t" || got.AuthorEmail != "ann@example.com" {
		t.Fatalf("FindByID() = %+v", got)
	}
	if !cache.Has(redisrepo.PostKey(6)) {
		t.Fatalf("post not cached after FindByID")
	}

	if _, err := svc.Post.Create(ctx, post); !errors.Is(err, ErrPostAlreadyExists) {
		t.Fatalf("duplicate Create() err = %v, want ErrPostAlreadyExists", err)
	}
}

func TestPostService_CreateRequiresID(t *testing.T) {
	t.Parallel()

	repo, _, _ := repositorytest.New()
	svc := New(zap.NewNop(), repo)

	if _, err := svc.Post.Create(context.Background(), model.Post{Title: "t"}); !errors.Is(err, ErrPostIDRequired) {
		t.Fatalf("Create() err = %v, want ErrPostIDRequired", err)
	}
}

func TestPostService_NotFound(t *testing.T) {
	t.Parallel()

	repo, _, _ := repositorytest.New()
	svc := New(zap.NewNop(), repo)
	ctx := context.Background()

	if _, err := svc.Post.FindByID(ctx, 3); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("FindByID() err = %v", err)
	}
	if _, err := svc.Post.Update(ctx, model.Post{ID: model.ID(3)}); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("Update() err = %v", err)
	}
	if err := svc.Post.Delete(ctx, 3); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("Delete() err = %v", err)
	}
}

func TestPostService_WritesInvalidateCache(t *testing.T) {
	t.Parallel()

	repo, posts, cache := repositorytest.New()
	posts.Seed(model.Post{ID: model.ID(1), Title: "old", AuthorEmail: "ann@example.com"})
	svc := New(zap.NewNop(), repo)
	ctx := context.Background()

	if _, err := svc.Post.FindAll(ctx); err != nil {
		t.Fatalf("FindAll() error: %v", err)
	}
	if _, err := svc.Post.FindByID(ctx, 1); err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}

	updated, err := svc.Post.Update(ctx, model.Post{ID: model.ID(1), Title: "new", AuthorEmail: "mallory@example.com"})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.AuthorEmail != "ann@example.com" {
		t.Fatalf("Update() changed the author to %q", updated.AuthorEmail)
	}
	if cache.Has(redisrepo.PostKey(1)) || cache.Has(redisrepo.PostsKey()) {
		t.Fatalf("cache not invalidated after update")
	}

	all, err := svc.Post.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error: %v", err)
	}
	if len(all) != 1 || all[0].Title != "new" {
		t.Fatalf("FindAll() = %+v", all)
	}
}

func TestPostService_FindAllEmptyIsNotNil(t *testing.T) {
	t.Parallel()

	repo, _, _ := repositorytest.New()
	svc := New(zap.NewNop(), repo)

	posts, err := svc.Post.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll() error: %v", err)
	}
	if posts == nil || len(posts) != 0 {
		t.Fatalf("FindAll() = %#v, want empty slice", posts)
	}
}

func TestPostService_CacheFailureIsInternal(t *testing.T) {
	t.Parallel()

	repo, _, cache := repositorytest.New()
	cache.GetErr = errors.New("connection refused")
	svc := New(zap.NewNop(), repo)

	if _, err := svc.Post.FindAll(context.Background()); !errors.Is(err, ErrInternal) {
		t.Fatalf("FindAll() err = %v, want ErrInternal", err)
	}
}
