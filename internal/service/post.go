package service

import (
	"context"
	"errors"

	"github.com/BloggingApp/post-editor/internal/model"
	"github.com/BloggingApp/post-editor/internal/repository"
	"github.com/BloggingApp/post-editor/internal/repository/postgres"
	"github.com/BloggingApp/post-editor/internal/repository/redisrepo"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type postService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newPostService(logger *zap.Logger, repo *repository.Repository) Post {
	return &postService{
		logger: logger,
		repo:   repo,
	}
}

func (s *postService) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	if !post.HasID() {
		return nil, ErrPostIDRequired
	}

	createdPost, err := s.repo.Postgres.Post.Create(ctx, post)
	if err != nil {
		if errors.Is(err, postgres.ErrDuplicatePostID) {
			return nil, ErrPostAlreadyExists
		}
		s.logger.Sugar().Errorf("failed to create post(%d): %s", *post.ID, err.Error())
		return nil, ErrInternal
	}

	s.invalidate(ctx, *post.ID)

	return createdPost, nil
}

func (s *postService) FindAll(ctx context.Context) ([]*model.Post, error) {
	cachedPosts, err := redisrepo.GetMany[model.Post](s.repo.Redis.Default, ctx, redisrepo.PostsKey())
	if err == nil {
		return nonNil(cachedPosts), nil
	}
	if !redisrepo.IsMiss(err) {
		s.logger.Sugar().Errorf("failed to get posts from redis: %s", err.Error())
		return nil, ErrInternal
	}

	posts, err := s.repo.Postgres.Post.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts from postgres: %s", err.Error())
		return nil, ErrInternal
	}
	posts = nonNil(posts)

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostsKey(), posts, cacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set posts in redis: %s", err.Error())
	}

	return posts, nil
}

func (s *postService) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	cachedPost, err := redisrepo.Get[model.Post](s.repo.Redis.Default, ctx, redisrepo.PostKey(id))
	if err == nil && cachedPost != nil {
		return cachedPost, nil
	}
	if err != nil && !redisrepo.IsMiss(err) {
		s.logger.Sugar().Errorf("failed to get post(%d) from redis: %s", id, err.Error())
		return nil, ErrInternal
	}

	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostKey(id), post, cacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%d) in redis: %s", id, err.Error())
	}

	return post, nil
}

func (s *postService) Update(ctx context.Context, post model.Post) (*model.Post, error) {
	if !post.HasID() {
		return nil, ErrPostIDRequired
	}

	updatedPost, err := s.repo.Postgres.Post.Update(ctx, post)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to update post(%d): %s", *post.ID, err.Error())
		return nil, ErrInternal
	}

	s.invalidate(ctx, *post.ID)

	return updatedPost, nil
}

func (s *postService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Postgres.Post.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to delete post(%d): %s", id, err.Error())
		return ErrInternal
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *postService) invalidate(ctx context.Context, id int64) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.PostKey(id), redisrepo.PostsKey()).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d) from redis: %s", id, err.Error())
	}
}

func nonNil(posts []*model.Post) []*model.Post {
	if posts == nil {
		return []*model.Post{}
	}
	return posts
}
