package identity

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BloggingApp/post-editor/internal/repository/redisrepo"
)

// TokenStore persists the access token between runs. Load returns "" when
// nothing is stored.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryStore) Load(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.token, nil
}

func (s *MemoryStore) Save(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context) error {
	return s.Save(ctx, "")
}

type FileStore struct {
	Path string
}

func (s FileStore) Load(ctx context.Context) (string, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (s FileStore) Save(ctx context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, []byte(token+"\n"), 0o600)
}

func (s FileStore) Delete(ctx context.Context) error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// RedisStore keeps the token under session:access-token:<profile>. The key
// expires together with the token when a TTL is known.
type RedisStore struct {
	repo    redisrepo.Default
	profile string
}

func NewRedisStore(repo redisrepo.Default, profile string) *RedisStore {
	return &RedisStore{repo: repo, profile: profile}
}

func (s *RedisStore) Load(ctx context.Context) (string, error) {
	token, err := s.repo.Get(ctx, redisrepo.AccessTokenKey(s.profile)).Result()
	if redisrepo.IsMiss(err) {
		return "", nil
	}
	return token, err
}

func (s *RedisStore) Save(ctx context.Context, token string) error {
	ttl, _ := tokenTTL(token)
	return s.repo.Set(ctx, redisrepo.AccessTokenKey(s.profile), token, ttl)
}

func (s *RedisStore) Delete(ctx context.Context) error {
	return s.repo.Del(ctx, redisrepo.AccessTokenKey(s.profile)).Err()
}
