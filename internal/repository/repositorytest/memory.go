// Package repositorytest provides in-memory repositories for tests.
package repositorytest

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/BloggingApp/post-editor/internal/model"
	"github.com/BloggingApp/post-editor/internal/repository"
	"github.com/BloggingApp/post-editor/internal/repository/postgres"
	"github.com/BloggingApp/post-editor/internal/repository/redisrepo"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

// New returns a repository backed by MemoryPosts and MemoryCache.
func New() (*repository.Repository, *MemoryPosts, *MemoryCache) {
	posts := NewMemoryPosts()
	cache := NewMemoryCache()
	return &repository.Repository{
		Postgres: &postgres.PostgresRepository{Post: posts},
		Redis:    &redisrepo.RedisRepository{Default: cache},
	}, posts, cache
}

type MemoryPosts struct {
	mu    sync.Mutex
	posts map[int64]model.Post
}

func NewMemoryPosts() *MemoryPosts {
	return &MemoryPosts{posts: make(map[int64]model.Post)}
}

func (m *MemoryPosts) Seed(posts ...model.Post) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, post := range posts {
		m.posts[*post.ID] = post
	}
}

func (m *MemoryPosts) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.posts)
}

func (m *MemoryPosts) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[*post.ID]; ok {
		return nil, postgres.ErrDuplicatePostID
	}
	m.posts[*post.ID] = post
	return &post, nil
}

func (m *MemoryPosts) FindAll(ctx context.Context) ([]*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	posts := make([]*model.Post, 0, len(m.posts))
	for _, post := range m.posts {
		post := post
		posts = append(posts, &post)
	}
	sort.Slice(posts, func(i, j int) bool { return *posts[i].ID < *posts[j].ID })
	return posts, nil
}

func (m *MemoryPosts) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &post, nil
}

func (m *MemoryPosts) Update(ctx context.Context, post model.Post) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.posts[*post.ID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	stored.Title = post.Title
	stored.Body = post.Body
	stored.Description = post.Description
	m.posts[*post.ID] = stored
	return &stored, nil
}

func (m *MemoryPosts) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.posts, id)
	return nil
}

// MemoryCache mimics the subset of redis used by the service. TTLs are ignored.
type MemoryCache struct {
	mu     sync.Mutex
	values map[string]string
	GetErr error
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{values: make(map[string]string)}
}

func (c *MemoryCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.values[key]
	return ok
}

func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch v := value.(type) {
	case string:
		c.values[key] = v
	case []byte:
		c.values[key] = string(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		c.values[key] = string(b)
	}
	return nil
}

func (c *MemoryCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, b, ttl)
}

func (c *MemoryCache) Get(ctx context.Context, key string) *redis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.GetErr != nil {
		return redis.NewStringResult("", c.GetErr)
	}
	v, ok := c.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (c *MemoryCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	for _, key := range keys {
		if _, ok := c.values[key]; ok {
			delete(c.values, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}
