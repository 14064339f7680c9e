// Package handlertest runs the posts API over in-memory repositories.
package handlertest

import (
	"net/http/httptest"
	"testing"

	"github.com/BloggingApp/post-editor/internal/handler"
	"github.com/BloggingApp/post-editor/internal/repository/repositorytest"
	"github.com/BloggingApp/post-editor/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var Secret = []byte("test-access-secret")

type Server struct {
	*httptest.Server
	Posts *repositorytest.MemoryPosts
	Cache *repositorytest.MemoryCache
}

// APIURL is the base URL the resource client expects.
func (s *Server) APIURL() string {
	return s.URL + "/api"
}

func NewServer(t *testing.T) *Server {
	t.Helper()

	gin.SetMode(gin.TestMode)

	repo, posts, cache := repositorytest.New()
	services := service.New(zap.NewNop(), repo)
	handlers := handler.New(services, Secret, nil)

	srv := httptest.NewServer(handlers.InitRoutes())
	t.Cleanup(srv.Close)

	return &Server{Server: srv, Posts: posts, Cache: cache}
}
