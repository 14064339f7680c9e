package handler

import (
	"strconv"
	"strings"

	"github.com/BloggingApp/post-editor/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const userEmailKey = "user_email"

type Handler struct {
	services     *service.Service
	accessSecret []byte
	allowOrigins []string
}

func New(services *service.Service, accessSecret []byte, allowOrigins []string) *Handler {
	return &Handler{
		services:     services,
		accessSecret: accessSecret,
		allowOrigins: allowOrigins,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if len(h.allowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     h.allowOrigins,
			AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	api := r.Group("/api")
	{
		posts := api.Group("/posts")
		{
			posts.GET("", h.notRequiredAuthMiddleware, h.postsList)
			posts.POST("", h.authMiddleware, h.postsCreate)

			post := posts.Group("/:postID")
			{
				post.GET("", h.notRequiredAuthMiddleware, h.postsGetByID)
				post.PUT("", h.authMiddleware, h.postsUpdate)
				post.DELETE("", h.authMiddleware, h.postsDelete)
			}
		}
	}

	return r
}

func (h *Handler) getUserEmailFromRequest(c *gin.Context) string {
	email, _ := c.Get(userEmailKey)

	s, ok := email.(string)
	if !ok {
		return ""
	}

	return s
}

func parsePostID(c *gin.Context) (int64, bool) {
	postID, err := strconv.ParseInt(strings.TrimSpace(c.Param("postID")), 10, 64)
	if err != nil || postID < 0 {
		return 0, false
	}
	return postID, true
}
