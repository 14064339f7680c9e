package handler

import (
	"net/http"
	"strings"

	"github.com/BloggingApp/post-editor/internal/dto"
	"github.com/BloggingApp/post-editor/pkg/utils"
	"github.com/gin-gonic/gin"
)

func (h *Handler) authMiddleware(c *gin.Context) {
	accessToken, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errNotAuthorized))
		c.Abort()
		return
	}

	claims, err := utils.DecodeJWT(accessToken, h.accessSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errNotAuthorized))
		c.Abort()
		return
	}

	c.Set(userEmailKey, utils.EmailFromClaims(claims))

	c.Next()
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}

	accessToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if accessToken == "" {
		return "", false
	}

	return accessToken, true
}
