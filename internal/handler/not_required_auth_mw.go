package handler

import (
	"github.com/BloggingApp/post-editor/pkg/utils"
	"github.com/gin-gonic/gin"
)

func (h *Handler) notRequiredAuthMiddleware(c *gin.Context) {
	accessToken, ok := bearerToken(c)
	if !ok {
		c.Next()
		return
	}

	claims, err := utils.DecodeJWT(accessToken, h.accessSecret)
	if err != nil {
		c.Next()
		return
	}

	c.Set(userEmailKey, utils.EmailFromClaims(claims))

	c.Next()
}
