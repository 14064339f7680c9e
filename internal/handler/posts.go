package handler

import (
	"errors"
	"net/http"

	"github.com/BloggingApp/post-editor/internal/dto"
	"github.com/BloggingApp/post-editor/internal/model"
	"github.com/BloggingApp/post-editor/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) postsList(c *gin.Context) {
	posts, err := h.services.Post.FindAll(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}

	out := make([]model.Post, 0, len(posts))
	for _, post := range posts {
		out = append(out, *post)
	}

	c.JSON(http.StatusOK, dto.PostsResponse{Posts: out})
}

func (h *Handler) postsGetByID(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidPostID))
		return
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PostResponse{Post: *post})
}

func (h *Handler) postsCreate(c *gin.Context) {
	var input model.Post
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err))
		return
	}
	if !input.HasID() || *input.ID < 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidPostID))
		return
	}

	input.AuthorEmail = h.getUserEmailFromRequest(c)

	createdPost, err := h.services.Post.Create(c.Request.Context(), input)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.PostResponse{Post: *createdPost})
}

func (h *Handler) postsUpdate(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidPostID))
		return
	}

	var input model.Post
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err))
		return
	}
	if input.HasID() && *input.ID != postID {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errPostIDMismatch))
		return
	}
	input.ID = &postID

	updatedPost, err := h.services.Post.Update(c.Request.Context(), input)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PostResponse{Post: *updatedPost})
}

func (h *Handler) postsDelete(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidPostID))
		return
	}

	if err := h.services.Post.Delete(c.Request.Context(), postID); err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "Delete success"))
}

func (h *Handler) serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(err))
	case errors.Is(err, service.ErrPostAlreadyExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(err))
	case errors.Is(err, service.ErrPostIDRequired):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(err))
	}
}
