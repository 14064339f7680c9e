package dto

import "github.com/BloggingApp/post-editor/internal/model"

type PostsResponse struct {
	Posts []model.Post `json:"posts"`
}

type PostResponse struct {
	Post model.Post `json:"post"`
}
