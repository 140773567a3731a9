package http

import "github.com/mediculture/mediculture-backend/internal/community/service"

type Handler struct {
	postService *service.PostService
}

func New(postService *service.PostService) *Handler {
	return &Handler{
		postService: postService,
	}
}

// PostInput is the body of POST /api/community/posts. The author is always
// the authenticated caller.
type PostInput struct {
	UserDisplayName string   `json:"userDisplayName,omitempty"`
	Category        string   `json:"category" binding:"required"`
	Title           string   `json:"title" binding:"required"`
	Content         string   `json:"content" binding:"required"`
	Tags            []string `json:"tags,omitempty"`
	Images          []string `json:"images,omitempty"`
	IsAnonymous     bool     `json:"isAnonymous,omitempty"`
}

type CommentInput struct {
	UserDisplayName string `json:"userDisplayName,omitempty"`
	Content         string `json:"content" binding:"required"`
}
