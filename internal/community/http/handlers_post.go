package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mediculture/mediculture-backend/internal/auth"
	"github.com/mediculture/mediculture-backend/internal/community/domain"
	"github.com/mediculture/mediculture-backend/internal/platform/httpx"
	"github.com/mediculture/mediculture-backend/internal/platform/query"
)

func (h *Handler) ListPosts(c *gin.Context) {
	result, err := h.postService.List(c.Request.Context(), query.CommunityParams{
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
		Category:  c.Query("category"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	})
	if err != nil {
		httpx.Fail(c, err, "Failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.postService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Fail(c, err, "Failed to fetch post")
		return
	}

	c.JSON(http.StatusOK, post)
}

// CreatePost publishes a post by the caller. The display name falls back to
// the token's name claim.
func (h *Handler) CreatePost(c *gin.Context) {
	id, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var in PostInput
	if err := httpx.BindJSON(c, &in); err != nil {
		httpx.Fail(c, err, "Failed to create post")
		return
	}

	name := in.UserDisplayName
	if name == "" {
		name = id.DisplayName
	}

	post, err := h.postService.Create(c.Request.Context(), &domain.Post{
		UserID:          id.UID,
		UserDisplayName: name,
		Category:        in.Category,
		Title:           in.Title,
		Content:         in.Content,
		Tags:            in.Tags,
		Images:          in.Images,
		IsAnonymous:     in.IsAnonymous,
	})
	if err != nil {
		httpx.Fail(c, err, "Failed to create post")
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *Handler) LikePost(c *gin.Context) {
	post, err := h.postService.Like(c.Request.Context(), c.Param("id"), auth.UserFirebaseUID(c))
	if err != nil {
		httpx.Fail(c, err, "Failed to like post")
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) UnlikePost(c *gin.Context) {
	post, err := h.postService.Unlike(c.Request.Context(), c.Param("id"), auth.UserFirebaseUID(c))
	if err != nil {
		httpx.Fail(c, err, "Failed to unlike post")
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) AddComment(c *gin.Context) {
	id, _ := auth.CurrentIdentity(c)

	var in CommentInput
	if err := httpx.BindJSON(c, &in); err != nil {
		httpx.Fail(c, err, "Failed to add comment")
		return
	}

	name := in.UserDisplayName
	if name == "" {
		name = id.DisplayName
	}

	post, err := h.postService.Comment(c.Request.Context(), c.Param("id"), domain.Comment{
		UserID:          id.UID,
		UserDisplayName: name,
		Content:         in.Content,
	})
	if err != nil {
		httpx.Fail(c, err, "Failed to add comment")
		return
	}

	c.JSON(http.StatusCreated, post)
}
