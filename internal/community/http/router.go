package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	posts := rg.Group("/posts")
	posts.GET("", h.ListPosts)
	posts.GET("/:id", h.GetPost)
	posts.POST("", requireAuth, h.CreatePost)
	posts.POST("/:id/like", requireAuth, h.LikePost)
	posts.DELETE("/:id/like", requireAuth, h.UnlikePost)
	posts.POST("/:id/comments", requireAuth, h.AddComment)
}
