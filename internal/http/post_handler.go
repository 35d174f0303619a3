package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blog-api/internal/domain"
	"blog-api/internal/service"
)

// PostHandler mantiene dependencias para endpoints de posts.
type PostHandler struct {
	logger   *zap.Logger
	postServ *service.PostService
}

func NewPostHandler(logger *zap.Logger, postServ *service.PostService) *PostHandler {
	return &PostHandler{logger: logger, postServ: postServ}
}

// CreatePost maneja POST /api/post/create.
func (h *PostHandler) CreatePost(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
		Image    string `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.Validation(service.MsgPostFieldsRequired))
		return
	}

	post, err := h.postServ.Create(c.Request.Context(), actor, service.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// GetPosts maneja GET /api/post/getposts.
func (h *PostHandler) GetPosts(c *gin.Context) {
	filter := domain.PostFilter{
		UserID:     c.Query("userId"),
		Category:   c.Query("category"),
		Slug:       c.Query("slug"),
		PostID:     c.Query("postId"),
		SearchTerm: c.Query("searchTerm"),
	}
	list, err := h.postServ.List(c.Request.Context(), filter, pageFromQuery(c, "order"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// DeletePost maneja DELETE /api/post/deletepost/:postId/:userId.
func (h *PostHandler) DeletePost(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	if err := h.postServ.Delete(c.Request.Context(), actor, c.Param("postId"), c.Param("userId")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "The post has been deleted"})
}

// UpdatePost maneja PUT /api/post/updatepost/:postId/:userId.
func (h *PostHandler) UpdatePost(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		Category *string `json:"category"`
		Image    *string `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.Validation("Invalid request body"))
		return
	}

	post, err := h.postServ.Update(c.Request.Context(), actor, c.Param("postId"), c.Param("userId"), service.UpdatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}
