package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blog-api/internal/domain"
	"blog-api/internal/service"
)

// CommentHandler mantiene dependencias para endpoints de comentarios.
type CommentHandler struct {
	logger      *zap.Logger
	commentServ *service.CommentService
}

func NewCommentHandler(logger *zap.Logger, commentServ *service.CommentService) *CommentHandler {
	return &CommentHandler{logger: logger, commentServ: commentServ}
}

// CreateComment maneja POST /api/comment/create.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
		PostID  string `json:"postId"`
		UserID  string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.Validation(service.MsgCommentFieldsRequired))
		return
	}

	comment, err := h.commentServ.Create(c.Request.Context(), actor, service.CreateCommentInput{
		Content: req.Content,
		PostID:  req.PostID,
		UserID:  req.UserID,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// GetPostComments maneja GET /api/comment/getPostComments/:postId.
func (h *CommentHandler) GetPostComments(c *gin.Context) {
	comments, err := h.commentServ.ListByPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// LikeComment maneja PUT /api/comment/likeComment/:commentId.
func (h *CommentHandler) LikeComment(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	comment, err := h.commentServ.ToggleLike(c.Request.Context(), actor, c.Param("commentId"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// EditComment maneja PUT /api/comment/editComment/:commentId.
func (h *CommentHandler) EditComment(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.Validation(service.MsgCommentFieldsRequired))
		return
	}
	comment, err := h.commentServ.Edit(c.Request.Context(), actor, c.Param("commentId"), req.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment maneja DELETE /api/comment/deleteComment/:commentId.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	if err := h.commentServ.Delete(c.Request.Context(), actor, c.Param("commentId")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment has been deleted"})
}

// GetComments maneja GET /api/comment/getcomments.
func (h *CommentHandler) GetComments(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	list, err := h.commentServ.List(c.Request.Context(), actor, pageFromQuery(c, "sort"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
