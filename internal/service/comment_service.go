package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

const maxCommentLength = 200

const (
	MsgCommentFieldsRequired  = "Comment content, postId and userId are required"
	MsgCommentTooLong         = "Comment must be at most 200 characters"
	MsgCommentNotFound        = "Comment not found"
	MsgForbiddenCommentCreate = "You are not allowed to create this comment"
	MsgForbiddenCommentEdit   = "You are not allowed to edit this comment"
	MsgForbiddenCommentDelete = "You are not allowed to delete this comment"
	MsgForbiddenCommentList   = "You are not allowed to get all comments"
)

// CommentService coordina reglas de negocio para comentarios.
type CommentService struct {
	logger   *zap.Logger
	comments repository.CommentRepository
	posts    repository.PostRepository
	now      func() time.Time
}

func NewCommentService(logger *zap.Logger, comments repository.CommentRepository, posts repository.PostRepository) *CommentService {
	return &CommentService{logger: logger, comments: comments, posts: posts, now: time.Now}
}

type CreateCommentInput struct {
	Content string
	PostID  string
	UserID  string
}

// CommentList es la respuesta de GET /api/comment/getcomments.
type CommentList struct {
	Comments          []domain.Comment `json:"comments"`
	TotalComments     int64            `json:"totalComments"`
	LastMonthComments int64            `json:"lastMonthComments"`
}

func (s *CommentService) Create(ctx context.Context, actor domain.Actor, input CreateCommentInput) (domain.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" || input.PostID == "" || input.UserID == "" {
		return domain.Comment{}, domain.Validation(MsgCommentFieldsRequired)
	}
	if input.UserID != actor.ID {
		return domain.Comment{}, domain.Forbidden(MsgForbiddenCommentCreate)
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return domain.Comment{}, domain.Validation(MsgCommentTooLong)
	}
	if _, err := s.posts.GetByID(ctx, input.PostID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Comment{}, domain.NotFound(MsgPostNotFound)
		}
		return domain.Comment{}, fmt.Errorf("get post: %w", err)
	}

	comment, err := s.comments.Create(ctx, domain.Comment{
		Content: content,
		PostID:  input.PostID,
		UserID:  actor.ID,
		Likes:   []string{},
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// ToggleLike agrega o quita el like del caller.
func (s *CommentService) ToggleLike(ctx context.Context, actor domain.Actor, commentID string) (domain.Comment, error) {
	comment, err := s.get(ctx, commentID)
	if err != nil {
		return domain.Comment{}, err
	}
	comment.ToggleLike(actor.ID)
	return s.save(ctx, comment)
}

func (s *CommentService) Edit(ctx context.Context, actor domain.Actor, commentID, content string) (domain.Comment, error) {
	comment, err := s.get(ctx, commentID)
	if err != nil {
		return domain.Comment{}, err
	}
	if comment.UserID != actor.ID && !actor.IsAdmin {
		return domain.Comment{}, domain.Forbidden(MsgForbiddenCommentEdit)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, domain.Validation(MsgCommentFieldsRequired)
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return domain.Comment{}, domain.Validation(MsgCommentTooLong)
	}
	comment.Content = content
	return s.save(ctx, comment)
}

func (s *CommentService) Delete(ctx context.Context, actor domain.Actor, commentID string) error {
	comment, err := s.get(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != actor.ID && !actor.IsAdmin {
		return domain.Forbidden(MsgForbiddenCommentDelete)
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFound(MsgCommentNotFound)
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	s.logger.Info("comment deleted", zap.String("comment_id", commentID), zap.String("by", actor.ID))
	return nil
}

func (s *CommentService) List(ctx context.Context, actor domain.Actor, page domain.Page) (CommentList, error) {
	if !actor.IsAdmin {
		return CommentList{}, domain.Forbidden(MsgForbiddenCommentList)
	}
	comments, err := s.comments.List(ctx, page)
	if err != nil {
		return CommentList{}, fmt.Errorf("list comments: %w", err)
	}
	total, err := s.comments.Count(ctx, time.Time{})
	if err != nil {
		return CommentList{}, fmt.Errorf("count comments: %w", err)
	}
	lastMonth, err := s.comments.Count(ctx, oneMonthBefore(s.now()))
	if err != nil {
		return CommentList{}, fmt.Errorf("count comments: %w", err)
	}
	return CommentList{
		Comments:          comments,
		TotalComments:     total,
		LastMonthComments: lastMonth,
	}, nil
}

func (s *CommentService) get(ctx context.Context, id string) (domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Comment{}, domain.NotFound(MsgCommentNotFound)
		}
		return domain.Comment{}, fmt.Errorf("get comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) save(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	saved, err := s.comments.Save(ctx, comment)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Comment{}, domain.NotFound(MsgCommentNotFound)
		}
		return domain.Comment{}, fmt.Errorf("save comment: %w", err)
	}
	return saved, nil
}
