package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

const (
	MsgPostFieldsRequired  = "Please provide all required fields"
	MsgPostNotFound        = "Post not found"
	MsgPostExists          = "A post with this title already exists"
	MsgForbiddenPostCreate = "You are not allowed to create a post"
	MsgForbiddenPostDelete = "You are not allowed to delete this post"
	MsgForbiddenPostUpdate = "You are not allowed to update this post"
)

// PostService coordina reglas de negocio para posts.
type PostService struct {
	logger *zap.Logger
	posts  repository.PostRepository
	now    func() time.Time
}

func NewPostService(logger *zap.Logger, posts repository.PostRepository) *PostService {
	return &PostService{logger: logger, posts: posts, now: time.Now}
}

type CreatePostInput struct {
	Title    string
	Content  string
	Category string
	Image    string
}

type UpdatePostInput struct {
	Title    *string
	Content  *string
	Category *string
	Image    *string
}

// PostList es la respuesta de GET /api/post/getposts.
type PostList struct {
	Posts          []domain.Post `json:"posts"`
	TotalPosts     int64         `json:"totalPosts"`
	LastMonthPosts int64         `json:"lastMonthPosts"`
}

func (s *PostService) Create(ctx context.Context, actor domain.Actor, input CreatePostInput) (domain.Post, error) {
	if !actor.IsAdmin {
		return domain.Post{}, domain.Forbidden(MsgForbiddenPostCreate)
	}
	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.Content) == "" {
		return domain.Post{}, domain.Validation(MsgPostFieldsRequired)
	}
	slug := Slugify(title)
	if slug == "" {
		return domain.Post{}, domain.Validation(MsgPostFieldsRequired)
	}

	post := domain.Post{
		UserID:   actor.ID,
		Title:    title,
		Content:  input.Content,
		Category: orDefault(input.Category, domain.DefaultPostCategory),
		Image:    orDefault(input.Image, domain.DefaultPostImage),
		Slug:     slug,
	}
	created, err := s.posts.Create(ctx, post)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Post{}, domain.Conflict(MsgPostExists)
		}
		return domain.Post{}, fmt.Errorf("create post: %w", err)
	}
	s.logger.Info("post created", zap.String("post_id", created.ID), zap.String("slug", created.Slug))
	return created, nil
}

func (s *PostService) List(ctx context.Context, filter domain.PostFilter, page domain.Page) (PostList, error) {
	posts, err := s.posts.List(ctx, filter, page)
	if err != nil {
		return PostList{}, fmt.Errorf("list posts: %w", err)
	}
	total, err := s.posts.Count(ctx, domain.PostFilter{}, time.Time{})
	if err != nil {
		return PostList{}, fmt.Errorf("count posts: %w", err)
	}
	lastMonth, err := s.posts.Count(ctx, domain.PostFilter{}, oneMonthBefore(s.now()))
	if err != nil {
		return PostList{}, fmt.Errorf("count posts: %w", err)
	}
	return PostList{Posts: posts, TotalPosts: total, LastMonthPosts: lastMonth}, nil
}

// Delete exige admin y que userID de la ruta sea el del caller.
func (s *PostService) Delete(ctx context.Context, actor domain.Actor, postID, userID string) error {
	if !actor.IsAdmin || actor.ID != userID {
		return domain.Forbidden(MsgForbiddenPostDelete)
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFound(MsgPostNotFound)
		}
		return fmt.Errorf("delete post: %w", err)
	}
	s.logger.Info("post deleted", zap.String("post_id", postID))
	return nil
}

func (s *PostService) Update(ctx context.Context, actor domain.Actor, postID, userID string, input UpdatePostInput) (domain.Post, error) {
	if !actor.IsAdmin || actor.ID != userID {
		return domain.Post{}, domain.Forbidden(MsgForbiddenPostUpdate)
	}

	upd := domain.PostUpdate{
		Content:  input.Content,
		Category: input.Category,
		Image:    input.Image,
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		slug := Slugify(title)
		if title == "" || slug == "" {
			return domain.Post{}, domain.Validation(MsgPostFieldsRequired)
		}
		upd.Title = &title
		upd.Slug = &slug
	}
	if input.Content != nil && strings.TrimSpace(*input.Content) == "" {
		return domain.Post{}, domain.Validation(MsgPostFieldsRequired)
	}

	post, err := s.posts.Update(ctx, postID, upd)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return domain.Post{}, domain.NotFound(MsgPostNotFound)
		case errors.Is(err, repository.ErrDuplicate):
			return domain.Post{}, domain.Conflict(MsgPostExists)
		}
		return domain.Post{}, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
