package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-api/internal/domain"
)

// CommentRepository define el contrato de persistencia para comentarios.
type CommentRepository interface {
	Create(ctx context.Context, comment domain.Comment) (domain.Comment, error)
	GetByID(ctx context.Context, id string) (domain.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]domain.Comment, error)
	// Save persiste content y likes de un comentario existente.
	Save(ctx context.Context, comment domain.Comment) (domain.Comment, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page domain.Page) ([]domain.Comment, error)
	Count(ctx context.Context, since time.Time) (int64, error)
}

// PgCommentRepository implementa CommentRepository usando pgxpool.
type PgCommentRepository struct {
	pool *pgxpool.Pool
}

func NewPgCommentRepository(pool *pgxpool.Pool) *PgCommentRepository {
	return &PgCommentRepository{pool: pool}
}

const pgCommentColumns = `id, content, post_id, user_id, likes, number_of_likes, created_at, updated_at`

func (r *PgCommentRepository) Create(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	const query = `
		INSERT INTO comments (id, content, post_id, user_id, likes, number_of_likes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	now := time.Now().UTC()
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.Likes == nil {
		comment.Likes = []string{}
	}
	comment.NumberOfLikes = len(comment.Likes)
	comment.CreatedAt = now
	comment.UpdatedAt = now
	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.Content,
		comment.PostID,
		comment.UserID,
		comment.Likes,
		comment.NumberOfLikes,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return domain.Comment{}, mapPgError(err)
	}
	return comment, nil
}

func (r *PgCommentRepository) GetByID(ctx context.Context, id string) (domain.Comment, error) {
	query := `SELECT ` + pgCommentColumns + ` FROM comments WHERE id = $1`
	return scanPgComment(r.pool.QueryRow(ctx, query, id))
}

func (r *PgCommentRepository) ListByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	query := `SELECT ` + pgCommentColumns + ` FROM comments WHERE post_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	return collectPgComments(rows)
}

func (r *PgCommentRepository) Save(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	query := `
		UPDATE comments
		SET content = $1, likes = $2, number_of_likes = $3, updated_at = $4
		WHERE id = $5
		RETURNING ` + pgCommentColumns
	if comment.Likes == nil {
		comment.Likes = []string{}
	}
	return scanPgComment(r.pool.QueryRow(ctx, query,
		comment.Content,
		comment.Likes,
		len(comment.Likes),
		time.Now().UTC(),
		comment.ID,
	))
}

func (r *PgCommentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgCommentRepository) List(ctx context.Context, page domain.Page) ([]domain.Comment, error) {
	query := `SELECT ` + pgCommentColumns + ` FROM comments ORDER BY created_at ` + sqlDirection(page.Order) + ` OFFSET $1 LIMIT $2`
	rows, err := r.pool.Query(ctx, query, page.StartIndex, page.Limit)
	if err != nil {
		return nil, err
	}
	return collectPgComments(rows)
}

func (r *PgCommentRepository) Count(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM comments WHERE created_at >= $1`, since).Scan(&n)
	return n, err
}

func collectPgComments(rows pgx.Rows) ([]domain.Comment, error) {
	defer rows.Close()
	comments := []domain.Comment{}
	for rows.Next() {
		c, err := scanPgComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

func scanPgComment(row pgx.Row) (domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(
		&c.ID,
		&c.Content,
		&c.PostID,
		&c.UserID,
		&c.Likes,
		&c.NumberOfLikes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return domain.Comment{}, mapPgError(err)
	}
	if c.Likes == nil {
		c.Likes = []string{}
	}
	return c, nil
}
